package utils

import (
	"github.com/shopspring/decimal"
)

var decimalOneHundred = decimal.NewFromInt(100)

// CalculateItemAmounts computes the derived amounts of a single invoice line.
// Tax-exclusive only: taxAmount = qty * rate * taxPercent / 100, and
// amount = qty * rate * (1 + taxPercent/100). Each is rounded to 2 decimal
// places exactly once, on the exact value (shopspring rounds half away from
// zero, which is the rounding the rest of the pipeline assumes).
func CalculateItemAmounts(qty, rate, taxPercent decimal.Decimal) (taxAmount decimal.Decimal, amount decimal.Decimal) {
	lineValue := qty.Mul(rate)
	tax := lineValue.Mul(taxPercent).Div(decimalOneHundred)
	taxAmount = tax.Round(2)
	amount = lineValue.Add(tax).Round(2)
	return taxAmount, amount
}

// CalculateLineValue returns the unrounded qty * rate of a line. Subtotals
// sum these and round once at the end, so per-line rounding error does not
// compound across a 200-line invoice.
func CalculateLineValue(qty, rate decimal.Decimal) decimal.Decimal {
	return qty.Mul(rate)
}
