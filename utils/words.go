package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount-in-words for the Indian numbering system (crore/lakh/thousand).
// Printed on the invoice under "Total In Words".

const (
	croreValue = 1_00_00_000
	lakhValue  = 1_00_000
)

var onesWords = [...]string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}

var teenWords = [...]string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}

var tensWords = [...]string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}

// AmountInWords spells a non-negative monetary amount, e.g.
// 1234567.89 -> "Twelve Lakh Thirty Four Thousand Five Hundred Sixty Seven
// and Eighty Nine Paise Only".
func AmountInWords(amount decimal.Decimal) string {
	whole := amount.Truncate(0)
	units := whole.IntPart()
	paise := amount.Sub(whole).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	// Paise rounding can carry into the rupee part (e.g. 1.999).
	if paise >= 100 {
		units++
		paise -= 100
	}

	if units == 0 && paise == 0 {
		return "Zero Only"
	}

	words := integerWords(units)
	if paise > 0 {
		if words == "" {
			words = "Zero"
		}
		words += " and " + belowThousand(paise) + " Paise"
	}
	return words + " Only"
}

// integerWords spells units using crore/lakh/thousand groups. The crore part
// recurses, so amounts well past 999,999,999,999 still spell correctly
// ("One Lakh Crore ...").
func integerWords(n int64) string {
	if n <= 0 {
		return ""
	}

	var parts []string
	if n >= croreValue {
		parts = append(parts, integerWords(n/croreValue), "Crore")
		n %= croreValue
	}
	if n >= lakhValue {
		parts = append(parts, belowThousand(n/lakhValue), "Lakh")
		n %= lakhValue
	}
	if n >= 1000 {
		parts = append(parts, belowThousand(n/1000), "Thousand")
		n %= 1000
	}
	if n > 0 {
		parts = append(parts, belowThousand(n))
	}
	return strings.Join(parts, " ")
}

// belowThousand spells 0-999. Every group above reuses this, so digit naming
// lives in exactly one place.
func belowThousand(n int64) string {
	if n <= 0 || n > 999 {
		return ""
	}

	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100], "Hundred")
		n %= 100
	}
	switch {
	case n == 0:
	case n < 10:
		parts = append(parts, onesWords[n])
	case n < 20:
		parts = append(parts, teenWords[n-10])
	default:
		if n%10 == 0 {
			parts = append(parts, tensWords[n/10])
		} else {
			parts = append(parts, tensWords[n/10], onesWords[n%10])
		}
	}
	return strings.Join(parts, " ")
}
