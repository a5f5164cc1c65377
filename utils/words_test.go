package utils

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"0", "Zero Only"},
		{"0.00", "Zero Only"},
		{"1", "One Only"},
		{"15", "Fifteen Only"},
		{"40", "Forty Only"},
		{"100", "One Hundred Only"},
		{"236", "Two Hundred Thirty Six Only"},
		{"1000", "One Thousand Only"},
		{"100000", "One Lakh Only"},
		{"20000000", "Two Crore Only"},
		{"1234567.89", "Twelve Lakh Thirty Four Thousand Five Hundred Sixty Seven and Eighty Nine Paise Only"},
		{"999999999999", "Ninety Nine Thousand Nine Hundred Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred Ninety Nine Only"},
		// Crore part itself regroups for very large amounts.
		{"10000000000000", "Ten Lakh Crore Only"},
		{"0.50", "Zero and Fifty Paise Only"},
		{"1.05", "One and Five Paise Only"},
		// Paise rounding carries into the rupee part.
		{"1.999", "Two Only"},
	}

	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.amount)
		if err != nil {
			t.Fatalf("bad test amount %q: %v", tc.amount, err)
		}
		got := AmountInWords(amount)
		if got != tc.want {
			t.Errorf("AmountInWords(%s) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestAmountInWordsNoZeroGroups(t *testing.T) {
	// 1,00,00,100 has empty lakh and thousand groups; they must not appear
	// as "Zero Lakh" / "Zero Thousand".
	got := AmountInWords(decimal.NewFromInt(10000100))
	if strings.Contains(got, "Zero") {
		t.Fatalf("AmountInWords(10000100) = %q, contains a zero group", got)
	}
	if got != "One Crore One Hundred Only" {
		t.Fatalf("AmountInWords(10000100) = %q, want %q", got, "One Crore One Hundred Only")
	}
}
