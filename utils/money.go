package utils

import (
	"fmt"
	"math"
)

// RoundCents converts a fractional cent value (e.g. a percentage fee) to whole
// cents using half-away-from-zero rounding.
func RoundCents(value float64) int64 {
	return int64(math.Round(value))
}

// SurchargeCents computes a card surcharge in cents for the given amount due.
func SurchargeCents(amountCents int64, rate float64) int64 {
	return RoundCents(float64(amountCents) * rate)
}

// FormatCents renders cents as a 2-decimal money string, e.g. 4750 -> "47.50".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// MinCents returns the smaller of two cent amounts.
func MinCents(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// MaxCents returns the larger of two cent amounts.
func MaxCents(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// ClampNonNegative floors a cent amount at zero.
func ClampNonNegative(cents int64) int64 {
	if cents < 0 {
		return 0
	}
	return cents
}
