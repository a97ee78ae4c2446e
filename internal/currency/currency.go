// Package currency formats and converts prices held as integer cents.
package currency

import (
	"fmt"
	"math"
)

// FormatCents renders cents as "$12.34". Negative input renders as "$0.00".
func FormatCents(cents int64) string {
	if cents < 0 {
		cents = 0
	}
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// ToMajor converts cents to major units.
func ToMajor(cents int64) float64 {
	return float64(cents) / 100
}

// ToCents converts major units to cents, rounding to the nearest cent.
func ToCents(major float64) int64 {
	return int64(math.Round(major * 100))
}
