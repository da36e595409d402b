// Package format provides display formatting for surplus amounts.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Currency returns a whole-dollar currency string with a dollar sign and
// thousands separators (e.g., "$1,234,568"). Amounts round to the nearest
// dollar to match the upstream report rendering.
func Currency(amount float64) string {
	formatted := formatWholeDollars(math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Percent renders a fraction in [0,1] as a percentage with one decimal
// (e.g., 0.125 -> "12.5%"). Used for ward coverage display.
func Percent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

func formatWholeDollars(value float64) string {
	intPart := fmt.Sprintf("%.0f", value)

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart
}
