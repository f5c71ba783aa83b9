package utils

import "fmt"

// FormatCurrency renders a dollar value with a magnitude suffix, e.g.
// 1_500_000 -> "$1.5M", 2_000_000_000 -> "$2.0B".
func FormatCurrency(value float64) string {
	abs := value
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("$%.1fT", value/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("$%.1fB", value/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.1fM", value/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("$%.1fK", value/1e3)
	default:
		return fmt.Sprintf("$%.0f", value)
	}
}
