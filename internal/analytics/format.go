package analytics

import (
	"fmt"
	"strings"
)

// FormatCurrency renders a dollar amount with thousands separators,
// e.g. 1234567.8 -> "$1,234,567.80".
func FormatCurrency(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	whole, frac, _ := strings.Cut(s, ".")
	out := "$" + groupThousands(whole) + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// FormatPercent renders a percentage with two decimals, e.g. "1.25%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatRatio renders a ratio such as ROAS, e.g. "2.41x".
func FormatRatio(v float64) string {
	return fmt.Sprintf("%.2fx", v)
}

// FormatCount renders large counts with K/M suffixes.
func FormatCount(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return groupThousands(fmt.Sprintf("%.0f", v))
	}
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
