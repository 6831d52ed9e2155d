package timefmt

import (
	"fmt"
	"math"
)

// Style selects how second offsets are rendered as clock strings.
type Style string

const (
	// StyleLong renders H:MM:SS once the offset reaches an hour,
	// MM:SS below that. This is the canonical style.
	StyleLong Style = "long"
	// StyleShort always renders MM:SS with unwrapped minutes, so an
	// offset past the hour mark renders as e.g. "75:00".
	StyleShort Style = "short"
)

// NotAvailable is rendered for offsets that are not usable numbers.
const NotAvailable = "N/A"

// ParseStyle converts a config string into a Style.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleLong, StyleShort:
		return Style(s), nil
	default:
		return "", fmt.Errorf("unknown time format style %q", s)
	}
}

// Format renders a second offset as a clock string in the given style.
// Negative, NaN, and infinite offsets render as NotAvailable.
func Format(style Style, seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return NotAvailable
	}

	total := int(seconds)
	if style == StyleShort {
		return fmt.Sprintf("%02d:%02d", total/60, total%60)
	}

	if hours := total / 3600; hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, (total%3600)/60, total%60)
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
