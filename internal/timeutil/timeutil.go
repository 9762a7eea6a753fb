package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// isoLayout writes UTC instants with a "+00:00" style offset so files stay
// readable by tools that do not accept the "Z" shorthand.
const isoLayout = "2006-01-02T15:04:05.999999-07:00"

var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse reads an ISO-8601 timestamp. A trailing "Z" is treated as "+00:00"
// and zone-less values are taken as UTC. It reports false for empty and for
// unparseable input; callers that need to tell those apart keep the raw
// string.
func Parse(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	if strings.HasSuffix(value, "Z") {
		value = strings.TrimSuffix(value, "Z") + "+00:00"
	}
	for _, layout := range parseLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

// Format renders an instant in UTC with a "+00:00" offset.
func Format(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// FormatRemaining renders a signed duration using at most the two most
// significant non-zero units among days, hours and minutes. Durations under
// a minute fall back to seconds, a zero duration renders as "just now", and
// past durations carry a leading "-".
func FormatRemaining(d time.Duration) string {
	negative := d < 0
	if negative {
		d = -d
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	parts := make([]string, 0, 2)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 && days == 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if len(parts) == 0 && d > 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	if len(parts) == 0 {
		return "just now"
	}

	if len(parts) > 2 {
		parts = parts[:2]
	}
	out := strings.Join(parts, " ")
	if negative {
		return "-" + out
	}
	return out
}
