package compose

import (
	"strings"
	"time"
)

// EscapeDollar doubles every "$" so compose does not treat it as the start
// of a variable interpolation.
func EscapeDollar(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

// isoLayouts are the ISO-8601 date and date-time forms YAML 1.1 parsers
// resolve to timestamps. Fractional seconds are accepted by time.Parse
// without being spelled out in the layout.
var isoLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 -07:00",
}

// IsISODate reports whether s parses as an ISO-8601 date or date-time.
func IsISODate(s string) bool {
	if len(s) < len("2006-01-02") {
		return false
	}
	for _, layout := range isoLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// labelValue escapes a label value and single-quotes it when it would
// otherwise be read back as a timestamp.
func labelValue(s string) Value {
	escaped := EscapeDollar(s)
	if IsISODate(s) {
		return Quoted(escaped)
	}
	return String(escaped)
}
