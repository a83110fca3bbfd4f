package schedules

import (
	"fmt"
	"strings"
	"time"
)

// Zone returns the fixed zone for an offset in minutes east of UTC.
func Zone(offsetMinutes int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+03d:%02d", offsetMinutes/60, abs(offsetMinutes%60)), offsetMinutes*60)
}

// LocalParts splits t into the date (YYYY-MM-DD) and clock (HH:mm:ss) the
// user sees at the given offset. The edit form is prefilled with these.
func LocalParts(t time.Time, offsetMinutes int) (date, clock string) {
	local := t.In(Zone(offsetMinutes))
	return local.Format(time.DateOnly), local.Format(time.TimeOnly)
}

// NormalizeClock turns an HTML time input value (HH:mm or HH:mm:ss) into
// HH:mm:ss. It returns an error for anything else.
func NormalizeClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.TimeOnly, "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.TimeOnly), nil
		}
	}
	return "", fmt.Errorf("invalid time %q", s)
}

// NormalizeDate accepts YYYY-MM-DD, optionally followed by a time part.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return "", fmt.Errorf("invalid date %q", s)
	}
	return s, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
