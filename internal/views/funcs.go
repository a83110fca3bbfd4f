package views

import (
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"playoh/internal/config"
	"playoh/internal/domain"
	"playoh/internal/domain/schedules"
	"playoh/internal/ids"
)

func Funcs(codec *ids.Codec) template.FuncMap {
	return template.FuncMap{
		"appName":     func() string { return config.AppName },
		"appVersion":  func() string { return config.AppVersion },
		"date":        FormatDate,
		"clock":       FormatClock,
		"dateTime":    FormatDateTime,
		"longDate":    FormatLongDate,
		"shortDate":   FormatShortDate,
		"spots":       SpotsLabel,
		"icon":        IconURL,
		"deref":       domain.Deref,
		"ref":         codec.Encode,
		"weekdays":    Weekdays,
		"frequencies": schedules.Frequencies,
		"add":         func(a, b int) int { return a + b },
		"toJSON":      toJSON,
	}
}

func local(t domain.Time, offset int) time.Time {
	return t.In(schedules.Zone(offset))
}

// FormatDate renders "Mon, Jan 2".
func FormatDate(t domain.Time, offset int) string {
	if t.IsZero() {
		return ""
	}
	return local(t, offset).Format("Mon, Jan 2")
}

// FormatClock renders "3:04 PM".
func FormatClock(t domain.Time, offset int) string {
	if t.IsZero() {
		return ""
	}
	return local(t, offset).Format("3:04 PM")
}

// FormatDateTime renders "Jan 2, 3:04 PM", used by the admin grid.
func FormatDateTime(t domain.Time, offset int) string {
	if t.IsZero() {
		return ""
	}
	return local(t, offset).Format("Jan 2, 3:04 PM")
}

// FormatLongDate renders "January 2, 2006", or N/A for a missing date.
func FormatLongDate(t domain.Time, offset int) string {
	if t.IsZero() {
		return "N/A"
	}
	return local(t, offset).Format("January 2, 2006")
}

// FormatShortDate renders "Jan 2, 2006".
func FormatShortDate(t domain.Time, offset int) string {
	if t.IsZero() {
		return "N/A"
	}
	return local(t, offset).Format("Jan 2, 2006")
}

// SpotsLabel is the badge text of a schedule card.
func SpotsLabel(remaining int) string {
	switch {
	case remaining <= 0:
		return "Full"
	case remaining == 1:
		return "1 spot"
	default:
		return fmt.Sprintf("%d spots", remaining)
	}
}

// IconURL falls back to the placeholder when a sport has no icon.
func IconURL(u *string) string {
	if u == nil || *u == "" {
		return config.SportIconPlaceholder
	}
	return *u
}

type DayOption struct {
	Day   time.Weekday
	Short string
}

// Weekdays lists Sunday through Saturday for the recurrence checkboxes.
func Weekdays() []DayOption {
	out := make([]DayOption, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		out = append(out, DayOption{Day: d, Short: d.String()[:3]})
	}
	return out
}

func toJSON(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}
