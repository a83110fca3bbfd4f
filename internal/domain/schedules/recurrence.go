package schedules

import (
	"fmt"
	"strings"
	"time"
)

type Frequency int

const (
	Daily Frequency = iota
	Weekly
	Monthly
)

var frequencyNames = map[Frequency]string{
	Daily:   "Daily",
	Weekly:  "Weekly",
	Monthly: "Monthly",
}

func (f Frequency) String() string {
	if name, ok := frequencyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Frequency(%d)", int(f))
}

// ParseFrequency accepts the name (any case) or the numeric wire value.
func ParseFrequency(s string) (Frequency, error) {
	s = strings.TrimSpace(s)
	for f, name := range frequencyNames {
		if strings.EqualFold(s, name) || s == fmt.Sprint(int(f)) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown recurrence frequency %q", s)
}

// Frequencies lists the options in display order.
func Frequencies() []Frequency {
	return []Frequency{Daily, Weekly, Monthly}
}

// Recurrence is submitted with a create request only. Weekdays use the
// backend's numbering, which matches time.Weekday (Sunday = 0).
type Recurrence struct {
	IsRecurring   bool           `json:"isRecurring"`
	Frequency     *Frequency     `json:"frequency"`
	EndDate       *string        `json:"endDate"`
	DaysOfWeek    []time.Weekday `json:"daysOfWeek"`
	IntervalCount *int           `json:"intervalCount"`
}

// RecurrenceForm is the state of the recurrence sub-form.
type RecurrenceForm struct {
	Enabled   bool
	Frequency Frequency
	EndDate   string
	Days      []time.Weekday
	Interval  int
}

// DefaultRecurrenceForm is what a fresh create form starts with.
func DefaultRecurrenceForm() RecurrenceForm {
	return RecurrenceForm{Frequency: Weekly, Interval: 1}
}

// Build returns the payload for the form, or nil when recurrence is off.
// Days are only sent for weekly recurrence and only when at least one is
// selected; an interval below one becomes one; the end date is cut to its
// date part.
func (f RecurrenceForm) Build() *Recurrence {
	if !f.Enabled {
		return nil
	}

	freq := f.Frequency
	interval := f.Interval
	if interval < 1 {
		interval = 1
	}

	r := &Recurrence{
		IsRecurring:   true,
		Frequency:     &freq,
		IntervalCount: &interval,
	}

	if end := strings.TrimSpace(f.EndDate); end != "" {
		if i := strings.IndexByte(end, 'T'); i >= 0 {
			end = end[:i]
		}
		r.EndDate = &end
	}

	if freq == Weekly && len(f.Days) > 0 {
		days := make([]time.Weekday, 0, len(f.Days))
		seen := make(map[time.Weekday]bool, len(f.Days))
		for _, d := range f.Days {
			if d < time.Sunday || d > time.Saturday || seen[d] {
				continue
			}
			seen[d] = true
			days = append(days, d)
		}
		if len(days) > 0 {
			r.DaysOfWeek = days
		}
	}

	return r
}

// HasDay reports whether d is selected. Used by the weekday checkboxes.
func (f RecurrenceForm) HasDay(d time.Weekday) bool {
	for _, x := range f.Days {
		if x == d {
			return true
		}
	}
	return false
}

// Weekly reports whether the weekday choice applies.
func (f RecurrenceForm) Weekly() bool {
	return f.Frequency == Weekly
}
