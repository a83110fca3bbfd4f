package schedules

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRecurrenceFormBuildWeekly(t *testing.T) {
	t.Parallel()

	form := RecurrenceForm{
		Enabled:   true,
		Frequency: Weekly,
		Days:      []time.Weekday{time.Monday, time.Wednesday},
		Interval:  2,
	}

	req := CreateRequest{SportID: 1, Venue: "Main Court", Recurrence: form.Build()}
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}

	var got struct {
		Recurrence map[string]any `json:"recurrence"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}

	r := got.Recurrence
	if len(r) != 5 {
		t.Fatalf("recurrence has %d fields, want 5: %v", len(r), r)
	}
	if r["isRecurring"] != true {
		t.Errorf("isRecurring = %v", r["isRecurring"])
	}
	if r["frequency"] != float64(Weekly) {
		t.Errorf("frequency = %v, want %d", r["frequency"], Weekly)
	}
	if r["intervalCount"] != float64(2) {
		t.Errorf("intervalCount = %v, want 2", r["intervalCount"])
	}
	if r["endDate"] != nil {
		t.Errorf("endDate = %v, want null", r["endDate"])
	}
	days, ok := r["daysOfWeek"].([]any)
	if !ok || len(days) != 2 || days[0] != float64(1) || days[1] != float64(3) {
		t.Errorf("daysOfWeek = %v, want [1 3]", r["daysOfWeek"])
	}
}

func TestRecurrenceFormBuildDisabledIsNull(t *testing.T) {
	t.Parallel()

	form := RecurrenceForm{Enabled: false, Frequency: Weekly, Days: []time.Weekday{time.Friday}, Interval: 3}
	if form.Build() != nil {
		t.Fatal("Build() with recurrence off must be nil")
	}

	b, err := json.Marshal(CreateRequest{Recurrence: form.Build()})
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	v, present := got["recurrence"]
	if !present || v != nil {
		t.Fatalf("recurrence = %v (present %v), want explicit null", v, present)
	}
}

func TestRecurrenceFormBuildEdgeCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		form         RecurrenceForm
		wantDays     []time.Weekday
		wantInterval int
		wantEnd      string
	}{
		{
			name:         "days dropped for daily",
			form:         RecurrenceForm{Enabled: true, Frequency: Daily, Days: []time.Weekday{time.Monday}, Interval: 1},
			wantInterval: 1,
		},
		{
			name:         "days dropped for monthly",
			form:         RecurrenceForm{Enabled: true, Frequency: Monthly, Days: []time.Weekday{time.Tuesday}, Interval: 1},
			wantInterval: 1,
		},
		{
			name:         "weekly without days sends null",
			form:         RecurrenceForm{Enabled: true, Frequency: Weekly, Interval: 1},
			wantInterval: 1,
		},
		{
			name:         "zero interval becomes one",
			form:         RecurrenceForm{Enabled: true, Frequency: Daily},
			wantInterval: 1,
		},
		{
			name:         "end date keeps date part",
			form:         RecurrenceForm{Enabled: true, Frequency: Daily, Interval: 4, EndDate: "2025-06-30T00:00:00"},
			wantInterval: 4,
			wantEnd:      "2025-06-30",
		},
		{
			name:         "duplicate days collapse",
			form:         RecurrenceForm{Enabled: true, Frequency: Weekly, Interval: 1, Days: []time.Weekday{time.Saturday, time.Saturday, time.Sunday}},
			wantDays:     []time.Weekday{time.Saturday, time.Sunday},
			wantInterval: 1,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := tc.form.Build()
			if r == nil || !r.IsRecurring {
				t.Fatalf("Build() = %+v, want recurring payload", r)
			}
			if len(r.DaysOfWeek) != len(tc.wantDays) {
				t.Fatalf("DaysOfWeek = %v, want %v", r.DaysOfWeek, tc.wantDays)
			}
			for i := range tc.wantDays {
				if r.DaysOfWeek[i] != tc.wantDays[i] {
					t.Fatalf("DaysOfWeek = %v, want %v", r.DaysOfWeek, tc.wantDays)
				}
			}
			if tc.wantDays == nil && r.DaysOfWeek != nil {
				t.Fatalf("DaysOfWeek = %v, want nil", r.DaysOfWeek)
			}
			if *r.IntervalCount != tc.wantInterval {
				t.Errorf("IntervalCount = %d, want %d", *r.IntervalCount, tc.wantInterval)
			}
			gotEnd := ""
			if r.EndDate != nil {
				gotEnd = *r.EndDate
			}
			if gotEnd != tc.wantEnd {
				t.Errorf("EndDate = %q, want %q", gotEnd, tc.wantEnd)
			}
		})
	}
}

func TestParseFrequency(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Frequency{"weekly": Weekly, "Daily": Daily, "2": Monthly, " Monthly ": Monthly} {
		got, err := ParseFrequency(in)
		if err != nil || got != want {
			t.Errorf("ParseFrequency(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFrequency("yearly"); err == nil {
		t.Error("ParseFrequency(yearly) should fail")
	}
}
