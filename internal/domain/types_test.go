package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimeUnmarshal(t *testing.T) {
	t.Parallel()

	want := time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"rfc3339 utc", `"2025-03-14T18:30:00Z"`, want},
		{"rfc3339 offset", `"2025-03-14T14:30:00-04:00"`, want},
		{"no zone is utc", `"2025-03-14T18:30:00"`, want},
		{"dotnet fraction", `"2025-03-14T18:30:00.0000000"`, want},
		{"null", `null`, time.Time{}},
		{"empty", `""`, time.Time{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got Time
			if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tc.in, err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("Unmarshal(%s) = %v, want %v", tc.in, got.Time, tc.want)
			}
		})
	}

	var bad Time
	if err := json.Unmarshal([]byte(`"next tuesday"`), &bad); err == nil {
		t.Fatal("expected error for unparseable timestamp")
	}
}

func TestTimeMarshalZeroIsNull(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(struct {
		At Time `json:"at"`
	}{})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"at":null}` {
		t.Fatalf("got %s", b)
	}
}
