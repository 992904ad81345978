package sheet

import (
	"testing"
	"time"
)

func TestParseSerial(t *testing.T) {
	date := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	cases := []struct {
		name  string
		input any
		want  *time.Time
	}{
		{"first serial day", 1, date(1900, time.January, 1)},
		{"day before phantom leap day", 59, date(1900, time.February, 28)},
		{"day after phantom leap day", 61, date(1900, time.March, 1)},
		{"modern serial", 45108, date(2023, time.July, 1)},
		{"float serial", 45108.0, date(2023, time.July, 1)},
		{"fractional serial truncates to the day", 45108.75, date(2023, time.July, 1)},
		{"numeric string", "45108", date(2023, time.July, 1)},
		{"padded numeric string", "  45108  ", date(2023, time.July, 1)},
		{"zero serial", 0, nil},
		{"negative serial", -3, nil},
		{"non-numeric string", "abc", nil},
		{"empty string", "", nil},
		{"absent value", nil, nil},
		{"unsupported type", true, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseSerial(tc.input)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected no date, got %v", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %v, got no date", tc.want)
			}
			if !got.Equal(*tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
