package sheet

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Spreadsheet serials count days from a 1900 epoch that wrongly treats 1900
// as a leap year, so day 60 names the nonexistent 1900-02-29. Anchoring the
// epoch at 1899-12-30 is correct from day 61 onward; earlier serials are one
// day short and get shifted in ParseSerial.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseSerial converts a spreadsheet date serial into a calendar date in UTC.
// It accepts the scalar shapes rows carry (float64, int, numeric string) and
// returns nil for absent, non-numeric, zero, or negative input. It is total:
// no input makes it panic or error.
func ParseSerial(v any) *time.Time {
	serial, ok := serialValue(v)
	if !ok || serial <= 0 {
		return nil
	}
	days := int(math.Floor(serial))
	if days < 60 {
		days++
	}
	t := serialEpoch.AddDate(0, 0, days)
	return &t
}

func serialValue(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
