package timing

import (
	"testing"
	"time"

	"backend/internal/models"
)

// istTime builds an instant whose IST wall-clock hour is known. IST is
// UTC+05:30, so 03:30 UTC is 09:00 IST.
func istTime(t *testing.T, hour, min int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*3600+1800)
	}
	return time.Date(2025, time.March, 10, hour, min, 0, 0, loc)
}

func TestIsWithinWindowPlain(t *testing.T) {
	cfg := models.OrderTimingConfig{StartHour: 9, EndHour: 21}

	tests := []struct {
		hour, min int
		want      bool
	}{
		{8, 59, false},
		{9, 0, true},  // start boundary inclusive
		{14, 30, true},
		{20, 59, true}, // just before end
		{21, 0, false}, // end boundary exclusive
		{23, 0, false},
		{0, 0, false},
	}

	for _, tt := range tests {
		if got := IsWithinWindow(cfg, istTime(t, tt.hour, tt.min)); got != tt.want {
			t.Errorf("IsWithinWindow at %02d:%02d IST = %v, want %v", tt.hour, tt.min, got, tt.want)
		}
	}
}

func TestIsWithinWindowWraparound(t *testing.T) {
	cfg := models.OrderTimingConfig{StartHour: 21, EndHour: 6}

	tests := []struct {
		hour int
		want bool
	}{
		{20, false},
		{21, true},
		{23, true},
		{0, true},
		{5, true},
		{6, false},
		{12, false},
	}

	for _, tt := range tests {
		if got := IsWithinWindow(cfg, istTime(t, tt.hour, 15)); got != tt.want {
			t.Errorf("wraparound IsWithinWindow at %02d:15 IST = %v, want %v", tt.hour, got, tt.want)
		}
	}
}

func TestIsWithinWindowConvertsFromUTC(t *testing.T) {
	cfg := models.OrderTimingConfig{StartHour: 9, EndHour: 21}

	// 03:30 UTC == 09:00 IST, inside the window even though the UTC hour is 3.
	if !IsWithinWindow(cfg, time.Date(2025, time.March, 10, 3, 30, 0, 0, time.UTC)) {
		t.Error("expected 03:30 UTC (09:00 IST) to be inside the window")
	}
	// 16:00 UTC == 21:30 IST, outside.
	if IsWithinWindow(cfg, time.Date(2025, time.March, 10, 16, 0, 0, 0, time.UTC)) {
		t.Error("expected 16:00 UTC (21:30 IST) to be outside the window")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   models.OrderTimingConfig
		want models.OrderTimingConfig
	}{
		{models.OrderTimingConfig{StartHour: 9, EndHour: 21}, models.OrderTimingConfig{StartHour: 9, EndHour: 21}},
		{models.OrderTimingConfig{StartHour: 21, EndHour: 0}, models.OrderTimingConfig{StartHour: 21, EndHour: 24}},
		{models.OrderTimingConfig{StartHour: -3, EndHour: 30}, models.OrderTimingConfig{StartHour: 0, EndHour: 24}},
		{models.OrderTimingConfig{StartHour: 10, EndHour: 10}, Defaults},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestFormatWindow(t *testing.T) {
	got := FormatWindow(models.OrderTimingConfig{StartHour: 9, EndHour: 21})
	if got != "9:00 AM to 9:00 PM (IST)" {
		t.Errorf("FormatWindow = %q", got)
	}
	got = FormatWindow(models.OrderTimingConfig{StartHour: 0, EndHour: 24})
	if got != "12:00 AM to 12:00 AM (IST)" {
		t.Errorf("FormatWindow midnight = %q", got)
	}
}
