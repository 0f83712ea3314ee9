// Package timing implements the daily order-acceptance window. The window
// is defined by whole hours in IST and may wrap past midnight.
package timing

import (
	"fmt"
	"time"

	"backend/internal/models"
)

// Defaults is used whenever no timing row has been written yet, or the
// stored row is degenerate (start == end).
var Defaults = models.OrderTimingConfig{StartHour: 9, EndHour: 21}

var ist *time.Location

func init() {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// IST has no DST, so a fixed offset is equivalent.
		loc = time.FixedZone("IST", 5*3600+1800)
	}
	ist = loc
}

// Normalize clamps hours into range and resolves the stored representation:
// start in [0,23], end in [0,24], end==0 with a later start means midnight
// (24). A degenerate start==end falls back to Defaults.
func Normalize(cfg models.OrderTimingConfig) models.OrderTimingConfig {
	start := clampHour(cfg.StartHour, 23)
	end := clampHour(cfg.EndHour, 24)

	if end == 0 && start > 0 {
		end = 24
	}
	if start == end {
		return Defaults
	}
	return models.OrderTimingConfig{StartHour: start, EndHour: end}
}

func clampHour(h, max int) int {
	if h < 0 {
		return 0
	}
	if h > max {
		return max
	}
	return h
}

// IsWithinWindow reports whether now, converted to IST, falls inside the
// configured window. A plain window is [start, end); a wraparound window
// (start > end) accepts hour >= start or hour < end.
func IsWithinWindow(cfg models.OrderTimingConfig, now time.Time) bool {
	hour := now.In(ist).Hour()

	if cfg.StartHour < cfg.EndHour {
		return hour >= cfg.StartHour && hour < cfg.EndHour
	}
	return hour >= cfg.StartHour || hour < cfg.EndHour
}

// FormatWindow renders the window for the store-closed message,
// e.g. "9:00 AM to 9:00 PM (IST)".
func FormatWindow(cfg models.OrderTimingConfig) string {
	return fmt.Sprintf("%s to %s (IST)", hourLabel(cfg.StartHour), hourLabel(cfg.EndHour))
}

func hourLabel(hour int) string {
	h := ((hour % 24) + 24) % 24
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	return fmt.Sprintf("%d:00 %s", h12, period)
}
