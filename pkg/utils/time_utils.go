package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock times inside a day are carried as minutes from midnight so slot
// arithmetic stays integer-only and deterministic.

// ParseClock converts "HH:MM" to minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock converts minutes from midnight back to "HH:MM".
func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DaysBetween returns the inclusive day count of a trip date range.
// A same-day trip counts as one day.
func DaysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	d := int(e.Sub(s).Hours()/24) + 1
	if d < 1 {
		return 1
	}
	return d
}

// DateOfDay returns the calendar date of a 0-based trip day.
func DateOfDay(start time.Time, day int) time.Time {
	return start.AddDate(0, 0, day)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
