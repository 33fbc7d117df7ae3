package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// FocusSchedule is the daily window during which tracked time counts as billable
type FocusSchedule struct {
	Enabled bool   `json:"enabled"`
	End     string `json:"end"`
	Start   string `json:"start"`
}

// DefaultFocusSchedule is a disabled 09:00-17:00 window
func DefaultFocusSchedule() FocusSchedule {
	return FocusSchedule{Enabled: false, Start: "09:00", End: "17:00"}
}

// Validate checks both boundaries parse as HH:MM
func (s FocusSchedule) Validate() error {
	if _, err := parseClock(s.Start); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidSchedule, err)
	}
	if _, err := parseClock(s.End); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidSchedule, err)
	}
	return nil
}

// BillableSeconds returns how many of the delta seconds starting at start fall inside
// the window. The interval is split at the window boundaries and at midnight, so a tick
// that straddles a boundary is counted per portion. Boundaries use start's location.
func (s FocusSchedule) BillableSeconds(start time.Time, delta int64) int64 {
	if delta <= 0 {
		return 0
	}
	if !s.Enabled {
		return delta
	}
	startSec, err1 := parseClock(s.Start)
	endSec, err2 := parseClock(s.End)
	if err1 != nil || err2 != nil {
		// an unparseable schedule never reaches here through Validate; count everything
		return delta
	}
	if startSec == endSec {
		return 0
	}

	loc := start.Location()
	end := start.Add(time.Duration(delta) * time.Second)
	cursor := start
	var billable time.Duration

	for cursor.Before(end) {
		y, m, d := cursor.Date()
		boundaries := []time.Time{
			atSecondOfDay(y, m, d, startSec, loc),
			atSecondOfDay(y, m, d, endSec, loc),
			time.Date(y, m, d+1, 0, 0, 0, 0, loc),
		}
		segEnd := end
		for _, b := range boundaries {
			if b.After(cursor) && b.Before(segEnd) {
				segEnd = b
			}
		}
		if inWindow(secondOfDay(cursor), startSec, endSec) {
			billable += segEnd.Sub(cursor)
		}
		cursor = segEnd
	}

	return int64(math.Round(billable.Seconds()))
}

func inWindow(sec, start, end int) bool {
	if start < end {
		return sec >= start && sec < end
	}
	// overnight window, e.g. 22:00-06:00
	return sec >= start || sec < end
}

func secondOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

func atSecondOfDay(y int, m time.Month, d, sec int, loc *time.Location) time.Time {
	return time.Date(y, m, d, sec/3600, (sec%3600)/60, sec%60, 0, loc)
}

// parseClock parses "HH:MM" into seconds since midnight
func parseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 24 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if h == 24 && m != 0 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h*3600 + m*60, nil
}

// DayKey returns the calendar day of t in its own location
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// ParseDeliveryDate validates an ISO calendar date without time component
func ParseDeliveryDate(s string) (time.Time, error) {
	t, err := time.Parse(dayLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDeliveryDate, s)
	}
	return t, nil
}
