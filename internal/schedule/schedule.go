// Package schedule defines availability windows and the slot arithmetic that
// turns them into bookable times.
package schedule

import (
	"errors"
	"sort"
	"time"

	"github.com/lfreitas/divan/internal/timeutil"
)

// Validation errors.
var (
	ErrInvalidInterval = errors.New("interval must be a positive number of minutes")
	ErrEndBeforeStart  = errors.New("end time must be after start time")
	ErrNoCustomTimes   = errors.New("at least one custom time is required")
)

// Schedule is one day's availability window for a professional.
//
// When Controlled is true the bookable slots are generated from Start/End and
// IntervalMinutes; otherwise CustomTimes is the explicit slot list and
// Start/End only mirror its first entry.
type Schedule struct {
	ID                     string
	Date                   time.Time
	Start                  string // "HH:MM"
	End                    string // "HH:MM"
	IntervalMinutes        int
	Controlled             bool
	CustomTimes            []string // "HH:MM", ordered, deduplicated
	CancellationPolicyDays int
	AveragePrice           *float64
	Observation            string
}

// GenerateSlots produces the ordered slot times t0, t0+i, t0+2i, ... strictly
// below end. Equal or inverted start/end (or unset times) yield an empty
// sequence; an interval that does not divide the range simply stops at the
// last value below end.
func GenerateSlots(start, end string, intervalMinutes int) ([]string, error) {
	if intervalMinutes <= 0 {
		return nil, ErrInvalidInterval
	}
	if start == "" || end == "" {
		return nil, nil
	}

	from := timeutil.TimeToMinutes(start)
	to := timeutil.TimeToMinutes(end)
	if from >= to {
		return nil, nil
	}

	var slots []string
	for m := from; m < to; m += intervalMinutes {
		slots = append(slots, timeutil.MinutesToTime(m))
	}
	return slots, nil
}

// Slots returns the bookable times of the schedule: generated when
// interval-controlled, the custom list otherwise.
func (s *Schedule) Slots() ([]string, error) {
	if s.Controlled {
		return GenerateSlots(s.Start, s.End, s.IntervalMinutes)
	}
	if len(s.CustomTimes) == 0 {
		return nil, ErrNoCustomTimes
	}
	return NormalizeCustomTimes(s.CustomTimes), nil
}

// NormalizeCustomTimes returns the custom times sorted ascending with
// duplicates removed.
func NormalizeCustomTimes(times []string) []string {
	seen := make(map[string]bool, len(times))
	out := make([]string, 0, len(times))
	for _, t := range times {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
