// Package timeutil provides wall-clock time helpers and the naive local
// timestamp encoding used by the remote scheduling API.
package timeutil

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrInvalidNaiveLocal = errors.New("timestamp must start with YYYY-MM-DDTHH:MM:SS")
)

// naiveLayout is the wire layout for naive local timestamps: zero-padded,
// second precision, no timezone suffix.
const naiveLayout = "2006-01-02T15:04:05"

// ValidateTime checks that a time string is in HH:MM format.
func ValidateTime(s string) error {
	if len(s) != 5 || s[2] != ':' {
		return ErrInvalidTimeFormat
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	if len(t) < 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= 24*60 {
		m = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseDate parses a date string in YYYY-MM-DD format as local midnight.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	monday = t.AddDate(0, 0, -(weekday - 1))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// NaiveLocal is a wall-clock instant with no timezone attached.
//
// The remote scheduling API exchanges timestamps as ISO strings without a zone
// suffix and expects both sides to treat the literal fields as the
// professional's local time. Encoding and decoding therefore never apply a UTC
// conversion: whatever digits go out come back in, regardless of the machine's
// offset. Keep both directions symmetric or mapped times drift by the local
// UTC offset.
type NaiveLocal struct {
	t time.Time
}

// NewNaiveLocal combines a calendar date and an "HH:MM" wall-clock time.
func NewNaiveLocal(date time.Time, hhmm string) NaiveLocal {
	m := TimeToMinutes(hhmm)
	return NaiveLocal{t: time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, time.Local)}
}

// ParseNaiveLocal decodes a timestamp by reading the literal date and time
// fields, ignoring any timezone suffix the remote may have appended.
func ParseNaiveLocal(s string) (NaiveLocal, error) {
	if len(s) < len(naiveLayout) {
		return NaiveLocal{}, ErrInvalidNaiveLocal
	}
	t, err := time.ParseInLocation(naiveLayout, s[:len(naiveLayout)], time.Local)
	if err != nil {
		return NaiveLocal{}, ErrInvalidNaiveLocal
	}
	return NaiveLocal{t: t}, nil
}

// String encodes the instant in the wire layout, without a timezone suffix.
func (n NaiveLocal) String() string {
	return n.t.Format(naiveLayout)
}

// Time returns the instant interpreted in the local timezone.
func (n NaiveLocal) Time() time.Time {
	return n.t
}

// Date returns the calendar date at local midnight.
func (n NaiveLocal) Date() time.Time {
	return TruncateToDay(n.t)
}

// Clock returns the wall-clock time in "HH:MM" format.
func (n NaiveLocal) Clock() string {
	return n.t.Format("15:04")
}

// After reports whether the instant is strictly after t.
func (n NaiveLocal) After(t time.Time) bool {
	return n.t.After(t)
}

// IsZero reports whether the instant is unset.
func (n NaiveLocal) IsZero() bool {
	return n.t.IsZero()
}

// MarshalJSON encodes the instant as a quoted naive local string.
func (n NaiveLocal) MarshalJSON() ([]byte, error) {
	return []byte(`"` + n.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted timestamp, tolerating timezone suffixes.
func (n *NaiveLocal) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return ErrInvalidNaiveLocal
	}
	parsed, err := ParseNaiveLocal(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
