// Package appointment defines booked slots and the confirmation tracking that
// prompts the professional about past appointments.
package appointment

import (
	"fmt"
	"time"

	"github.com/lfreitas/divan/internal/api"
	"github.com/lfreitas/divan/internal/timeutil"
)

// Status represents the remote state of a slot.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusAvailable Status = "available"
)

// Action is the professional's decision about a past appointment.
type Action string

const (
	ActionConfirmed Action = "confirmed"
	ActionNoShow    Action = "no-show"
)

// Valid returns true if the action is a known value.
func (a Action) Valid() bool {
	return a == ActionConfirmed || a == ActionNoShow
}

// Appointment is a patient's booking of one schedule slot.
type Appointment struct {
	ID          string
	ScheduleID  string
	Date        time.Time
	Hour        string // "HH:MM"
	PatientID   string
	PatientName string
	Status      Status
}

// FromBooking converts a remote booking on the given date.
func FromBooking(b api.Booking, scheduleID string, date time.Time) Appointment {
	status := Status(b.Status)
	if status == "" {
		status = StatusAvailable
	}
	return Appointment{
		ID:          b.SchedulingID,
		ScheduleID:  scheduleID,
		Date:        timeutil.TruncateToDay(date),
		Hour:        b.Hour,
		PatientID:   b.PatientID,
		PatientName: b.PatientName,
		Status:      status,
	}
}

// SlotTime returns the appointment's scheduled instant in local time.
func (a *Appointment) SlotTime() time.Time {
	m := timeutil.TimeToMinutes(a.Hour)
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), m/60, m%60, 0, 0, time.Local)
}

// MinutesPassed returns how many whole minutes now is past the slot time.
// Negative values mean the slot is still in the future.
func (a *Appointment) MinutesPassed(now time.Time) int {
	return int(now.Sub(a.SlotTime()).Minutes())
}

// ConfirmationRecord is the local decision about a past appointment. The JSON
// field names are stable across releases because stored records must survive
// reloads byte-for-byte.
type ConfirmationRecord struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// FormatTimePassed renders elapsed minutes the way the dashboard shows them:
// "<n> minuto(s)" under an hour, "<h> hora(s)" on exact hours, "<h>h <m>min"
// otherwise. Only a unit equal to exactly 1 is singular.
func FormatTimePassed(minutes int) string {
	if minutes < 60 {
		if minutes == 1 {
			return "1 minuto"
		}
		return fmt.Sprintf("%d minutos", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		if h == 1 {
			return "1 hora"
		}
		return fmt.Sprintf("%d horas", h)
	}
	return fmt.Sprintf("%dh %dmin", h, m)
}
