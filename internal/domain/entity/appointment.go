package entity

import (
	"fmt"
	"math"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "Confirmed"
	AppointmentStatusUpcoming  AppointmentStatus = "Upcoming"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// AppointmentStatuses lists every recognized status in display order
var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusScheduled,
	AppointmentStatusConfirmed,
	AppointmentStatusUpcoming,
	AppointmentStatusCancelled,
}

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusUpcoming, AppointmentStatusCancelled:
		return true
	}
	return false
}

// AppointmentMode is how the patient attends the appointment
type AppointmentMode string

const (
	AppointmentModeInPerson AppointmentMode = "In-Person"
	AppointmentModeVirtual  AppointmentMode = "Virtual"
	AppointmentModePhone    AppointmentMode = "Phone"
)

var AppointmentModes = []AppointmentMode{
	AppointmentModeInPerson,
	AppointmentModeVirtual,
	AppointmentModePhone,
}

func (m AppointmentMode) IsValid() bool {
	switch m {
	case AppointmentModeInPerson, AppointmentModeVirtual, AppointmentModePhone:
		return true
	}
	return false
}

// Appointment is a single scheduled encounter between a patient and a doctor.
// Date holds the calendar day at midnight UTC; Time holds the clock time on
// the zero date as produced by time.Parse(TimeLayout, ...).
type Appointment struct {
	ID          string
	PatientName string
	Date        time.Time
	Time        time.Time
	Duration    int
	DoctorName  string
	Status      AppointmentStatus
	Mode        AppointmentMode
}

const minutesPerDay = 24 * 60

// StartsAt combines Date and Time into a single instant
func (a *Appointment) StartsAt() time.Time {
	return a.Date.Add(time.Duration(a.Time.Hour())*time.Hour + time.Duration(a.Time.Minute())*time.Minute)
}

// StartMinute is the slot start in minutes since midnight of Date
func (a *Appointment) StartMinute() int64 {
	return int64(a.Time.Hour()*60 + a.Time.Minute())
}

// EndMinute is the exclusive slot end in minutes since midnight of Date.
// It saturates at math.MaxInt64 instead of wrapping.
func (a *Appointment) EndMinute() int64 {
	start, duration := a.StartMinute(), int64(a.Duration)
	if duration > math.MaxInt64-start {
		return math.MaxInt64
	}
	return start + duration
}

// Overlaps reports whether the half-open slots [start, end) of both appointments intersect.
// Back-to-back appointments do not overlap.
func (a *Appointment) Overlaps(other *Appointment) bool {
	return a.StartMinute() < other.EndMinute() && other.StartMinute() < a.EndMinute()
}

// SharesScheduleWith reports whether both appointments compete for the same doctor on the same day
func (a *Appointment) SharesScheduleWith(other *Appointment) bool {
	return a.DoctorName == other.DoctorName && a.Date.Equal(other.Date)
}

// IsCancelled checks if appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsActive reports whether the appointment occupies its doctor's schedule
func (a *Appointment) IsActive() bool {
	return !a.IsCancelled()
}

func (a *Appointment) DateString() string {
	return a.Date.Format(DateLayout)
}

func (a *Appointment) TimeString() string {
	return a.Time.Format(TimeLayout)
}

// EndTimeString is the wall clock time the slot ends at, wrapping past midnight
func (a *Appointment) EndTimeString() string {
	minute := a.EndMinute() % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
