package entity

import "time"

// AppointmentFilter is a domain-level filter for listing appointments.
// Zero-valued criteria match everything; present criteria must match exactly.
type AppointmentFilter struct {
	Date       time.Time
	Status     AppointmentStatus
	DoctorName string
}

func (f *AppointmentFilter) Matches(a *Appointment) bool {
	if f == nil {
		return true
	}
	if !f.Date.IsZero() && !a.Date.Equal(f.Date) {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.DoctorName != "" && a.DoctorName != f.DoctorName {
		return false
	}
	return true
}
