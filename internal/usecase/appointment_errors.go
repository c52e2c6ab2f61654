package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrIDGenerationExhausted = errors.New("could not generate a unique appointment id")
)

// ValidationError rejects a request before any state is touched
type ValidationError struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError names the first active appointment that overlaps the requested slot
type ConflictError struct {
	DoctorName    string `json:"doctorName"`
	Date          string `json:"date"`
	ExistingID    string `json:"existingId"`
	ExistingStart string `json:"existingStart"`
	ExistingEnd   string `json:"existingEnd"`
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("Time conflict detected. Doctor %s already has an appointment from %s to %s on %s",
		e.DoctorName, e.ExistingStart, e.ExistingEnd, e.Date)
}
