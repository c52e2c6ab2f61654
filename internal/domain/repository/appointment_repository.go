package repository

import (
	"context"
	"errors"

	"appointment-scheduling-service/internal/domain/entity"
)

// ErrDuplicateAppointmentID signals that an insert would break id uniqueness
var ErrDuplicateAppointmentID = errors.New("appointment id already exists")

// AppointmentRepository is the authoritative appointment store.
// Lookups report absence as (nil, nil). Returned records are copies.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id string) (*entity.Appointment, error)
	FindAll(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	// UpdateStatus returns the updated record and the status it replaced.
	UpdateStatus(ctx context.Context, id string, status entity.AppointmentStatus) (*entity.Appointment, entity.AppointmentStatus, error)
	// Delete returns the removed record, or nil when nothing matched.
	Delete(ctx context.Context, id string) (*entity.Appointment, error)
}
