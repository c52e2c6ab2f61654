package usecase

import (
	"context"
	"errors"
	"fmt"

	"appointment-scheduling-service/internal/converter"
	"appointment-scheduling-service/internal/delivery/dto"
	"appointment-scheduling-service/internal/domain/entity"
	"appointment-scheduling-service/internal/domain/repository"
	"appointment-scheduling-service/internal/service"
	"appointment-scheduling-service/pkg/metrics"
	"appointment-scheduling-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	appointmentIDPrefix = "apt-"
	maxIDAttempts       = 5

	auditEntityAppointment = "appointment"
)

type AppointmentUsecase interface {
	ListAppointments(ctx context.Context, req *dto.AppointmentFilterRequest) (*dto.AppointmentListResponse, error)
	GetAppointment(ctx context.Context, id string) (*dto.AppointmentResponse, error)
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateAppointmentStatus(ctx context.Context, id string, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id string) (bool, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	slotLocker      *service.SlotLocker
	auditService    service.AuditService
	metrics         *metrics.Collector
	validator       *validator.CustomValidator
	newID           func() string
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	slotLocker *service.SlotLocker,
	auditService service.AuditService,
	metrics *metrics.Collector,
	validator *validator.CustomValidator,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		slotLocker:      slotLocker,
		auditService:    auditService,
		metrics:         metrics,
		validator:       validator,
		newID:           newAppointmentID,
	}
}

// newAppointmentID returns "apt-" followed by the first 8 hex chars of a random UUID
func newAppointmentID() string {
	return appointmentIDPrefix + uuid.NewString()[:8]
}

func (u *appointmentUsecase) ListAppointments(ctx context.Context, req *dto.AppointmentFilterRequest) (*dto.AppointmentListResponse, error) {
	filter, err := ParseFilter(req)
	if err != nil {
		u.metrics.ValidationFailures.WithLabelValues("list").Inc()
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id string) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := ValidateCreate(u.validator, req)
	if err != nil {
		u.metrics.ValidationFailures.WithLabelValues("create").Inc()
		return nil, err
	}

	// Conflict check and insert must see the same schedule
	unlock := u.slotLocker.Lock(appointment.DoctorName, appointment.Date)
	defer unlock()

	existing, err := u.appointmentRepo.FindAll(ctx, &entity.AppointmentFilter{
		Date:       appointment.Date,
		DoctorName: appointment.DoctorName,
	})
	if err != nil {
		u.log.Warnf("Failed to load doctor schedule: %+v", err)
		return nil, err
	}

	if err := CheckConflict(appointment, existing); err != nil {
		u.metrics.ConflictsRejected.Inc()
		u.log.Infof("Appointment rejected: %v", err)
		return nil, err
	}

	if err := u.insertWithFreshID(ctx, appointment); err != nil {
		return nil, err
	}

	response := converter.AppointmentToResponse(appointment)

	if err := u.auditService.LogCreate(ctx, entity.AuditActionAppointmentCreate, auditEntityAppointment, appointment.ID, response); err != nil {
		u.log.Warnf("Failed to audit appointment create: %+v", err)
	}

	u.metrics.AppointmentsCreated.Inc()
	u.log.Infof("Appointment created: id=%s doctor=%s date=%s time=%s duration=%d",
		appointment.ID, appointment.DoctorName, appointment.DateString(), appointment.TimeString(), appointment.Duration)

	return response, nil
}

// insertWithFreshID assigns ids until the store accepts one or maxIDAttempts is reached
func (u *appointmentUsecase) insertWithFreshID(ctx context.Context, appointment *entity.Appointment) error {
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		appointment.ID = u.newID()

		err := u.appointmentRepo.Create(ctx, appointment)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateAppointmentID) {
			u.log.Warnf("Failed to create appointment: %+v", err)
			return err
		}

		u.metrics.IDCollisions.Inc()
		u.log.Warnf("Appointment id collision on attempt %d: %s", attempt, appointment.ID)
	}

	appointment.ID = ""
	u.log.Errorf("Failed to create appointment: %+v", ErrIDGenerationExhausted)
	return fmt.Errorf("after %d attempts: %w", maxIDAttempts, ErrIDGenerationExhausted)
}

func (u *appointmentUsecase) UpdateAppointmentStatus(ctx context.Context, id string, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	status, err := ParseStatus(req.Status)
	if err != nil {
		u.metrics.ValidationFailures.WithLabelValues("update_status").Inc()
		return nil, err
	}

	appointment, previous, err := u.appointmentRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if previous == entity.AppointmentStatusCancelled && appointment.IsActive() {
		u.warnOnReactivationOverlap(ctx, appointment)
	}

	if err := u.auditService.LogUpdate(ctx, entity.AuditActionAppointmentStatusUpdate, auditEntityAppointment, appointment.ID,
		entity.JSON{"status": string(previous)},
		entity.JSON{"status": string(appointment.Status)},
	); err != nil {
		u.log.Warnf("Failed to audit appointment status update: %+v", err)
	}

	u.metrics.StatusUpdates.WithLabelValues(string(status)).Inc()
	u.log.Infof("Appointment status updated: id=%s %s -> %s", appointment.ID, previous, appointment.Status)

	return converter.AppointmentToResponse(appointment), nil
}

// warnOnReactivationOverlap reports, without blocking the update, a reactivated
// appointment that now overlaps another active one
func (u *appointmentUsecase) warnOnReactivationOverlap(ctx context.Context, appointment *entity.Appointment) {
	others, err := u.appointmentRepo.FindAll(ctx, &entity.AppointmentFilter{
		Date:       appointment.Date,
		DoctorName: appointment.DoctorName,
	})
	if err != nil {
		u.log.Warnf("Failed to load doctor schedule: %+v", err)
		return
	}

	if err := CheckConflict(appointment, others); err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			u.log.WithFields(logrus.Fields{
				"appointment_id": appointment.ID,
				"overlaps_with":  conflict.ExistingID,
			}).Warnf("Reactivated appointment overlaps an active appointment: %v", err)
		}
	}
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id string) (bool, error) {
	removed, err := u.appointmentRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return false, err
	}
	if removed == nil {
		return false, nil
	}

	if err := u.auditService.LogDelete(ctx, entity.AuditActionAppointmentDelete, auditEntityAppointment, removed.ID,
		converter.AppointmentToResponse(removed),
	); err != nil {
		u.log.Warnf("Failed to audit appointment delete: %+v", err)
	}

	u.metrics.AppointmentsDeleted.Inc()
	u.log.Infof("Appointment deleted: id=%s", removed.ID)

	return true, nil
}
