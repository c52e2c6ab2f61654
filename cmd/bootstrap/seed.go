package bootstrap

import (
	"context"
	"fmt"
	"time"

	"appointment-scheduling-service/internal/domain/entity"
	"appointment-scheduling-service/internal/domain/repository"
)

type demoAppointment struct {
	id       string
	patient  string
	dayAfter int
	clock    string
	duration int
	doctor   string
	status   entity.AppointmentStatus
	mode     entity.AppointmentMode
}

var demoAppointments = []demoAppointment{
	{"apt-001", "patient_A", 1, "09:00", 30, "Dr. A", entity.AppointmentStatusConfirmed, entity.AppointmentModeInPerson},
	{"apt-002", "patient_B", 1, "10:30", 45, "Dr. A", entity.AppointmentStatusScheduled, entity.AppointmentModeVirtual},
	{"apt-003", "patient_C", 2, "14:00", 60, "Dr. B", entity.AppointmentStatusUpcoming, entity.AppointmentModeInPerson},
	{"apt-004", "patient_D", 2, "15:30", 30, "Dr. B", entity.AppointmentStatusConfirmed, entity.AppointmentModePhone},
	{"apt-005", "patient_E", 3, "11:00", 45, "Dr. A", entity.AppointmentStatusScheduled, entity.AppointmentModeVirtual},
	{"apt-006", "patient_F", 3, "13:00", 30, "Dr. A", entity.AppointmentStatusUpcoming, entity.AppointmentModeInPerson},
	{"apt-007", "patient_G", 4, "09:30", 60, "Dr. B", entity.AppointmentStatusConfirmed, entity.AppointmentModeInPerson},
	{"apt-008", "patient_H", 5, "10:00", 30, "Dr. A", entity.AppointmentStatusCancelled, entity.AppointmentModeVirtual},
	{"apt-009", "patient_I", 5, "14:30", 45, "Dr. B", entity.AppointmentStatusScheduled, entity.AppointmentModeInPerson},
	{"apt-010", "patient_J", 6, "16:00", 30, "Dr. A", entity.AppointmentStatusUpcoming, entity.AppointmentModePhone},
	{"apt-011", "patient_K", 7, "08:00", 60, "Dr. B", entity.AppointmentStatusConfirmed, entity.AppointmentModeInPerson},
	{"apt-012", "patient_L", 1, "11:30", 30, "Dr. A", entity.AppointmentStatusScheduled, entity.AppointmentModeVirtual},
}

// SeedDemoAppointments fills an empty ledger with the demo schedule, dated
// relative to the calendar day of now
func SeedDemoAppointments(ctx context.Context, repo repository.AppointmentRepository, now time.Time) error {
	today, err := time.Parse(entity.DateLayout, now.Format(entity.DateLayout))
	if err != nil {
		return fmt.Errorf("failed to derive seed date: %w", err)
	}

	for _, demo := range demoAppointments {
		clock, err := time.Parse(entity.TimeLayout, demo.clock)
		if err != nil {
			return fmt.Errorf("invalid demo time %q: %w", demo.clock, err)
		}

		appointment := &entity.Appointment{
			ID:          demo.id,
			PatientName: demo.patient,
			Date:        today.AddDate(0, 0, demo.dayAfter),
			Time:        clock,
			Duration:    demo.duration,
			DoctorName:  demo.doctor,
			Status:      demo.status,
			Mode:        demo.mode,
		}
		if err := repo.Create(ctx, appointment); err != nil {
			return fmt.Errorf("failed to seed appointment %s: %w", demo.id, err)
		}
	}

	return nil
}
