package usecase

import (
	"context"
	"io"
	"testing"

	"appointment-scheduling-service/internal/delivery/dto"
	domainRepo "appointment-scheduling-service/internal/domain/repository"
	"appointment-scheduling-service/internal/repository"
	"appointment-scheduling-service/internal/service"
	"appointment-scheduling-service/pkg/metrics"
	"appointment-scheduling-service/pkg/validator"

	"github.com/sirupsen/logrus"
)

type testLedger struct {
	usecase      *appointmentUsecase
	appointments domainRepo.AppointmentRepository
	auditLogs    domainRepo.AuditLogRepository
	metrics      *metrics.Collector
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestLedger(t *testing.T) *testLedger {
	t.Helper()

	log := newTestLogger()
	appointments := repository.NewAppointmentRepository()
	auditLogs := repository.NewAuditLogRepository()
	collector := metrics.NewCollector("test")

	locker := service.NewSlotLocker(log)
	t.Cleanup(locker.Stop)

	uc := NewAppointmentUsecase(
		log,
		appointments,
		locker,
		service.NewAuditService(log, auditLogs),
		collector,
		validator.NewValidator(),
	)

	return &testLedger{
		usecase:      uc.(*appointmentUsecase),
		appointments: appointments,
		auditLogs:    auditLogs,
		metrics:      collector,
	}
}

func createRequest(patient, date, clock string, duration int, doctor, mode string) *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		PatientName: patient,
		Date:        date,
		Time:        clock,
		Duration:    duration,
		DoctorName:  doctor,
		Mode:        mode,
	}
}

func (l *testLedger) mustCreate(t *testing.T, req *dto.CreateAppointmentRequest) *dto.AppointmentResponse {
	t.Helper()
	created, err := l.usecase.CreateAppointment(context.Background(), req)
	if err != nil {
		t.Fatalf("create %+v: %v", req, err)
	}
	return created
}

func (l *testLedger) count(t *testing.T) int {
	t.Helper()
	all, err := l.appointments.FindAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	return len(all)
}
