package usecase

import (
	"errors"
	"reflect"
	"testing"

	"appointment-scheduling-service/internal/delivery/dto"
	"appointment-scheduling-service/internal/domain/entity"
	"appointment-scheduling-service/pkg/validator"
)

func TestValidateCreate_Valid(t *testing.T) {
	req := createRequest("P1", "2025-06-01", "09:00", 30, "DrX", "In-Person")

	appointment, err := ValidateCreate(validator.NewValidator(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appointment.ID != "" {
		t.Fatalf("expected no id before insert, got %q", appointment.ID)
	}
	if appointment.Status != entity.AppointmentStatusScheduled {
		t.Fatalf("expected default status Scheduled, got %q", appointment.Status)
	}
	if appointment.DateString() != "2025-06-01" || appointment.TimeString() != "09:00" {
		t.Fatalf("unexpected date/time %s %s", appointment.DateString(), appointment.TimeString())
	}
	if appointment.Mode != entity.AppointmentModeInPerson {
		t.Fatalf("unexpected mode %q", appointment.Mode)
	}
}

func TestValidateCreate_ExplicitStatus(t *testing.T) {
	req := createRequest("P1", "2025-06-01", "09:00", 30, "DrX", "Virtual")
	req.Status = dto.SomeString("Confirmed")

	appointment, err := ValidateCreate(validator.NewValidator(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appointment.Status != entity.AppointmentStatusConfirmed {
		t.Fatalf("expected Confirmed, got %q", appointment.Status)
	}
}

func TestValidateCreate_MissingFieldsReportedTogether(t *testing.T) {
	_, err := ValidateCreate(validator.NewValidator(), &dto.CreateAppointmentRequest{
		Date: "2025-06-01",
		Mode: "Virtual",
	})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := "Missing required fields: patientName, time, duration, doctorName"
	if vErr.Message != want {
		t.Fatalf("expected %q, got %q", want, vErr.Message)
	}
	if !reflect.DeepEqual(vErr.Fields, []string{"patientName", "time", "duration", "doctorName"}) {
		t.Fatalf("unexpected fields %v", vErr.Fields)
	}
}

func TestValidateCreate_FormatChecksInOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *dto.CreateAppointmentRequest)
		message string
	}{
		{
			name: "date checked before time",
			mutate: func(req *dto.CreateAppointmentRequest) {
				req.Date = "06/01/2025"
				req.Time = "9am"
			},
			message: "Invalid date format. Expected YYYY-MM-DD",
		},
		{
			name:    "impossible date",
			mutate:  func(req *dto.CreateAppointmentRequest) { req.Date = "2025-02-30" },
			message: "Invalid date format. Expected YYYY-MM-DD",
		},
		{
			name: "time checked before duration",
			mutate: func(req *dto.CreateAppointmentRequest) {
				req.Time = "25:00"
				req.Duration = -1
			},
			message: "Invalid time format. Expected HH:MM",
		},
		{
			name: "duration checked before status",
			mutate: func(req *dto.CreateAppointmentRequest) {
				req.Duration = -15
				req.Status = dto.SomeString("Pending")
			},
			message: "Duration must be a positive integer (minutes)",
		},
		{
			name: "status checked before mode",
			mutate: func(req *dto.CreateAppointmentRequest) {
				req.Status = dto.SomeString("Pending")
				req.Mode = "Carrier Pigeon"
			},
			message: "Invalid status: Pending. Must be one of Scheduled, Confirmed, Upcoming, Cancelled",
		},
		{
			name:    "explicit empty status",
			mutate:  func(req *dto.CreateAppointmentRequest) { req.Status = dto.SomeString("") },
			message: "Invalid status: . Must be one of Scheduled, Confirmed, Upcoming, Cancelled",
		},
		{
			name:    "explicit null status",
			mutate:  func(req *dto.CreateAppointmentRequest) { req.Status = dto.OptionalString{Set: true, Null: true} },
			message: "Invalid status: null. Must be one of Scheduled, Confirmed, Upcoming, Cancelled",
		},
		{
			name:    "unknown mode",
			mutate:  func(req *dto.CreateAppointmentRequest) { req.Mode = "Carrier Pigeon" },
			message: "Invalid mode: Carrier Pigeon. Must be one of In-Person, Virtual, Phone",
		},
	}

	v := validator.NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest("P1", "2025-06-01", "09:00", 30, "DrX", "In-Person")
			tt.mutate(req)

			_, err := ValidateCreate(v, req)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Message != tt.message {
				t.Fatalf("expected %q, got %q", tt.message, vErr.Message)
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	filter, err := ParseFilter(&dto.AppointmentFilterRequest{Date: "2025-06-01", Status: "Upcoming", DoctorName: "DrX"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.Date.Format(entity.DateLayout) != "2025-06-01" || filter.Status != entity.AppointmentStatusUpcoming || filter.DoctorName != "DrX" {
		t.Fatalf("unexpected filter %+v", filter)
	}

	empty, err := ParseFilter(nil)
	if err != nil || !empty.Date.IsZero() || empty.Status != "" || empty.DoctorName != "" {
		t.Fatalf("expected empty filter, got %+v, %v", empty, err)
	}

	var vErr *ValidationError
	if _, err := ParseFilter(&dto.AppointmentFilterRequest{Date: "tomorrow"}); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for bad date, got %v", err)
	}
	if _, err := ParseFilter(&dto.AppointmentFilterRequest{Status: "Done"}); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for bad status, got %v", err)
	}
}

func TestValidateCreate_MalformedDurationCountsAsPresent(t *testing.T) {
	v := validator.NewValidator()

	req := createRequest("", "2025-06-01", "09:00", 0, "DrX", "Virtual")
	req.DurationMalformed = true
	_, err := ValidateCreate(v, req)
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Message != "Missing required fields: patientName" {
		t.Fatalf("expected only patientName missing, got %v", err)
	}

	req.PatientName = "P1"
	_, err = ValidateCreate(v, req)
	if !errors.As(err, &vErr) || vErr.Message != "Duration must be a positive integer (minutes)" {
		t.Fatalf("expected duration error, got %v", err)
	}
}
