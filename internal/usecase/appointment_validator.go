package usecase

import (
	"strings"
	"time"

	"appointment-scheduling-service/internal/delivery/dto"
	"appointment-scheduling-service/internal/domain/entity"
	"appointment-scheduling-service/pkg/validator"
)

// ValidateCreate checks a create request and builds the candidate appointment.
// Every missing field is reported at once; format checks stop at the first
// failure in the order date, time, duration, status, mode. The returned
// appointment has no id yet.
func ValidateCreate(v *validator.CustomValidator, req *dto.CreateAppointmentRequest) (*entity.Appointment, error) {
	if err := v.Validate(req); err != nil {
		missing := v.MissingFields(err)
		if req.DurationMalformed {
			missing = without(missing, "duration")
		}
		if len(missing) > 0 {
			return nil, &ValidationError{
				Message: "Missing required fields: " + strings.Join(missing, ", "),
				Fields:  missing,
			}
		}
		if !req.DurationMalformed {
			return nil, newValidationError("Invalid request: %v", err)
		}
	}

	date, err := time.Parse(entity.DateLayout, req.Date)
	if err != nil {
		return nil, &ValidationError{Message: "Invalid date format. Expected YYYY-MM-DD", Fields: []string{"date"}}
	}

	clock, err := time.Parse(entity.TimeLayout, req.Time)
	if err != nil {
		return nil, &ValidationError{Message: "Invalid time format. Expected HH:MM", Fields: []string{"time"}}
	}

	if req.DurationMalformed || req.Duration <= 0 {
		return nil, &ValidationError{Message: "Duration must be a positive integer (minutes)", Fields: []string{"duration"}}
	}

	status := entity.AppointmentStatusScheduled
	if req.Status.Set {
		raw := req.Status.Value
		if req.Status.Null {
			raw = "null"
		}
		if status, err = ParseStatus(raw); err != nil {
			return nil, err
		}
	}

	mode, err := ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	return &entity.Appointment{
		PatientName: req.PatientName,
		Date:        date,
		Time:        clock,
		Duration:    req.Duration,
		DoctorName:  req.DoctorName,
		Status:      status,
		Mode:        mode,
	}, nil
}

func without(fields []string, drop string) []string {
	kept := fields[:0]
	for _, f := range fields {
		if f != drop {
			kept = append(kept, f)
		}
	}
	return kept
}

func ParseStatus(raw string) (entity.AppointmentStatus, error) {
	status := entity.AppointmentStatus(raw)
	if !status.IsValid() {
		names := make([]string, len(entity.AppointmentStatuses))
		for i, s := range entity.AppointmentStatuses {
			names[i] = string(s)
		}
		return "", &ValidationError{
			Message: "Invalid status: " + raw + ". Must be one of " + strings.Join(names, ", "),
			Fields:  []string{"status"},
		}
	}
	return status, nil
}

func ParseMode(raw string) (entity.AppointmentMode, error) {
	mode := entity.AppointmentMode(raw)
	if !mode.IsValid() {
		names := make([]string, len(entity.AppointmentModes))
		for i, m := range entity.AppointmentModes {
			names[i] = string(m)
		}
		return "", &ValidationError{
			Message: "Invalid mode: " + raw + ". Must be one of " + strings.Join(names, ", "),
			Fields:  []string{"mode"},
		}
	}
	return mode, nil
}

// ParseFilter turns list query parameters into a domain filter
func ParseFilter(req *dto.AppointmentFilterRequest) (*entity.AppointmentFilter, error) {
	filter := &entity.AppointmentFilter{}
	if req == nil {
		return filter, nil
	}

	if req.Date != "" {
		date, err := time.Parse(entity.DateLayout, req.Date)
		if err != nil {
			return nil, &ValidationError{Message: "Invalid date format. Expected YYYY-MM-DD", Fields: []string{"date"}}
		}
		filter.Date = date
	}

	if req.Status != "" {
		status, err := ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}

	filter.DoctorName = req.DoctorName
	return filter, nil
}
