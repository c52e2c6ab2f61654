package converter

import (
	"appointment-scheduling-service/internal/delivery/dto"
	"appointment-scheduling-service/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:          appointment.ID,
		PatientName: appointment.PatientName,
		Date:        appointment.DateString(),
		Time:        appointment.TimeString(),
		Duration:    appointment.Duration,
		DoctorName:  appointment.DoctorName,
		Status:      string(appointment.Status),
		Mode:        string(appointment.Mode),
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
