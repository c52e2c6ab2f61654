package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"appointment-scheduling-service/internal/delivery/dto"
	"appointment-scheduling-service/internal/usecase"
	"appointment-scheduling-service/pkg/response"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Decode keeps filling the other fields after a type mismatch
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) || typeErr.Field != "duration" {
			response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
		req.DurationMalformed = true
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeAppointmentError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &dto.AppointmentFilterRequest{
		Date:       query.Get("date"),
		Status:     query.Get("status"),
		DoctorName: query.Get("doctorName"),
	}

	appointments, err := h.appointmentUsecase.ListAppointments(r.Context(), filter)
	if err != nil {
		writeAppointmentError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	appointment, err := h.appointmentUsecase.UpdateAppointmentStatus(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to update appointment status")
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	removed, err := h.appointmentUsecase.DeleteAppointment(r.Context(), id)
	if err != nil {
		writeAppointmentError(w, err, "Failed to delete appointment")
		return
	}
	if !removed {
		response.NotFound(w, "Appointment not found")
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", dto.DeleteAppointmentResponse{ID: id, Deleted: true})
}

func writeAppointmentError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *usecase.ValidationError
	var conflictErr *usecase.ConflictError

	switch {
	case errors.As(err, &validationErr):
		response.ValidationError(w, validationErr.Message, validationErr)
	case errors.As(err, &conflictErr):
		response.Conflict(w, conflictErr.Error(), conflictErr)
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		response.NotFound(w, "Appointment not found")
	default:
		response.InternalServerError(w, fallback)
	}
}
