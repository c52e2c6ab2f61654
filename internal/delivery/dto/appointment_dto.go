package dto

import "encoding/json"

// Request DTOs

// CreateAppointmentRequest field order is the order missing fields are reported in
type CreateAppointmentRequest struct {
	PatientName string         `json:"patientName" validate:"required"`
	Date        string         `json:"date" validate:"required"` // Format: YYYY-MM-DD
	Time        string         `json:"time" validate:"required"` // Format: HH:MM
	Duration    int            `json:"duration" validate:"required"`
	DoctorName  string         `json:"doctorName" validate:"required"`
	Mode        string         `json:"mode" validate:"required"`
	Status      OptionalString `json:"status"`

	// DurationMalformed is set by the decoder when duration was present but not an integer
	DurationMalformed bool `json:"-"`
}

// OptionalString tells an absent field apart from an explicit null
type OptionalString struct {
	Value string
	Set   bool
	Null  bool
}

func SomeString(value string) OptionalString {
	return OptionalString{Value: value, Set: true}
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status"`
}

// AppointmentFilterRequest mirrors the list query string; empty values are ignored
type AppointmentFilterRequest struct {
	Date       string
	Status     string
	DoctorName string
}

// Response DTOs

type AppointmentResponse struct {
	ID          string `json:"id"`
	PatientName string `json:"patientName"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Duration    int    `json:"duration"`
	DoctorName  string `json:"doctorName"`
	Status      string `json:"status"`
	Mode        string `json:"mode"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type DeleteAppointmentResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
