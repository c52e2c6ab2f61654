package dto

import (
	"encoding/json"
	"testing"
)

func TestCreateAppointmentRequest_Status(t *testing.T) {
	tests := []struct {
		name string
		body string
		want OptionalString
	}{
		{"absent", `{"patientName":"P1"}`, OptionalString{}},
		{"null", `{"status":null}`, OptionalString{Set: true, Null: true}},
		{"empty", `{"status":""}`, OptionalString{Set: true}},
		{"value", `{"status":"Confirmed"}`, SomeString("Confirmed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateAppointmentRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if req.Status != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, req.Status)
			}
		})
	}
}

func TestCreateAppointmentRequest_NonStringStatus(t *testing.T) {
	var req CreateAppointmentRequest
	if err := json.Unmarshal([]byte(`{"status":1}`), &req); err == nil {
		t.Fatal("expected numeric status to fail decoding")
	}
}
