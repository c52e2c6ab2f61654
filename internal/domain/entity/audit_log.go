package entity

import (
	"time"
)

// AuditLog represents a ledger audit trail entry
type AuditLog struct {
	ID        int64
	RequestID string
	Action    string
	EntityID  string
	Metadata  JSON
	CreatedAt time.Time
}

// JSON holds free-form audit metadata
type JSON map[string]interface{}

// Common audit actions
const (
	AuditActionAppointmentCreate       = "appointment.create"
	AuditActionAppointmentStatusUpdate = "appointment.status_update"
	AuditActionAppointmentDelete       = "appointment.delete"
)

var AuditActions = []string{
	AuditActionAppointmentCreate,
	AuditActionAppointmentStatusUpdate,
	AuditActionAppointmentDelete,
}

// AuditLogFilter narrows the audit trail to one entity and/or one action.
// Empty criteria match everything.
type AuditLogFilter struct {
	EntityID string
	Action   string
}

func (f *AuditLogFilter) Matches(log *AuditLog) bool {
	if f == nil {
		return true
	}
	if f.EntityID != "" && log.EntityID != f.EntityID {
		return false
	}
	if f.Action != "" && log.Action != f.Action {
		return false
	}
	return true
}
