package dto

import (
	"time"

	"appointment-scheduling-service/internal/domain/entity"
)

// AuditLogFilterRequest mirrors the audit log query string; empty values are ignored
type AuditLogFilterRequest struct {
	EntityID string
	Action   string
}

// Response DTOs

type AuditLogResponse struct {
	ID        int64       `json:"id"`
	RequestID string      `json:"request_id,omitempty"`
	Action    string      `json:"action"`
	EntityID  string      `json:"entity_id,omitempty"`
	Metadata  entity.JSON `json:"metadata"`
	CreatedAt time.Time   `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
