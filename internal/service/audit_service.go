package service

import (
	"context"
	"time"

	"appointment-scheduling-service/internal/domain/entity"
	"appointment-scheduling-service/internal/domain/repository"
	"appointment-scheduling-service/pkg/requestid"

	"github.com/sirupsen/logrus"
)

type AuditService interface {
	LogCreate(ctx context.Context, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, action string, entityName string, entityID string, oldValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
	now       func() time.Time
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
		now:       time.Now,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, action string, entityName string, entityID string, newValue interface{}) error {
	return s.record(ctx, action, entityName, entityID, nil, newValue)
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.record(ctx, action, entityName, entityID, oldValue, newValue)
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.record(ctx, action, entityName, entityID, oldValue, nil)
}

func (s *auditService) record(ctx context.Context, action, entityName, entityID string, oldValue, newValue interface{}) error {
	auditLog := &entity.AuditLog{
		RequestID: requestid.FromContext(ctx),
		Action:    action,
		EntityID:  entityID,
		Metadata: entity.JSON{
			"entity":    entityName,
			"entity_id": entityID,
			"old_value": oldValue,
			"new_value": newValue,
		},
		CreatedAt: s.now().UTC(),
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
