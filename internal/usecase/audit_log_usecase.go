package usecase

import (
	"context"
	"errors"
	"strings"

	"appointment-scheduling-service/internal/converter"
	"appointment-scheduling-service/internal/delivery/dto"
	"appointment-scheduling-service/internal/domain/entity"
	"appointment-scheduling-service/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrAuditLogNotFound = errors.New("audit log not found")
)

type AuditLogUsecase interface {
	GetAllAuditLogs(ctx context.Context, req *dto.AuditLogFilterRequest) (*dto.AuditLogListResponse, error)
	GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetAllAuditLogs(ctx context.Context, req *dto.AuditLogFilterRequest) (*dto.AuditLogListResponse, error) {
	filter, err := parseAuditLogFilter(req)
	if err != nil {
		return nil, err
	}

	logs, err := u.auditLogRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find all audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find audit log: %+v", err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}

func parseAuditLogFilter(req *dto.AuditLogFilterRequest) (*entity.AuditLogFilter, error) {
	if req == nil {
		return nil, nil
	}
	if req.Action != "" && !isAuditAction(req.Action) {
		return nil, &ValidationError{
			Message: "Invalid action: " + req.Action + ". Must be one of " + strings.Join(entity.AuditActions, ", "),
			Fields:  []string{"action"},
		}
	}
	return &entity.AuditLogFilter{EntityID: req.EntityID, Action: req.Action}, nil
}

func isAuditAction(action string) bool {
	for _, a := range entity.AuditActions {
		if a == action {
			return true
		}
	}
	return false
}
