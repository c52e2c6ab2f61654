package repository

import (
	"context"
	"sync"

	"appointment-scheduling-service/internal/domain/entity"
	domainRepo "appointment-scheduling-service/internal/domain/repository"
)

type auditLogRepository struct {
	mu     sync.RWMutex
	logs   []entity.AuditLog
	nextID int64
}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{nextID: 1}
}

// Create assigns the next sequential id to log
func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log.ID = r.nextID
	r.nextID++
	r.logs = append(r.logs, *log)
	return nil
}

// FindAll returns matching entries oldest first
func (r *auditLogRepository) FindAll(ctx context.Context, filter *entity.AuditLogFilter) ([]entity.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	logs := make([]entity.AuditLog, 0, len(r.logs))
	for i := range r.logs {
		if filter.Matches(&r.logs[i]) {
			logs = append(logs, r.logs[i])
		}
	}
	return logs, nil
}

func (r *auditLogRepository) FindByID(ctx context.Context, id int64) (*entity.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// ids are sequential and never reused
	i := id - 1
	if i < 0 || i >= int64(len(r.logs)) {
		return nil, nil
	}
	log := r.logs[i]
	return &log, nil
}
