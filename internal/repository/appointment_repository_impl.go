package repository

import (
	"context"
	"sync"

	"appointment-scheduling-service/internal/domain/entity"
	domainRepo "appointment-scheduling-service/internal/domain/repository"
)

// appointmentRepository keeps appointments in insertion order with an id index.
// records[index[id]] is always the record with that id.
type appointmentRepository struct {
	mu      sync.RWMutex
	records []entity.Appointment
	index   map[string]int
}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{
		index: make(map[string]int),
	}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[appointment.ID]; exists {
		return domainRepo.ErrDuplicateAppointmentID
	}

	r.index[appointment.ID] = len(r.records)
	r.records = append(r.records, *appointment)
	return nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, id string) (*entity.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, nil
	}
	appointment := r.records[i]
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appointments := make([]entity.Appointment, 0, len(r.records))
	for i := range r.records {
		if filter.Matches(&r.records[i]) {
			appointments = append(appointments, r.records[i])
		}
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id string, status entity.AppointmentStatus) (*entity.Appointment, entity.AppointmentStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil, "", nil
	}

	previous := r.records[i].Status
	r.records[i].Status = status
	appointment := r.records[i]
	return &appointment, previous, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil, nil
	}

	removed := r.records[i]
	r.records = append(r.records[:i], r.records[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.records); j++ {
		r.index[r.records[j].ID] = j
	}
	return &removed, nil
}
