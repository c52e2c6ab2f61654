package usecase

import (
	"appointment-scheduling-service/internal/domain/entity"
)

// CheckConflict returns a *ConflictError for the first active appointment in
// existing that shares candidate's doctor and day and overlaps its slot.
// Back-to-back slots and cancelled appointments never conflict.
func CheckConflict(candidate *entity.Appointment, existing []entity.Appointment) error {
	for i := range existing {
		other := &existing[i]
		if other.ID != "" && other.ID == candidate.ID {
			continue
		}
		if !other.IsActive() || !candidate.SharesScheduleWith(other) {
			continue
		}
		if candidate.Overlaps(other) {
			return &ConflictError{
				DoctorName:    candidate.DoctorName,
				Date:          candidate.DateString(),
				ExistingID:    other.ID,
				ExistingStart: other.TimeString(),
				ExistingEnd:   other.EndTimeString(),
			}
		}
	}
	return nil
}
