package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/itsanla/sita-bi-sub000/internal/models"
	appErrors "github.com/itsanla/sita-bi-sub000/pkg/errors"
)

type conflictStore interface {
	HasRoomOverlap(ctx context.Context, date time.Time, roomID, start, end string) (bool, error)
	ListSeatsExact(ctx context.Context, date time.Time, start, end string) ([]models.PanelSeat, error)
}

// ConflictValidator re-checks room and person availability just before
// a commit, catching state that drifted between eligibility computation
// and the write.
type ConflictValidator struct {
	schedules conflictStore
	logger    *zap.Logger
}

// NewConflictValidator constructs the validator.
func NewConflictValidator(schedules conflictStore, logger *zap.Logger) *ConflictValidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictValidator{schedules: schedules, logger: logger}
}

// IsSlotAvailable reports whether no persisted schedule occupies the
// slot's room with a strictly overlapping time range on that date.
func (v *ConflictValidator) IsSlotAvailable(ctx context.Context, slot models.TimeSlot) (bool, error) {
	occupied, err := v.schedules.HasRoomOverlap(ctx, slot.Date, slot.RoomID, slot.StartTime, slot.EndTime)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check slot availability")
	}
	return !occupied, nil
}

// ValidateNoConflict reports whether none of the proposed examiners or
// advisors already sit on a panel sharing the exact (date, start, end)
// tuple.
func (v *ConflictValidator) ValidateNoConflict(ctx context.Context, slot models.TimeSlot, examinerIDs, advisorIDs []string) (bool, error) {
	seats, err := v.schedules.ListSeatsExact(ctx, slot.Date, slot.StartTime, slot.EndTime)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate panel conflicts")
	}
	if len(seats) == 0 {
		return true, nil
	}
	proposed := make(map[string]struct{}, len(examinerIDs)+len(advisorIDs))
	for _, id := range examinerIDs {
		proposed[id] = struct{}{}
	}
	for _, id := range advisorIDs {
		proposed[id] = struct{}{}
	}
	for _, seat := range seats {
		if _, ok := proposed[seat.LecturerID]; ok {
			return false, nil
		}
	}
	return true, nil
}
