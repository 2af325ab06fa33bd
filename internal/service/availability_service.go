package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/itsanla/sita-bi-sub000/internal/models"
	appErrors "github.com/itsanla/sita-bi-sub000/pkg/errors"
)

type panelReader interface {
	ListSeatsByDate(ctx context.Context, date time.Time) ([]models.PanelSeat, error)
	ExaminerLoads(ctx context.Context, periodID string) ([]models.LecturerLoad, error)
}

type lecturerDirectory interface {
	ListIDs(ctx context.Context) ([]string, error)
}

// AvailabilityService computes which lecturers can sit as examiners in
// a given slot. A lecturer is excluded when they advise the candidate,
// hard-overlap an existing panel, sit at or above the examiner quota,
// or (unless allowSoftBusy) fall inside the buffer window of an
// existing panel.
type AvailabilityService struct {
	schedules panelReader
	lecturers lecturerDirectory
	logger    *zap.Logger
}

// NewAvailabilityService constructs the resolver.
func NewAvailabilityService(schedules panelReader, lecturers lecturerDirectory, logger *zap.Logger) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{schedules: schedules, lecturers: lecturers, logger: logger}
}

// EligibleExaminers returns the eligible lecturer ids for the slot,
// sorted by current examiner load ascending so lightly-loaded examiners
// are drawn first.
func (s *AvailabilityService) EligibleExaminers(ctx context.Context, slot models.TimeSlot, excludeIDs []string, cfg ScheduleSettings, periodID string, allowSoftBusy bool) ([]string, error) {
	seats, err := s.schedules.ListSeatsByDate(ctx, slot.Date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load occupied panels")
	}

	slotStart := parseClock(slot.StartTime)
	slotEnd := parseClock(slot.EndTime)
	buffer := cfg.BufferMinutes

	hardBusy := make(map[string]struct{})
	softBusy := make(map[string]struct{})
	for _, seat := range seats {
		existingStart := parseClock(seat.StartTime)
		existingEnd := parseClock(seat.EndTime)

		hard := (slotStart >= existingStart && slotStart < existingEnd) ||
			(slotEnd > existingStart && slotEnd <= existingEnd) ||
			(slotStart <= existingStart && slotEnd >= existingEnd)
		soft := (slotStart >= existingStart-buffer && slotStart < existingEnd+buffer) ||
			(slotEnd > existingStart-buffer && slotEnd <= existingEnd+buffer) ||
			(slotStart <= existingStart && slotEnd >= existingEnd)

		if hard {
			hardBusy[seat.LecturerID] = struct{}{}
		} else if soft {
			softBusy[seat.LecturerID] = struct{}{}
		}
	}

	loads, err := s.schedules.ExaminerLoads(ctx, periodID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load examiner loads")
	}
	loadByID := make(map[string]int, len(loads))
	atQuota := make(map[string]struct{})
	for _, load := range loads {
		loadByID[load.LecturerID] = load.Count
		if load.Count >= cfg.ExaminerQuota {
			atQuota[load.LecturerID] = struct{}{}
		}
	}

	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	all, err := s.lecturers.ListIDs(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lecturers")
	}

	eligible := make([]string, 0, len(all))
	for _, id := range all {
		if _, ok := excluded[id]; ok {
			continue
		}
		if _, ok := hardBusy[id]; ok {
			continue
		}
		if _, ok := atQuota[id]; ok {
			continue
		}
		if _, ok := softBusy[id]; ok && !allowSoftBusy {
			continue
		}
		eligible = append(eligible, id)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return loadByID[eligible[i]] < loadByID[eligible[j]]
	})
	return eligible, nil
}
