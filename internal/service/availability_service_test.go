package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsanla/sita-bi-sub000/internal/models"
)

type panelReaderStub struct {
	seats []models.PanelSeat
	loads []models.LecturerLoad
}

func (s *panelReaderStub) ListSeatsByDate(ctx context.Context, date time.Time) ([]models.PanelSeat, error) {
	return s.seats, nil
}

func (s *panelReaderStub) ExaminerLoads(ctx context.Context, periodID string) ([]models.LecturerLoad, error) {
	return s.loads, nil
}

type lecturerDirectoryStub struct {
	ids []string
}

func (s *lecturerDirectoryStub) ListIDs(ctx context.Context) ([]string, error) {
	return s.ids, nil
}

func seat(lecturerID, start, end string) models.PanelSeat {
	return models.PanelSeat{
		ScheduleID: "sch-" + lecturerID,
		StartTime:  start,
		EndTime:    end,
		LecturerID: lecturerID,
		Role:       models.RoleExaminer1,
	}
}

func TestAvailabilityHardAndSoftBusy(t *testing.T) {
	schedules := &panelReaderStub{
		seats: []models.PanelSeat{
			// A strictly overlaps the 10:00-11:30 slot.
			seat("A", "09:00", "10:30"),
			// B ends exactly at 10:00: outside the slot but inside
			// the 15 minute buffer window.
			seat("B", "08:30", "10:00"),
		},
		loads: []models.LecturerLoad{
			{LecturerID: "B", Count: 1},
			{LecturerID: "C", Count: 4},
			{LecturerID: "E", Count: 2},
		},
	}
	directory := &lecturerDirectoryStub{ids: []string{"A", "B", "C", "D", "E", "F"}}
	svc := NewAvailabilityService(schedules, directory, nil)

	cfg := defaultScheduleSettings()
	slot := models.TimeSlot{Date: monday, StartTime: "10:00", EndTime: "11:30", RoomID: "r1"}

	strict, err := svc.EligibleExaminers(context.Background(), slot, []string{"D"}, cfg, "p1", false)
	require.NoError(t, err)
	// A is hard-busy, B soft-busy, C at quota, D advises the candidate.
	// The survivors come back load-ascending.
	assert.Equal(t, []string{"F", "E"}, strict)

	relaxed, err := svc.EligibleExaminers(context.Background(), slot, []string{"D"}, cfg, "p1", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"F", "B", "E"}, relaxed)
}

func TestAvailabilityQuotaBoundary(t *testing.T) {
	schedules := &panelReaderStub{
		loads: []models.LecturerLoad{
			{LecturerID: "A", Count: 3},
			{LecturerID: "B", Count: 4},
		},
	}
	directory := &lecturerDirectoryStub{ids: []string{"A", "B"}}
	svc := NewAvailabilityService(schedules, directory, nil)

	cfg := defaultScheduleSettings()
	slot := models.TimeSlot{Date: monday, StartTime: "08:00", EndTime: "09:30", RoomID: "r1"}

	eligible, err := svc.EligibleExaminers(context.Background(), slot, nil, cfg, "p1", false)
	require.NoError(t, err)
	// A sits below the quota of 4, B exactly at it.
	assert.Equal(t, []string{"A"}, eligible)
}

func TestAvailabilityEmptyCalendar(t *testing.T) {
	svc := NewAvailabilityService(&panelReaderStub{}, &lecturerDirectoryStub{ids: []string{"A", "B", "C"}}, nil)
	cfg := defaultScheduleSettings()
	slot := models.TimeSlot{Date: monday, StartTime: "08:00", EndTime: "09:30", RoomID: "r1"}

	eligible, err := svc.EligibleExaminers(context.Background(), slot, nil, cfg, "p1", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, eligible)
}
