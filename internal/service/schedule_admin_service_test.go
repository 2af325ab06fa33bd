package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsanla/sita-bi-sub000/internal/dto"
	"github.com/itsanla/sita-bi-sub000/internal/models"
	appErrors "github.com/itsanla/sita-bi-sub000/pkg/errors"
)

type cacheRepoStub struct {
	entries map[string][]byte
}

func newCacheRepoStub() *cacheRepoStub {
	return &cacheRepoStub{entries: map[string][]byte{}}
}

func (s *cacheRepoStub) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := s.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *cacheRepoStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.entries[key] = raw
	return nil
}

func (s *cacheRepoStub) DeleteByPattern(ctx context.Context, pattern string) error {
	s.entries = map[string][]byte{}
	return nil
}

type updateArgs struct {
	id        string
	date      time.Time
	start     string
	end       string
	roomID    string
	examiners *[3]string
}

type adminScheduleStoreStub struct {
	board          []models.BoardRow
	boardCalls     int
	detail         *models.ScheduleDetail
	detailErr      error
	updateErr      error
	lastUpdate     *updateArgs
	deletedID      string
	deletedReason  string
	deleteAllCount int64
	movedFrom      time.Time
	movedDiff      int
	swapped        [2]string
}

func (s *adminScheduleStoreStub) ListBoard(ctx context.Context, periodID string) ([]models.BoardRow, error) {
	s.boardCalls++
	return s.board, nil
}

func (s *adminScheduleStoreStub) FindDetail(ctx context.Context, id string) (*models.ScheduleDetail, error) {
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	return s.detail, nil
}

func (s *adminScheduleStoreStub) UpdateSchedule(ctx context.Context, id string, date time.Time, start, end, roomID string, examiners *[3]string, advisorIDs []string) error {
	s.lastUpdate = &updateArgs{id: id, date: date, start: start, end: end, roomID: roomID, examiners: examiners}
	return s.updateErr
}

func (s *adminScheduleStoreStub) DeleteOne(ctx context.Context, id, reason string) error {
	s.deletedID, s.deletedReason = id, reason
	return nil
}

func (s *adminScheduleStoreStub) DeleteAll(ctx context.Context, periodID string) (int64, error) {
	return s.deleteAllCount, nil
}

func (s *adminScheduleStoreStub) MoveFromDate(ctx context.Context, fromDate time.Time, diffDays int) (int64, error) {
	s.movedFrom, s.movedDiff = fromDate, diffDays
	return 2, nil
}

func (s *adminScheduleStoreStub) Swap(ctx context.Context, id1, id2 string) error {
	s.swapped = [2]string{id1, id2}
	return nil
}

type adminStudentStoreStub struct {
	failed []models.FailedStudent
	ready  []models.Student
}

func (s *adminStudentStoreStub) ListFailed(ctx context.Context, periodID string) ([]models.FailedStudent, error) {
	return s.failed, nil
}

func (s *adminStudentStoreStub) ListReadyOptions(ctx context.Context) ([]models.Student, error) {
	return s.ready, nil
}

type lecturerListerStub struct{ items []models.Lecturer }

func (s *lecturerListerStub) List(ctx context.Context) ([]models.Lecturer, error) {
	return s.items, nil
}

type roomListerStub struct{ items []models.Room }

func (s *roomListerStub) List(ctx context.Context) ([]models.Room, error) {
	return s.items, nil
}

type adminPeriodStoreStub struct {
	err        error
	resetCalls int
}

func (s *adminPeriodStoreStub) FindActive(ctx context.Context) (*models.Period, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Period{ID: "p1", Status: models.PeriodStatusActive}, nil
}

func (s *adminPeriodStoreStub) ResetRun(ctx context.Context, periodID string) error {
	s.resetCalls++
	return nil
}

type adminFixture struct {
	schedules *adminScheduleStoreStub
	students  *adminStudentStoreStub
	periods   *adminPeriodStoreStub
	svc       *ScheduleAdminService
}

func strPtr(s string) *string { return &s }

func boardRow() models.BoardRow {
	return models.BoardRow{
		ScheduleID: "sch-1", DefenseID: "def-1", StudentName: "Alice", NIM: "101",
		Date: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), StartTime: "08:00", EndTime: "09:30",
		RoomName: "Lab 1", Secretary: "Dr. Dina",
		Member1: "Dr. Satu", Member2: "Dr. Dua", Member3: "Dr. Tiga",
	}
}

func scheduleDetail() *models.ScheduleDetail {
	return &models.ScheduleDetail{
		Schedule: models.DefenseSchedule{
			ID: "sch-1", DefenseID: "def-1", PeriodID: "p1",
			Date:      time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			StartTime: "08:00", EndTime: "09:30", RoomID: "room-1",
		},
		StudentName: "Alice", NIM: "101", AdvisorIDs: []string{"L4"},
	}
}

func newAdminFixture(cached bool) *adminFixture {
	f := &adminFixture{
		schedules: &adminScheduleStoreStub{board: []models.BoardRow{boardRow()}, detail: scheduleDetail()},
		students:  &adminStudentStoreStub{},
		periods:   &adminPeriodStoreStub{},
	}
	var cache *CacheService
	if cached {
		cache = NewCacheService(newCacheRepoStub(), nil, time.Minute, nil, true)
	} else {
		cache = NewCacheService(nil, nil, 0, nil, false)
	}
	f.svc = NewScheduleAdminService(f.schedules, f.students, &lecturerListerStub{}, &roomListerStub{}, f.periods, cache, nil, nil)
	return f
}

func TestAdminListServesBoardFromCache(t *testing.T) {
	f := newAdminFixture(true)

	first, err := f.svc.List(context.Background())
	require.NoError(t, err)
	second, err := f.svc.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.schedules.boardCalls)
}

func TestAdminUpdateMergesPatch(t *testing.T) {
	f := newAdminFixture(false)

	err := f.svc.Update(context.Background(), "sch-1", dto.UpdateScheduleRequest{
		StartTime: strPtr("10:00"),
		EndTime:   strPtr("11:30"),
	})
	require.NoError(t, err)

	update := f.schedules.lastUpdate
	require.NotNil(t, update)
	assert.Equal(t, "sch-1", update.id)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), update.date)
	assert.Equal(t, "10:00", update.start)
	assert.Equal(t, "11:30", update.end)
	assert.Equal(t, "room-1", update.roomID)
	assert.Nil(t, update.examiners)
}

func TestAdminUpdateRejectsInvertedTimes(t *testing.T) {
	f := newAdminFixture(false)

	err := f.svc.Update(context.Background(), "sch-1", dto.UpdateScheduleRequest{
		StartTime: strPtr("12:00"),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Nil(t, f.schedules.lastUpdate)
}

func TestAdminUpdateExaminerRules(t *testing.T) {
	cases := []struct {
		name string
		req  dto.UpdateScheduleRequest
		code string
	}{
		{
			name: "partial panel",
			req:  dto.UpdateScheduleRequest{Examiner1: strPtr("L1")},
			code: appErrors.ErrValidation.Code,
		},
		{
			name: "duplicate seat",
			req:  dto.UpdateScheduleRequest{Examiner1: strPtr("L1"), Examiner2: strPtr("L1"), Examiner3: strPtr("L2")},
			code: appErrors.ErrExaminersNotDistinct.Code,
		},
		{
			name: "advisor on panel",
			req:  dto.UpdateScheduleRequest{Examiner1: strPtr("L1"), Examiner2: strPtr("L2"), Examiner3: strPtr("L4")},
			code: appErrors.ErrExaminerIsAdvisor.Code,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAdminFixture(false)
			err := f.svc.Update(context.Background(), "sch-1", tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.code, appErrors.FromError(err).Code)
			assert.Nil(t, f.schedules.lastUpdate)
		})
	}
}

func TestAdminUpdateFullExaminerPatch(t *testing.T) {
	f := newAdminFixture(false)

	err := f.svc.Update(context.Background(), "sch-1", dto.UpdateScheduleRequest{
		Examiner1: strPtr("L1"), Examiner2: strPtr("L2"), Examiner3: strPtr("L3"),
	})
	require.NoError(t, err)
	require.NotNil(t, f.schedules.lastUpdate.examiners)
	assert.Equal(t, [3]string{"L1", "L2", "L3"}, *f.schedules.lastUpdate.examiners)
}

func TestAdminUpdateMapsBookingConflict(t *testing.T) {
	f := newAdminFixture(false)
	f.schedules.updateErr = &models.BookingConflictError{
		Dimension: "LECTURER", StudentName: "Bob", LecturerName: "Dr. Dua",
	}

	err := f.svc.Update(context.Background(), "sch-1", dto.UpdateScheduleRequest{RoomID: strPtr("room-2")})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrScheduleConflict.Code, appErr.Code)
	assert.Equal(t, "LECTURER", appErr.Detail["dimension"])
	assert.Equal(t, "Bob", appErr.Detail["student"])
}

func TestAdminUpdateNotFound(t *testing.T) {
	f := newAdminFixture(false)
	f.schedules.detailErr = sql.ErrNoRows

	err := f.svc.Update(context.Background(), "missing", dto.UpdateScheduleRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAdminDeletePassesReason(t *testing.T) {
	f := newAdminFixture(false)

	require.NoError(t, f.svc.Delete(context.Background(), "sch-1", "room flooded"))
	assert.Equal(t, "sch-1", f.schedules.deletedID)
	assert.Equal(t, "room flooded", f.schedules.deletedReason)
}

func TestAdminDeleteAllResetsRun(t *testing.T) {
	f := newAdminFixture(false)
	f.schedules.deleteAllCount = 3

	count, err := f.svc.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, 1, f.periods.resetCalls)
}

func TestAdminMoveComputesDayOffset(t *testing.T) {
	f := newAdminFixture(false)

	count, err := f.svc.Move(context.Background(), dto.MoveScheduleRequest{
		FromDate: "2026-09-07", ToDate: "2026-09-14",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 7, f.schedules.movedDiff)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), f.schedules.movedFrom)
}

func TestAdminMoveRejectsBackwardMove(t *testing.T) {
	f := newAdminFixture(false)

	_, err := f.svc.Move(context.Background(), dto.MoveScheduleRequest{
		FromDate: "2026-09-14", ToDate: "2026-09-07",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, f.schedules.movedDiff)
}

func TestAdminSwapRejectsSameSchedule(t *testing.T) {
	f := newAdminFixture(false)

	err := f.svc.Swap(context.Background(), dto.SwapScheduleRequest{ScheduleID1: "sch-1", ScheduleID2: "sch-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	require.NoError(t, f.svc.Swap(context.Background(), dto.SwapScheduleRequest{ScheduleID1: "sch-1", ScheduleID2: "sch-2"}))
	assert.Equal(t, [2]string{"sch-1", "sch-2"}, f.schedules.swapped)
}

func TestAdminExportBoardCSV(t *testing.T) {
	f := newAdminFixture(false)

	result, err := f.svc.ExportBoard(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "defense-schedule.csv", result.Filename)

	body := string(result.Data)
	assert.Contains(t, body, "Student,NIM,Date,Time,Room,Secretary")
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "Senin, 07 September 2026")
	assert.Contains(t, body, "08:00 - 09:30")
}

func TestAdminExportBoardUnsupportedFormat(t *testing.T) {
	f := newAdminFixture(false)

	_, err := f.svc.ExportBoard(context.Background(), "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
