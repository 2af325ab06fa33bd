package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/itsanla/sita-bi-sub000/internal/dto"
	"github.com/itsanla/sita-bi-sub000/internal/models"
	appErrors "github.com/itsanla/sita-bi-sub000/pkg/errors"
	"github.com/itsanla/sita-bi-sub000/pkg/export"
)

const (
	boardCacheKeyPrefix = "schedules:board:"
	boardCachePattern   = "schedules:board:*"
)

var boardHeaders = []string{"Student", "NIM", "Date", "Time", "Room", "Secretary", "Member 1", "Member 2", "Member 3"}

type adminScheduleStore interface {
	ListBoard(ctx context.Context, periodID string) ([]models.BoardRow, error)
	FindDetail(ctx context.Context, id string) (*models.ScheduleDetail, error)
	UpdateSchedule(ctx context.Context, id string, date time.Time, start, end, roomID string, examiners *[3]string, advisorIDs []string) error
	DeleteOne(ctx context.Context, id, reason string) error
	DeleteAll(ctx context.Context, periodID string) (int64, error)
	MoveFromDate(ctx context.Context, fromDate time.Time, diffDays int) (int64, error)
	Swap(ctx context.Context, id1, id2 string) error
}

type adminStudentStore interface {
	ListFailed(ctx context.Context, periodID string) ([]models.FailedStudent, error)
	ListReadyOptions(ctx context.Context) ([]models.Student, error)
}

type lecturerLister interface {
	List(ctx context.Context) ([]models.Lecturer, error)
}

type roomLister interface {
	List(ctx context.Context) ([]models.Room, error)
}

type adminPeriodStore interface {
	FindActive(ctx context.Context) (*models.Period, error)
	ResetRun(ctx context.Context, periodID string) error
}

// ScheduleAdminService covers the operator-driven schedule operations:
// the board read, single edits, teardown, bulk moves and exports. Every
// mutation re-runs the overlap checks the automatic run uses, scoped to
// the touched schedules.
type ScheduleAdminService struct {
	schedules adminScheduleStore
	students  adminStudentStore
	lecturers lecturerLister
	rooms     roomLister
	periods   adminPeriodStore
	cache     *CacheService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleAdminService constructs the admin service.
func NewScheduleAdminService(schedules adminScheduleStore, students adminStudentStore, lecturers lecturerLister, rooms roomLister, periods adminPeriodStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ScheduleAdminService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleAdminService{
		schedules: schedules,
		students:  students,
		lecturers: lecturers,
		rooms:     rooms,
		periods:   periods,
		cache:     cache,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
	}
}

func (s *ScheduleAdminService) activePeriod(ctx context.Context) (*models.Period, error) {
	period, err := s.periods.FindActive(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "no active period")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active period")
	}
	return period, nil
}

// List returns the schedule board for the active period, served from
// cache when possible.
func (s *ScheduleAdminService) List(ctx context.Context) ([]models.BoardRow, error) {
	period, err := s.activePeriod(ctx)
	if err != nil {
		return nil, err
	}
	key := boardCacheKeyPrefix + period.ID
	var cached []models.BoardRow
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	rows, err := s.schedules.ListBoard(ctx, period.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule board")
	}
	s.cache.Set(ctx, key, rows)
	return rows, nil
}

// Update patches one schedule. Omitted fields keep their current value;
// the three examiner seats change together or not at all.
func (s *ScheduleAdminService) Update(ctx context.Context, id string, req dto.UpdateScheduleRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule patch")
	}

	detail, err := s.schedules.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}

	date := detail.Schedule.Date
	if req.Date != nil {
		parsed, perr := time.Parse("2006-01-02", *req.Date)
		if perr != nil {
			return appErrors.Clone(appErrors.ErrValidation, "invalid date")
		}
		date = parsed
	}
	start := detail.Schedule.StartTime
	if req.StartTime != nil {
		start = *req.StartTime
	}
	end := detail.Schedule.EndTime
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if start >= end {
		return appErrors.Clone(appErrors.ErrValidation, "start time must precede end time")
	}
	roomID := detail.Schedule.RoomID
	if req.RoomID != nil {
		roomID = *req.RoomID
	}

	examiners, err := resolveExaminerPatch(req, detail.AdvisorIDs)
	if err != nil {
		return err
	}

	if err := s.schedules.UpdateSchedule(ctx, id, date, start, end, roomID, examiners, detail.AdvisorIDs); err != nil {
		var conflict *models.BookingConflictError
		if errors.As(err, &conflict) {
			return appErrors.ErrScheduleConflict.WithDetail(conflict.Error(), map[string]any{
				"dimension": conflict.Dimension,
				"student":   conflict.StudentName,
				"room":      conflict.RoomName,
				"lecturer":  conflict.LecturerName,
			})
		}
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update schedule")
	}
	s.cache.Invalidate(ctx, boardCachePattern)
	return nil
}

// resolveExaminerPatch enforces the all-or-none examiner rule plus the
// distinctness and advisor-exclusion guards.
func resolveExaminerPatch(req dto.UpdateScheduleRequest, advisorIDs []string) (*[3]string, error) {
	supplied := 0
	for _, e := range []*string{req.Examiner1, req.Examiner2, req.Examiner3} {
		if e != nil {
			supplied++
		}
	}
	if supplied == 0 {
		return nil, nil
	}
	if supplied != 3 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "supply all three examiners or none")
	}
	examiners := [3]string{*req.Examiner1, *req.Examiner2, *req.Examiner3}
	if examiners[0] == examiners[1] || examiners[0] == examiners[2] || examiners[1] == examiners[2] {
		return nil, appErrors.Clone(appErrors.ErrExaminersNotDistinct, "")
	}
	for _, examiner := range examiners {
		for _, advisor := range advisorIDs {
			if examiner == advisor {
				return nil, appErrors.Clone(appErrors.ErrExaminerIsAdvisor, "")
			}
		}
	}
	return &examiners, nil
}

// Delete removes one schedule, reverting the student to the
// unscheduled state with the operator's reason.
func (s *ScheduleAdminService) Delete(ctx context.Context, id, reason string) error {
	if err := s.schedules.DeleteOne(ctx, id, reason); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule")
	}
	s.cache.Invalidate(ctx, boardCachePattern)
	return nil
}

// DeleteAll tears down the active period's schedule board and resets
// the run status so a fresh generate can start over.
func (s *ScheduleAdminService) DeleteAll(ctx context.Context) (int64, error) {
	period, err := s.activePeriod(ctx)
	if err != nil {
		return 0, err
	}
	count, err := s.schedules.DeleteAll(ctx, period.ID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedules")
	}
	if err := s.periods.ResetRun(ctx, period.ID); err != nil {
		return count, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset run status")
	}
	s.cache.Invalidate(ctx, boardCachePattern)
	s.logger.Info("schedule board cleared", zap.String("period_id", period.ID), zap.Int64("removed", count))
	return count, nil
}

// Move shifts every schedule dated on or after FromDate so the first
// moved day lands on ToDate, preserving relative spacing.
func (s *ScheduleAdminService) Move(ctx context.Context, req dto.MoveScheduleRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid move payload")
	}
	from, err := time.Parse("2006-01-02", req.FromDate)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid from_date")
	}
	to, err := time.Parse("2006-01-02", req.ToDate)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid to_date")
	}
	diffDays := int(to.Sub(from).Hours() / 24)
	if diffDays <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "to_date must be after from_date")
	}
	count, err := s.schedules.MoveFromDate(ctx, from, diffDays)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to move schedules")
	}
	s.cache.Invalidate(ctx, boardCachePattern)
	return count, nil
}

// Swap exchanges the slots of two schedules.
func (s *ScheduleAdminService) Swap(ctx context.Context, req dto.SwapScheduleRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid swap payload")
	}
	if req.ScheduleID1 == req.ScheduleID2 {
		return appErrors.Clone(appErrors.ErrValidation, "cannot swap a schedule with itself")
	}
	if err := s.schedules.Swap(ctx, req.ScheduleID1, req.ScheduleID2); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to swap schedules")
	}
	s.cache.Invalidate(ctx, boardCachePattern)
	return nil
}

// EditOptions lists the pickers an operator needs to edit a schedule.
func (s *ScheduleAdminService) EditOptions(ctx context.Context) (*dto.EditOptions, error) {
	students, err := s.students.ListReadyOptions(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	lecturers, err := s.lecturers.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lecturers")
	}
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}

	options := &dto.EditOptions{
		Students:  make([]dto.OptionItem, 0, len(students)),
		Lecturers: make([]dto.OptionItem, 0, len(lecturers)),
		Rooms:     make([]dto.OptionItem, 0, len(rooms)),
	}
	for _, student := range students {
		options.Students = append(options.Students, dto.OptionItem{ID: student.ID, Name: student.Name, NIM: student.NIM})
	}
	for _, lecturer := range lecturers {
		options.Lecturers = append(options.Lecturers, dto.OptionItem{ID: lecturer.ID, Name: lecturer.Name})
	}
	for _, room := range rooms {
		options.Rooms = append(options.Rooms, dto.OptionItem{ID: room.ID, Name: room.Name})
	}
	return options, nil
}

// FailedStudents lists the students the active period could not place.
func (s *ScheduleAdminService) FailedStudents(ctx context.Context) ([]models.FailedStudent, error) {
	period, err := s.activePeriod(ctx)
	if err != nil {
		return nil, err
	}
	students, err := s.students.ListFailed(ctx, period.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load failed students")
	}
	return students, nil
}

// ReadyStudents lists every student currently eligible for defense.
func (s *ScheduleAdminService) ReadyStudents(ctx context.Context) ([]models.Student, error) {
	students, err := s.students.ListReadyOptions(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load ready students")
	}
	return students, nil
}

// ExportResult is a rendered board export.
type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ExportBoard renders the schedule board as CSV or PDF.
func (s *ScheduleAdminService) ExportBoard(ctx context.Context, format string) (*ExportResult, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: boardHeaders, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student":   row.StudentName,
			"NIM":       row.NIM,
			"Date":      formatDayDate(row.Date),
			"Time":      fmt.Sprintf("%s - %s", row.StartTime, row.EndTime),
			"Room":      row.RoomName,
			"Secretary": row.Secretary,
			"Member 1":  row.Member1,
			"Member 2":  row.Member2,
			"Member 3":  row.Member3,
		})
	}

	switch format {
	case "", "csv":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{Data: data, ContentType: "text/csv", Filename: "defense-schedule.csv"}, nil
	case "pdf":
		data, err := s.pdf.Render(dataset, "Defense Schedule")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{Data: data, ContentType: "application/pdf", Filename: "defense-schedule.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}
