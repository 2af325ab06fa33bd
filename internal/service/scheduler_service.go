package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/itsanla/sita-bi-sub000/internal/dto"
	"github.com/itsanla/sita-bi-sub000/internal/models"
	"github.com/itsanla/sita-bi-sub000/pkg/config"
	appErrors "github.com/itsanla/sita-bi-sub000/pkg/errors"
)

var dayNames = [7]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

type schedulerStudentStore interface {
	CountReady(ctx context.Context) (int, error)
	ListReadyCandidates(ctx context.Context) ([]models.Candidate, error)
	MarkUnplacedFailed(ctx context.Context, periodID, reason string) (int64, error)
}

type defenseCreator interface {
	CreateAwaiting(ctx context.Context, thesisID string) (*models.Defense, error)
}

type lecturerPool interface {
	Count(ctx context.Context) (int, error)
	AdvisorLoads(ctx context.Context, thesisIDs []string) ([]models.AdvisorLoad, error)
}

type assignmentStore interface {
	CreateAssignment(ctx context.Context, cand models.Candidate, slot models.TimeSlot, periodID string, examiners [3]string) (*models.AssignmentRecord, error)
}

type schedulerPeriodStore interface {
	FindActive(ctx context.Context) (*models.Period, error)
	MarkRunCompleted(ctx context.Context, periodID string) error
}

// SchedulerService runs the automatic scheduling pass: settings,
// feasibility diagnostics, then a single-threaded greedy walk over the
// day/slot/candidate space committing one assignment at a time.
type SchedulerService struct {
	settings     *SettingsService
	diagnostics  *Diagnostics
	slots        *SlotGenerator
	availability *AvailabilityService
	validator    *ConflictValidator
	shuffler     *Shuffler
	students     schedulerStudentStore
	defenses     defenseCreator
	lecturers    lecturerPool
	schedules    assignmentStore
	periods      schedulerPeriodStore
	cache        *CacheService
	metrics      *MetricsService
	cfg          config.SchedulerConfig
	logger       *zap.Logger
	now          func() time.Time
}

// SchedulerDeps bundles the orchestrator's collaborators.
type SchedulerDeps struct {
	Settings     *SettingsService
	Diagnostics  *Diagnostics
	Slots        *SlotGenerator
	Availability *AvailabilityService
	Validator    *ConflictValidator
	Shuffler     *Shuffler
	Students     schedulerStudentStore
	Defenses     defenseCreator
	Lecturers    lecturerPool
	Schedules    assignmentStore
	Periods      schedulerPeriodStore
	Cache        *CacheService
	Metrics      *MetricsService
}

// NewSchedulerService constructs the orchestrator.
func NewSchedulerService(deps SchedulerDeps, cfg config.SchedulerConfig, logger *zap.Logger) *SchedulerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = 365
	}
	if cfg.MaxShuffleTries <= 0 {
		cfg.MaxShuffleTries = 10
	}
	return &SchedulerService{
		settings:     deps.Settings,
		diagnostics:  deps.Diagnostics,
		slots:        deps.Slots,
		availability: deps.Availability,
		validator:    deps.Validator,
		shuffler:     deps.Shuffler,
		students:     deps.Students,
		defenses:     deps.Defenses,
		lecturers:    deps.Lecturers,
		schedules:    deps.Schedules,
		periods:      deps.Periods,
		cache:        deps.Cache,
		metrics:      deps.Metrics,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// Generate runs one automatic scheduling pass for the active period and
// returns the formatted result rows. The pass aborts before touching
// the calendar when the diagnostics find the configuration infeasible.
func (s *SchedulerService) Generate(ctx context.Context) (*dto.GenerateResponse, error) {
	started := s.now()

	period, err := s.periods.FindActive(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "no active period")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active period")
	}

	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	maxAdvisees, err := s.settings.MaxActiveAdvisees(ctx)
	if err != nil {
		return nil, err
	}

	studentsReady, err := s.students.CountReady(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count ready students")
	}
	totalLecturers, err := s.lecturers.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count lecturers")
	}

	info, diagErr := s.diagnostics.Run(DiagnosticInput{
		StudentsReady:     studentsReady,
		TotalLecturers:    totalLecturers,
		MaxActiveAdvisees: maxAdvisees,
		Settings:          cfg,
	})
	if diagErr != nil {
		s.metrics.ObserveRun("infeasible", s.now().Sub(started), 0)
		return nil, diagErr
	}

	roomIDs, err := s.settings.ResolveRoomIDs(ctx, cfg.RoomNames)
	if err != nil {
		return nil, err
	}

	candidates, err := s.loadCandidates(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.checkAdvisorLoads(ctx, candidates, maxAdvisees); err != nil {
		s.metrics.ObserveRun("infeasible", s.now().Sub(started), 0)
		return nil, err
	}

	rows, unplaced, err := s.placeAll(ctx, candidates, cfg, roomIDs, period.ID)
	if err != nil {
		s.metrics.ObserveRun("error", s.now().Sub(started), len(rows))
		return nil, err
	}
	if len(unplaced) > 0 {
		s.metrics.ObserveRun("exhausted", s.now().Sub(started), len(rows))
		first := unplaced[0]
		return nil, appErrors.ErrHorizonExhausted.WithDetail(
			"Add rooms or widen the operating hours.",
			map[string]any{
				"student":      first.StudentName,
				"nim":          first.NIM,
				"total_failed": len(unplaced),
				"horizon_days": s.cfg.HorizonDays,
			})
	}

	if _, err := s.students.MarkUnplacedFailed(ctx, period.ID, "not placed in this scheduling run"); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to finalize unplaced students")
	}
	if err := s.periods.MarkRunCompleted(ctx, period.ID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record completed run")
	}
	s.cache.Invalidate(ctx, boardCachePattern)
	s.metrics.ObserveRun("completed", s.now().Sub(started), len(rows))
	s.logger.Info("scheduling run completed",
		zap.String("period_id", period.ID),
		zap.Int("placed", len(rows)),
		zap.Duration("took", s.now().Sub(started)))

	return &dto.GenerateResponse{Rows: rows, Info: *info}, nil
}

// loadCandidates lists the ready students and creates an active
// awaiting-schedule defense for any candidate missing one.
func (s *SchedulerService) loadCandidates(ctx context.Context) ([]models.Candidate, error) {
	candidates, err := s.students.ListReadyCandidates(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load candidates")
	}
	if len(candidates) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoReadyStudents, "")
	}
	for i := range candidates {
		if candidates[i].DefenseID != "" {
			continue
		}
		defense, err := s.defenses.CreateAwaiting(ctx, candidates[i].ThesisID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open defense record")
		}
		candidates[i].DefenseID = defense.ID
	}
	return candidates, nil
}

// checkAdvisorLoads aborts the run when any primary advisor supervises
// more ready students than the configured ceiling.
func (s *SchedulerService) checkAdvisorLoads(ctx context.Context, candidates []models.Candidate, maxAdvisees int) error {
	thesisIDs := make([]string, len(candidates))
	for i, cand := range candidates {
		thesisIDs[i] = cand.ThesisID
	}
	loads, err := s.lecturers.AdvisorLoads(ctx, thesisIDs)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load advisor loads")
	}
	var overloaded []string
	for _, load := range loads {
		if load.Count > maxAdvisees {
			overloaded = append(overloaded, fmt.Sprintf("%s (%d students, max: %d)", load.Name, load.Count, maxAdvisees))
		}
	}
	if len(overloaded) > 0 {
		return appErrors.ErrAdvisorOverload.WithDetail(
			"Reassign some advisees or raise the advisor ceiling.",
			map[string]any{"advisors": overloaded, "max_active_advisees": maxAdvisees})
	}
	return nil
}

// placeAll walks the horizon day by day, filling available slots with
// candidates until everyone is placed or the horizon runs out.
func (s *SchedulerService) placeAll(ctx context.Context, candidates []models.Candidate, cfg ScheduleSettings, roomIDs []string, periodID string) ([]dto.ScheduleResultRow, []models.Candidate, error) {
	var rows []dto.ScheduleResultRow
	remaining := make([]models.Candidate, len(candidates))
	copy(remaining, candidates)

	startDate := s.now().AddDate(0, 0, 1)
	startDate = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)

	for dayOffset := 0; len(remaining) > 0 && dayOffset < s.cfg.HorizonDays; dayOffset++ {
		date := startDate.AddDate(0, 0, dayOffset)
		slots := s.slots.Generate(date, cfg, roomIDs)
		if len(slots) == 0 {
			continue
		}

		for _, slot := range slots {
			if len(remaining) == 0 {
				break
			}
			available, err := s.validator.IsSlotAvailable(ctx, slot)
			if err != nil {
				return rows, remaining, err
			}
			if !available {
				continue
			}
			for i := range remaining {
				row, placed, err := s.tryPlace(ctx, remaining[i], slot, cfg, periodID)
				if err != nil {
					return rows, remaining, err
				}
				if placed {
					rows = append(rows, row)
					remaining = append(remaining[:i], remaining[i+1:]...)
					break
				}
			}
		}
	}
	return rows, remaining, nil
}

// tryPlace attempts to book one candidate into one slot: compute the
// eligible examiner pool (soft-busy examiners admitted only when the
// strict pass comes up short), draw random panels until one validates,
// then commit. A conflicting concurrent write surfaces as a plain
// non-placement, not an error.
func (s *SchedulerService) tryPlace(ctx context.Context, cand models.Candidate, slot models.TimeSlot, cfg ScheduleSettings, periodID string) (dto.ScheduleResultRow, bool, error) {
	exclude := cand.AdvisorIDs()

	eligible, err := s.availability.EligibleExaminers(ctx, slot, exclude, cfg, periodID, false)
	if err != nil {
		return dto.ScheduleResultRow{}, false, err
	}
	if len(eligible) < 3 {
		eligible, err = s.availability.EligibleExaminers(ctx, slot, exclude, cfg, periodID, true)
		if err != nil {
			return dto.ScheduleResultRow{}, false, err
		}
	}
	if len(eligible) < 3 {
		return dto.ScheduleResultRow{}, false, nil
	}

	maxTries := s.cfg.MaxShuffleTries
	if len(eligible) < maxTries {
		maxTries = len(eligible)
	}

	var picks []string
	valid := false
	for try := 0; try < maxTries && !valid; try++ {
		shuffled := s.shuffler.Shuffle(eligible)
		picks = shuffled[:3]
		valid, err = s.validator.ValidateNoConflict(ctx, slot, picks, exclude)
		if err != nil {
			return dto.ScheduleResultRow{}, false, err
		}
	}
	if !valid {
		return dto.ScheduleResultRow{}, false, nil
	}

	record, err := s.schedules.CreateAssignment(ctx, cand, slot, periodID, [3]string{picks[0], picks[1], picks[2]})
	if err != nil {
		var conflict *models.BookingConflictError
		if errors.As(err, &conflict) {
			s.logger.Debug("assignment lost a race, retrying elsewhere",
				zap.String("student", cand.StudentName), zap.String("dimension", conflict.Dimension))
			return dto.ScheduleResultRow{}, false, nil
		}
		return dto.ScheduleResultRow{}, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit assignment")
	}

	return formatResultRow(cand, record), true, nil
}

func formatResultRow(cand models.Candidate, record *models.AssignmentRecord) dto.ScheduleResultRow {
	return dto.ScheduleResultRow{
		Student:   cand.StudentName,
		NIM:       cand.NIM,
		Secretary: cand.Advisor1Name,
		Member1:   record.ExaminerNames[0],
		Member2:   record.ExaminerNames[1],
		Member3:   record.ExaminerNames[2],
		DayDate:   formatDayDate(record.Schedule.Date),
		Time:      fmt.Sprintf("%s - %s", record.Schedule.StartTime, record.Schedule.EndTime),
		Room:      record.RoomName,
	}
}

// formatDayDate renders a date the way the board displays it, e.g.
// "Senin, 02 Februari 2026".
func formatDayDate(date time.Time) string {
	return fmt.Sprintf("%s, %02d %s %d",
		dayNames[int(date.Weekday())], date.Day(), monthNames[int(date.Month())-1], date.Year())
}
