package service

import (
	"fmt"
	"math"

	"github.com/itsanla/sita-bi-sub000/internal/dto"
	appErrors "github.com/itsanla/sita-bi-sub000/pkg/errors"
)

// DiagnosticInput carries the current counts the feasibility analysis
// needs alongside the configuration.
type DiagnosticInput struct {
	StudentsReady     int
	TotalLecturers    int
	MaxActiveAdvisees int
	Settings          ScheduleSettings
}

// Diagnostics runs the feasibility pre-analysis that short-circuits the
// orchestrator when scheduling is provably impossible. It is a pure
// computation; every check is terminal except the long-horizon
// advisory.
type Diagnostics struct{}

// NewDiagnostics constructs the analyzer.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// Run walks the ordered checks and returns either the run info (with
// optional advisory warnings) or the first infeasibility found.
func (d *Diagnostics) Run(in DiagnosticInput) (*dto.DiagnosticInfo, *appErrors.Error) {
	cfg := in.Settings
	roomCount := len(cfg.RoomNames)
	workingDays := 7 - len(cfg.FixedHolidays)
	windowMinutes := parseClock(cfg.DayEnd) - parseClock(cfg.DayStart)
	slotsPerDay := 0
	if step := cfg.DurationMinutes + cfg.BufferMinutes; step > 0 {
		slotsPerDay = (windowMinutes / step) * roomCount
	}

	if in.StudentsReady == 0 {
		return nil, appErrors.ErrNoReadyStudents.WithDetail(
			"Verify students have completed defense eligibility first.",
			map[string]any{"students_ready": 0})
	}
	if roomCount == 0 {
		return nil, appErrors.ErrNoRooms.WithDetail(
			"Configure at least one defense room.",
			map[string]any{"room_count": 0})
	}
	if in.TotalLecturers == 0 {
		return nil, appErrors.ErrNoLecturers.WithDetail(
			"Add lecturers before generating a schedule.",
			map[string]any{"total_lecturers": 0})
	}
	if workingDays <= 0 {
		return nil, appErrors.ErrAllDaysHoliday.WithDetail(
			"Unmark some weekdays as fixed holidays so defenses have working days.",
			map[string]any{"fixed_holidays": len(cfg.FixedHolidays), "working_days": 0})
	}
	if windowMinutes < cfg.DurationMinutes {
		return nil, appErrors.ErrWindowTooShort.WithDetail(
			"Widen the operating hours or shorten the defense duration.",
			map[string]any{"window_minutes": windowMinutes, "duration_minutes": cfg.DurationMinutes})
	}

	marginRatio := 0.2
	if in.TotalLecturers > 0 {
		marginRatio = float64(in.MaxActiveAdvisees) / float64(in.TotalLecturers)
	}
	examinerCapacity := in.TotalLecturers * cfg.ExaminerQuota
	slotsNeeded := in.StudentsReady * 3
	slotsNeededWithMargin := int(math.Ceil(float64(slotsNeeded) * (1 + marginRatio)))

	if examinerCapacity < slotsNeededWithMargin {
		minimumQuota := int(math.Ceil(float64(slotsNeededWithMargin) / float64(in.TotalLecturers)))
		return nil, appErrors.ErrExaminerCapacity.WithDetail(
			fmt.Sprintf("Raise the per-examiner quota from %d to at least %d.", cfg.ExaminerQuota, minimumQuota),
			map[string]any{
				"students_ready":           in.StudentsReady,
				"total_lecturers":          in.TotalLecturers,
				"max_active_advisees":      in.MaxActiveAdvisees,
				"margin_ratio":             marginRatio,
				"current_quota":            cfg.ExaminerQuota,
				"minimum_quota":            minimumQuota,
				"examiner_capacity":        examinerCapacity,
				"slots_needed":             slotsNeeded,
				"slots_needed_with_margin": slotsNeededWithMargin,
			})
	}

	if slotsPerDay == 0 {
		return nil, appErrors.ErrNoDailySlots.WithDetail(
			"Widen the operating hours or add rooms.",
			map[string]any{"slots_per_day": 0, "window_minutes": windowMinutes, "step_minutes": cfg.DurationMinutes + cfg.BufferMinutes})
	}

	estimatedDays := int(math.Ceil(float64(in.StudentsReady) / float64(slotsPerDay)))
	info := &dto.DiagnosticInfo{
		StudentsReady:  in.StudentsReady,
		TotalLecturers: in.TotalLecturers,
		RoomCount:      roomCount,
		WorkingDays:    workingDays,
		SlotsPerDay:    slotsPerDay,
		EstimatedDays:  estimatedDays,
	}
	if estimatedDays > 60 {
		info.Warnings = &dto.DiagnosticWarnings{
			Problems: []string{
				fmt.Sprintf("Estimated %d working days needed for %d students.", estimatedDays, in.StudentsReady),
			},
			Suggestions: []string{
				fmt.Sprintf("Add rooms (currently %d) or widen the operating hours to speed things up.", roomCount),
			},
		}
	}
	return info, nil
}
