package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/itsanla/sita-bi-sub000/internal/models"
)

// ScheduleRepository persists defense schedules and the examiner role
// links that hang off them. Every mutation that spans more than one
// table runs inside a single transaction.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs the repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const seatColumns = `sch.id AS schedule_id, t.id AS thesis_id, sch.date, sch.start_time, sch.end_time, sch.room_id,
       tr.lecturer_id, l.name AS lecturer_name, tr.role, st.name AS student_name`

const seatJoins = `FROM defense_schedules sch
JOIN defenses d ON d.id = sch.defense_id
JOIN theses t ON t.id = d.thesis_id
JOIN students st ON st.id = t.student_id
JOIN thesis_roles tr ON tr.thesis_id = t.id AND tr.role IN ('examiner1','examiner2','examiner3','advisor1')
JOIN lecturers l ON l.id = tr.lecturer_id`

// ListSeatsByDate returns every occupied panel seat on a date.
func (r *ScheduleRepository) ListSeatsByDate(ctx context.Context, date time.Time) ([]models.PanelSeat, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE sch.date = $1`, seatColumns, seatJoins)
	var seats []models.PanelSeat
	if err := r.db.SelectContext(ctx, &seats, query, dateOnly(date)); err != nil {
		return nil, fmt.Errorf("list seats by date: %w", err)
	}
	return seats, nil
}

// ListSeatsExact returns panel seats of schedules matching the exact
// (date, start, end) tuple.
func (r *ScheduleRepository) ListSeatsExact(ctx context.Context, date time.Time, start, end string) ([]models.PanelSeat, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE sch.date = $1 AND sch.start_time = $2 AND sch.end_time = $3`, seatColumns, seatJoins)
	var seats []models.PanelSeat
	if err := r.db.SelectContext(ctx, &seats, query, dateOnly(date), start, end); err != nil {
		return nil, fmt.Errorf("list seats exact: %w", err)
	}
	return seats, nil
}

// ExaminerLoads counts examiner-seat assignments per lecturer across
// scheduled defenses of the period.
func (r *ScheduleRepository) ExaminerLoads(ctx context.Context, periodID string) ([]models.LecturerLoad, error) {
	const query = `SELECT tr.lecturer_id, COUNT(*) AS count
FROM thesis_roles tr
JOIN theses t ON t.id = tr.thesis_id
JOIN defenses d ON d.thesis_id = t.id AND d.is_active = TRUE AND d.status = 'scheduled'
WHERE tr.role IN ('examiner1','examiner2','examiner3') AND t.period_id = $1
GROUP BY tr.lecturer_id`
	var loads []models.LecturerLoad
	if err := r.db.SelectContext(ctx, &loads, query, periodID); err != nil {
		return nil, fmt.Errorf("examiner loads: %w", err)
	}
	return loads, nil
}

// HasRoomOverlap reports whether any persisted schedule occupies the
// room with a strictly overlapping time range on that date.
func (r *ScheduleRepository) HasRoomOverlap(ctx context.Context, date time.Time, roomID, start, end string) (bool, error) {
	const query = `SELECT COUNT(*) FROM defense_schedules
WHERE date = $1 AND room_id = $2 AND NOT (end_time <= $3 OR start_time >= $4)`
	var total int
	if err := r.db.GetContext(ctx, &total, query, dateOnly(date), roomID, start, end); err != nil {
		return false, fmt.Errorf("room overlap check: %w", err)
	}
	return total > 0, nil
}

// CreateAssignment atomically books a candidate into a slot: it removes
// stale examiner roles for the thesis, inserts the schedule and the
// three examiner role links, marks the defense and student scheduled,
// and resolves display names. The room and identity re-checks run
// inside the same transaction so no conflicting writer can interleave
// between validation and commit.
func (r *ScheduleRepository) CreateAssignment(ctx context.Context, cand models.Candidate, slot models.TimeSlot, periodID string, examiners [3]string) (*models.AssignmentRecord, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin assignment tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var occupied int
	if err = tx.GetContext(ctx, &occupied,
		`SELECT COUNT(*) FROM defense_schedules WHERE date = $1 AND room_id = $2 AND NOT (end_time <= $3 OR start_time >= $4)`,
		dateOnly(slot.Date), slot.RoomID, slot.StartTime, slot.EndTime); err != nil {
		return nil, fmt.Errorf("assignment room re-check: %w", err)
	}
	if occupied > 0 {
		err = &models.BookingConflictError{Dimension: "ROOM", StudentName: cand.StudentName}
		return nil, err
	}

	people := append([]string{}, examiners[:]...)
	people = append(people, cand.AdvisorIDs()...)
	query, args, buildErr := sqlx.In(`SELECT COUNT(*)
FROM defense_schedules sch
JOIN defenses d ON d.id = sch.defense_id
JOIN thesis_roles tr ON tr.thesis_id = d.thesis_id AND tr.role IN ('examiner1','examiner2','examiner3','advisor1')
WHERE sch.date = ? AND sch.start_time = ? AND sch.end_time = ? AND tr.lecturer_id IN (?)`,
		dateOnly(slot.Date), slot.StartTime, slot.EndTime, people)
	if buildErr != nil {
		err = fmt.Errorf("build identity re-check: %w", buildErr)
		return nil, err
	}
	var busy int
	if err = tx.GetContext(ctx, &busy, tx.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("assignment identity re-check: %w", err)
	}
	if busy > 0 {
		err = &models.BookingConflictError{Dimension: "LECTURER", StudentName: cand.StudentName}
		return nil, err
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM thesis_roles WHERE thesis_id = $1 AND role IN ('examiner1','examiner2','examiner3')`,
		cand.ThesisID); err != nil {
		return nil, fmt.Errorf("remove stale examiner roles: %w", err)
	}

	now := time.Now().UTC()
	schedule := models.DefenseSchedule{
		ID:        uuid.NewString(),
		DefenseID: cand.DefenseID,
		PeriodID:  periodID,
		Date:      dateOnly(slot.Date),
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		RoomID:    slot.RoomID,
		CreatedAt: now,
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO defense_schedules (id, defense_id, period_id, date, start_time, end_time, room_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schedule.ID, schedule.DefenseID, schedule.PeriodID, schedule.Date, schedule.StartTime, schedule.EndTime, schedule.RoomID, schedule.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert defense schedule: %w", err)
	}

	for i, role := range models.ExaminerRoles {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO thesis_roles (id, thesis_id, lecturer_id, role) VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), cand.ThesisID, examiners[i], role); err != nil {
			return nil, fmt.Errorf("insert examiner role %s: %w", role, err)
		}
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE defenses SET status = 'scheduled' WHERE id = $1`, cand.DefenseID); err != nil {
		return nil, fmt.Errorf("mark defense scheduled: %w", err)
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE students SET defense_scheduled = TRUE, updated_at = $2 WHERE id = $1`, cand.StudentID, now); err != nil {
		return nil, fmt.Errorf("mark student scheduled: %w", err)
	}

	record := &models.AssignmentRecord{Schedule: schedule}
	for i, examinerID := range examiners {
		if err = tx.GetContext(ctx, &record.ExaminerNames[i],
			`SELECT name FROM lecturers WHERE id = $1`, examinerID); err != nil {
			return nil, fmt.Errorf("resolve examiner name: %w", err)
		}
	}
	if err = tx.GetContext(ctx, &record.RoomName,
		`SELECT name FROM rooms WHERE id = $1`, slot.RoomID); err != nil {
		return nil, fmt.Errorf("resolve room name: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit assignment tx: %w", err)
	}
	return record, nil
}

type scheduleDetailRow struct {
	ID          string    `db:"id"`
	DefenseID   string    `db:"defense_id"`
	PeriodID    string    `db:"period_id"`
	Date        time.Time `db:"date"`
	StartTime   string    `db:"start_time"`
	EndTime     string    `db:"end_time"`
	RoomID      string    `db:"room_id"`
	CreatedAt   time.Time `db:"created_at"`
	ThesisID    string    `db:"thesis_id"`
	StudentID   string    `db:"student_id"`
	StudentName string    `db:"student_name"`
	NIM         string    `db:"nim"`
}

func scanDetail(ctx context.Context, q sqlx.QueryerContext, id string) (*models.ScheduleDetail, error) {
	const query = `SELECT sch.id, sch.defense_id, sch.period_id, sch.date, sch.start_time, sch.end_time, sch.room_id, sch.created_at,
       t.id AS thesis_id, st.id AS student_id, st.name AS student_name, st.nim
FROM defense_schedules sch
JOIN defenses d ON d.id = sch.defense_id
JOIN theses t ON t.id = d.thesis_id
JOIN students st ON st.id = t.student_id
WHERE sch.id = $1`
	var row scheduleDetailRow
	if err := sqlx.GetContext(ctx, q, &row, query, id); err != nil {
		return nil, err
	}
	detail := &models.ScheduleDetail{
		Schedule: models.DefenseSchedule{
			ID: row.ID, DefenseID: row.DefenseID, PeriodID: row.PeriodID,
			Date: row.Date, StartTime: row.StartTime, EndTime: row.EndTime,
			RoomID: row.RoomID, CreatedAt: row.CreatedAt,
		},
		DefenseID:   row.DefenseID,
		ThesisID:    row.ThesisID,
		StudentID:   row.StudentID,
		StudentName: row.StudentName,
		NIM:         row.NIM,
	}
	var advisorIDs []string
	if err := sqlx.SelectContext(ctx, q, &advisorIDs,
		`SELECT lecturer_id FROM thesis_roles WHERE thesis_id = $1 AND role IN ('advisor1','advisor2') ORDER BY role ASC`,
		row.ThesisID); err != nil {
		return nil, err
	}
	detail.AdvisorIDs = advisorIDs
	return detail, nil
}

// FindDetail loads a schedule with its student and advisor context.
func (r *ScheduleRepository) FindDetail(ctx context.Context, id string) (*models.ScheduleDetail, error) {
	detail, err := scanDetail(ctx, r.db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find schedule detail: %w", err)
	}
	return detail, nil
}

// UpdateSchedule applies a patch to one schedule inside a transaction,
// re-running the room and lecturer overlap checks against current state
// first. A clash surfaces as *models.BookingConflictError naming the
// occupant.
func (r *ScheduleRepository) UpdateSchedule(ctx context.Context, id string, date time.Time, start, end, roomID string, examiners *[3]string, advisorIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	detail, derr := scanDetail(ctx, tx, id)
	if derr != nil {
		err = derr
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("load schedule for update: %w", err)
	}

	type occupant struct {
		StudentName  string `db:"student_name"`
		RoomName     string `db:"room_name"`
		LecturerName string `db:"lecturer_name"`
	}

	var roomClash []occupant
	if err = tx.SelectContext(ctx, &roomClash,
		`SELECT st.name AS student_name, ro.name AS room_name, '' AS lecturer_name
FROM defense_schedules sch
JOIN defenses d ON d.id = sch.defense_id
JOIN theses t ON t.id = d.thesis_id
JOIN students st ON st.id = t.student_id
JOIN rooms ro ON ro.id = sch.room_id
WHERE sch.id <> $1 AND sch.date = $2 AND sch.room_id = $3 AND NOT (sch.end_time <= $4 OR sch.start_time >= $5)
LIMIT 1`,
		id, dateOnly(date), roomID, start, end); err != nil {
		return fmt.Errorf("update room overlap check: %w", err)
	}
	if len(roomClash) > 0 {
		err = &models.BookingConflictError{Dimension: "ROOM", StudentName: roomClash[0].StudentName, RoomName: roomClash[0].RoomName}
		return err
	}

	people := append([]string{}, advisorIDs...)
	if examiners != nil {
		people = append(people, examiners[:]...)
	}
	if len(people) > 0 {
		query, args, buildErr := sqlx.In(`SELECT st.name AS student_name, '' AS room_name, l.name AS lecturer_name
FROM defense_schedules sch
JOIN defenses d ON d.id = sch.defense_id
JOIN theses t ON t.id = d.thesis_id
JOIN students st ON st.id = t.student_id
JOIN thesis_roles tr ON tr.thesis_id = t.id AND tr.role IN ('examiner1','examiner2','examiner3','advisor1')
JOIN lecturers l ON l.id = tr.lecturer_id
WHERE sch.id <> ? AND sch.date = ? AND NOT (sch.end_time <= ? OR sch.start_time >= ?) AND tr.lecturer_id IN (?)
LIMIT 1`, id, dateOnly(date), start, end, people)
		if buildErr != nil {
			err = fmt.Errorf("build lecturer overlap check: %w", buildErr)
			return err
		}
		var personClash []occupant
		if err = tx.SelectContext(ctx, &personClash, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("update lecturer overlap check: %w", err)
		}
		if len(personClash) > 0 {
			err = &models.BookingConflictError{Dimension: "LECTURER", StudentName: personClash[0].StudentName, LecturerName: personClash[0].LecturerName}
			return err
		}
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE defense_schedules SET date = $2, start_time = $3, end_time = $4, room_id = $5 WHERE id = $1`,
		id, dateOnly(date), start, end, roomID); err != nil {
		return fmt.Errorf("update schedule row: %w", err)
	}

	if examiners != nil {
		if _, err = tx.ExecContext(ctx,
			`DELETE FROM thesis_roles WHERE thesis_id = $1 AND role IN ('examiner1','examiner2','examiner3')`,
			detail.ThesisID); err != nil {
			return fmt.Errorf("replace examiner roles: %w", err)
		}
		for i, role := range models.ExaminerRoles {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO thesis_roles (id, thesis_id, lecturer_id, role) VALUES ($1, $2, $3, $4)`,
				uuid.NewString(), detail.ThesisID, examiners[i], role); err != nil {
				return fmt.Errorf("insert examiner role %s: %w", role, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit update tx: %w", err)
	}
	return nil
}

// DeleteOne removes a schedule, reverting its defense to awaiting and
// marking the student failed with the operator's reason.
func (r *ScheduleRepository) DeleteOne(ctx context.Context, id, reason string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	detail, derr := scanDetail(ctx, tx, id)
	if derr != nil {
		err = derr
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("load schedule for delete: %w", err)
	}

	if reason == "" {
		reason = "removed from schedule"
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM thesis_roles WHERE thesis_id = $1 AND role IN ('examiner1','examiner2','examiner3')`,
		detail.ThesisID); err != nil {
		return fmt.Errorf("delete examiner roles: %w", err)
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE defenses SET status = 'awaiting_schedule' WHERE id = $1`, detail.DefenseID); err != nil {
		return fmt.Errorf("revert defense status: %w", err)
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE students SET defense_scheduled = FALSE, failed_to_schedule = TRUE,
       failure_reason = $2, fail_status = 'SPECIAL', failed_period_id = $3, updated_at = NOW()
WHERE id = $1`,
		detail.StudentID, reason, detail.Schedule.PeriodID); err != nil {
		return fmt.Errorf("flag student removed: %w", err)
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM defense_schedules WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete schedule row: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete tx: %w", err)
	}
	return nil
}

// DeleteAll tears down every schedule of the period, reverting the
// affected defenses and students to the unscheduled state.
func (r *ScheduleRepository) DeleteAll(ctx context.Context, periodID string) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete-all tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var thesisIDs []string
	if err = tx.SelectContext(ctx, &thesisIDs,
		`SELECT d.thesis_id FROM defense_schedules sch JOIN defenses d ON d.id = sch.defense_id WHERE sch.period_id = $1`,
		periodID); err != nil {
		return 0, fmt.Errorf("collect scheduled theses: %w", err)
	}
	if len(thesisIDs) == 0 {
		_ = tx.Rollback()
		return 0, nil
	}

	query, args, buildErr := sqlx.In(
		`DELETE FROM thesis_roles WHERE thesis_id IN (?) AND role IN ('examiner1','examiner2','examiner3')`, thesisIDs)
	if buildErr != nil {
		err = fmt.Errorf("build role teardown: %w", buildErr)
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("delete examiner roles: %w", err)
	}

	query, args, buildErr = sqlx.In(
		`UPDATE defenses SET status = 'awaiting_schedule' WHERE thesis_id IN (?)`, thesisIDs)
	if buildErr != nil {
		err = fmt.Errorf("build defense revert: %w", buildErr)
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("revert defenses: %w", err)
	}

	query, args, buildErr = sqlx.In(
		`UPDATE students SET defense_scheduled = FALSE, updated_at = NOW()
WHERE id IN (SELECT student_id FROM theses WHERE id IN (?))`, thesisIDs)
	if buildErr != nil {
		err = fmt.Errorf("build student revert: %w", buildErr)
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("revert students: %w", err)
	}

	res, execErr := tx.ExecContext(ctx, `DELETE FROM defense_schedules WHERE period_id = $1`, periodID)
	if execErr != nil {
		err = execErr
		return 0, fmt.Errorf("delete schedules: %w", err)
	}
	count, _ := res.RowsAffected()

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete-all tx: %w", err)
	}
	return count, nil
}

// MoveFromDate shifts every schedule dated on or after fromDate by
// diffDays, preserving relative spacing. Returns the number moved.
func (r *ScheduleRepository) MoveFromDate(ctx context.Context, fromDate time.Time, diffDays int) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin move tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, execErr := tx.ExecContext(ctx,
		`UPDATE defense_schedules SET date = date + ($2 * INTERVAL '1 day') WHERE date >= $1`,
		dateOnly(fromDate), diffDays)
	if execErr != nil {
		err = execErr
		return 0, fmt.Errorf("move schedules: %w", err)
	}
	count, _ := res.RowsAffected()

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit move tx: %w", err)
	}
	return count, nil
}

// Swap exchanges the (date, time range, room) of two schedules.
func (r *ScheduleRepository) Swap(ctx context.Context, id1, id2 string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin swap tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var first, second models.DefenseSchedule
	if err = tx.GetContext(ctx, &first,
		`SELECT id, defense_id, period_id, date, start_time, end_time, room_id, created_at FROM defense_schedules WHERE id = $1`, id1); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("load first schedule: %w", err)
	}
	if err = tx.GetContext(ctx, &second,
		`SELECT id, defense_id, period_id, date, start_time, end_time, room_id, created_at FROM defense_schedules WHERE id = $1`, id2); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("load second schedule: %w", err)
	}

	const update = `UPDATE defense_schedules SET date = $2, start_time = $3, end_time = $4, room_id = $5 WHERE id = $1`
	if _, err = tx.ExecContext(ctx, update, first.ID, second.Date, second.StartTime, second.EndTime, second.RoomID); err != nil {
		return fmt.Errorf("swap first schedule: %w", err)
	}
	if _, err = tx.ExecContext(ctx, update, second.ID, first.Date, first.StartTime, first.EndTime, first.RoomID); err != nil {
		return fmt.Errorf("swap second schedule: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit swap tx: %w", err)
	}
	return nil
}

// ListBoard returns the schedule board for the period, each row with
// its full panel, ordered by date then start time.
func (r *ScheduleRepository) ListBoard(ctx context.Context, periodID string) ([]models.BoardRow, error) {
	const query = `SELECT sch.id AS schedule_id, sch.defense_id, st.name AS student_name, st.nim,
       sch.date, sch.start_time, sch.end_time, ro.name AS room_name,
       COALESCE(MAX(CASE WHEN tr.role = 'advisor1' THEN l.name END), '-') AS secretary,
       COALESCE(MAX(CASE WHEN tr.role = 'examiner1' THEN l.name END), '-') AS member1,
       COALESCE(MAX(CASE WHEN tr.role = 'examiner2' THEN l.name END), '-') AS member2,
       COALESCE(MAX(CASE WHEN tr.role = 'examiner3' THEN l.name END), '-') AS member3
FROM defense_schedules sch
JOIN defenses d ON d.id = sch.defense_id
JOIN theses t ON t.id = d.thesis_id
JOIN students st ON st.id = t.student_id
JOIN rooms ro ON ro.id = sch.room_id
LEFT JOIN thesis_roles tr ON tr.thesis_id = t.id AND tr.role IN ('advisor1','examiner1','examiner2','examiner3')
LEFT JOIN lecturers l ON l.id = tr.lecturer_id
WHERE sch.period_id = $1
GROUP BY sch.id, sch.defense_id, st.name, st.nim, sch.date, sch.start_time, sch.end_time, ro.name
ORDER BY sch.date ASC, sch.start_time ASC`
	var rows []models.BoardRow
	if err := r.db.SelectContext(ctx, &rows, query, periodID); err != nil {
		return nil, fmt.Errorf("list board: %w", err)
	}
	return rows, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
