package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/itsanla/sita-bi-sub000/internal/models"
)

// StudentRepository manages scheduling-relevant student state.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// CountReady counts students eligible for scheduling.
func (r *StudentRepository) CountReady(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM students WHERE ready_for_defense = TRUE AND defense_scheduled = FALSE`
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count ready students: %w", err)
	}
	return total, nil
}

type candidateRow struct {
	StudentID    string  `db:"student_id"`
	StudentName  string  `db:"student_name"`
	NIM          string  `db:"nim"`
	ThesisID     string  `db:"thesis_id"`
	DefenseID    *string `db:"defense_id"`
	Advisor1ID   string  `db:"advisor1_id"`
	Advisor1Name string  `db:"advisor1_name"`
	Advisor2ID   *string `db:"advisor2_id"`
}

// ListReadyCandidates loads every ready, unscheduled student together
// with their thesis, advisors and (if present) active awaiting-schedule
// defense. A candidate without one has an empty DefenseID; the caller
// creates the defense record on demand.
func (r *StudentRepository) ListReadyCandidates(ctx context.Context) ([]models.Candidate, error) {
	const query = `SELECT s.id AS student_id, s.name AS student_name, s.nim,
       t.id AS thesis_id,
       d.id AS defense_id,
       r1.lecturer_id AS advisor1_id, l1.name AS advisor1_name,
       r2.lecturer_id AS advisor2_id
FROM students s
JOIN theses t ON t.student_id = s.id
JOIN thesis_roles r1 ON r1.thesis_id = t.id AND r1.role = 'advisor1'
JOIN lecturers l1 ON l1.id = r1.lecturer_id
LEFT JOIN thesis_roles r2 ON r2.thesis_id = t.id AND r2.role = 'advisor2'
LEFT JOIN defenses d ON d.thesis_id = t.id AND d.is_active = TRUE AND d.status = 'awaiting_schedule'
WHERE s.ready_for_defense = TRUE AND s.defense_scheduled = FALSE
ORDER BY s.nim ASC`
	var rows []candidateRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list ready candidates: %w", err)
	}
	candidates := make([]models.Candidate, 0, len(rows))
	for _, row := range rows {
		cand := models.Candidate{
			ThesisID:     row.ThesisID,
			StudentID:    row.StudentID,
			StudentName:  row.StudentName,
			NIM:          row.NIM,
			Advisor1ID:   row.Advisor1ID,
			Advisor1Name: row.Advisor1Name,
		}
		if row.DefenseID != nil {
			cand.DefenseID = *row.DefenseID
		}
		if row.Advisor2ID != nil {
			cand.Advisor2ID = *row.Advisor2ID
		}
		candidates = append(candidates, cand)
	}
	return candidates, nil
}

// MarkUnplacedFailed flags every ready-but-unscheduled student of the
// period as failed to schedule rather than leaving them silently pending.
func (r *StudentRepository) MarkUnplacedFailed(ctx context.Context, periodID, reason string) (int64, error) {
	const query = `UPDATE students SET failed_to_schedule = TRUE,
       failure_reason = $2, fail_status = 'CAPACITY', failed_period_id = $1, updated_at = NOW()
WHERE ready_for_defense = TRUE AND defense_scheduled = FALSE AND failed_to_schedule = FALSE`
	res, err := r.db.ExecContext(ctx, query, periodID, reason)
	if err != nil {
		return 0, fmt.Errorf("mark unplaced students failed: %w", err)
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

// ListFailed returns failed-to-schedule students for the period.
func (r *StudentRepository) ListFailed(ctx context.Context, periodID string) ([]models.FailedStudent, error) {
	const query = `SELECT name, nim, program,
       COALESCE(fail_status, 'CAPACITY') AS status,
       COALESCE(failure_reason, '') AS reason
FROM students
WHERE failed_to_schedule = TRUE AND failed_period_id = $1
ORDER BY nim ASC`
	var students []models.FailedStudent
	if err := r.db.SelectContext(ctx, &students, query, periodID); err != nil {
		return nil, fmt.Errorf("list failed students: %w", err)
	}
	return students, nil
}

// ListReadyOptions returns picker entries for ready students.
func (r *StudentRepository) ListReadyOptions(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT id, name, nim, program, ready_for_defense, defense_scheduled,
       failed_to_schedule, failure_reason, fail_status, failed_period_id, created_at, updated_at
FROM students WHERE ready_for_defense = TRUE ORDER BY nim ASC`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list ready students: %w", err)
	}
	return students, nil
}
