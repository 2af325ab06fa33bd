package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/itsanla/sita-bi-sub000/internal/models"
)

// LecturerRepository manages persistence for lecturers.
type LecturerRepository struct {
	db *sqlx.DB
}

// NewLecturerRepository constructs the repository.
func NewLecturerRepository(db *sqlx.DB) *LecturerRepository {
	return &LecturerRepository{db: db}
}

// List returns all lecturers ordered by name.
func (r *LecturerRepository) List(ctx context.Context) ([]models.Lecturer, error) {
	const query = `SELECT id, name, nidn, created_at FROM lecturers ORDER BY name ASC`
	var lecturers []models.Lecturer
	if err := r.db.SelectContext(ctx, &lecturers, query); err != nil {
		return nil, fmt.Errorf("list lecturers: %w", err)
	}
	return lecturers, nil
}

// ListIDs returns every lecturer id.
func (r *LecturerRepository) ListIDs(ctx context.Context) ([]string, error) {
	const query = `SELECT id FROM lecturers ORDER BY id ASC`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("list lecturer ids: %w", err)
	}
	return ids, nil
}

// Count returns the total number of lecturers.
func (r *LecturerRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM lecturers`
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count lecturers: %w", err)
	}
	return total, nil
}

// AdvisorLoads counts primary advisees per lecturer among the provided
// theses. Used by the advisor-overload pre-check.
func (r *LecturerRepository) AdvisorLoads(ctx context.Context, thesisIDs []string) ([]models.AdvisorLoad, error) {
	if len(thesisIDs) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT tr.lecturer_id, l.name, COUNT(*) AS count
FROM thesis_roles tr
JOIN lecturers l ON l.id = tr.lecturer_id
WHERE tr.role = 'advisor1' AND tr.thesis_id IN (%s)
GROUP BY tr.lecturer_id, l.name
ORDER BY count DESC`, placeholders(len(thesisIDs)))
	args := make([]interface{}, len(thesisIDs))
	for i, id := range thesisIDs {
		args[i] = id
	}
	var loads []models.AdvisorLoad
	if err := r.db.SelectContext(ctx, &loads, query, args...); err != nil {
		return nil, fmt.Errorf("advisor loads: %w", err)
	}
	return loads, nil
}
