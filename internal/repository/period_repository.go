package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/itsanla/sita-bi-sub000/internal/models"
)

// PeriodRepository manages academic periods and their scheduling run record.
type PeriodRepository struct {
	db *sqlx.DB
}

// NewPeriodRepository constructs the repository.
func NewPeriodRepository(db *sqlx.DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

// FindActive returns the single active period.
func (r *PeriodRepository) FindActive(ctx context.Context) (*models.Period, error) {
	const query = `SELECT id, name, status, start_date, end_date, created_at
FROM periods WHERE status = 'ACTIVE' ORDER BY created_at DESC LIMIT 1`
	var period models.Period
	if err := r.db.GetContext(ctx, &period, query); err != nil {
		return nil, err
	}
	return &period, nil
}

// MarkRunCompleted records that the period has a completed scheduling
// run, creating the record when absent.
func (r *PeriodRepository) MarkRunCompleted(ctx context.Context, periodID string) error {
	const query = `INSERT INTO scheduling_runs (id, period_id, status, generated_at, created_at)
VALUES ($1, $2, 'COMPLETED', $3, $3)
ON CONFLICT (period_id)
DO UPDATE SET status = 'COMPLETED', generated_at = EXCLUDED.generated_at`
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), periodID, now); err != nil {
		return fmt.Errorf("mark run completed: %w", err)
	}
	return nil
}

// ResetRun reverts the period's run record to pending after a teardown.
func (r *PeriodRepository) ResetRun(ctx context.Context, periodID string) error {
	const query = `UPDATE scheduling_runs SET status = 'PENDING', generated_at = NULL WHERE period_id = $1`
	if _, err := r.db.ExecContext(ctx, query, periodID); err != nil {
		return fmt.Errorf("reset scheduling run: %w", err)
	}
	return nil
}
