package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/itsanla/sita-bi-sub000/internal/models"
)

// DefenseRepository manages defense lifecycle records.
type DefenseRepository struct {
	db *sqlx.DB
}

// NewDefenseRepository constructs the repository.
func NewDefenseRepository(db *sqlx.DB) *DefenseRepository {
	return &DefenseRepository{db: db}
}

// CreateAwaiting inserts a fresh active awaiting-schedule defense for a
// thesis. Called on demand when a ready student has none.
func (r *DefenseRepository) CreateAwaiting(ctx context.Context, thesisID string) (*models.Defense, error) {
	defense := &models.Defense{
		ID:        uuid.NewString(),
		ThesisID:  thesisID,
		Stage:     "FINAL",
		Status:    models.DefenseStatusAwaitingSchedule,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	const query = `INSERT INTO defenses (id, thesis_id, stage, status, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query, defense.ID, defense.ThesisID, defense.Stage, defense.Status, defense.IsActive, defense.CreatedAt); err != nil {
		return nil, fmt.Errorf("create awaiting defense: %w", err)
	}
	return defense, nil
}
