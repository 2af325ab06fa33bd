package models

import "time"

// PeriodStatus is the lifecycle state of an academic period.
type PeriodStatus string

const (
	PeriodStatusActive PeriodStatus = "ACTIVE"
	PeriodStatusClosed PeriodStatus = "CLOSED"
)

// Period is an academic period; at most one is active at a time and all
// scheduling runs are scoped to it.
type Period struct {
	ID        string       `db:"id" json:"id"`
	Name      string       `db:"name" json:"name"`
	Status    PeriodStatus `db:"status" json:"status"`
	StartDate time.Time    `db:"start_date" json:"start_date"`
	EndDate   time.Time    `db:"end_date" json:"end_date"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}

// RunStatus is the state of the period-level scheduling record.
type RunStatus string

const (
	RunStatusPending   RunStatus = "PENDING"
	RunStatusCompleted RunStatus = "COMPLETED"
)

// SchedulingRun records whether the active period has been scheduled.
type SchedulingRun struct {
	ID          string     `db:"id" json:"id"`
	PeriodID    string     `db:"period_id" json:"period_id"`
	Status      RunStatus  `db:"status" json:"status"`
	GeneratedAt *time.Time `db:"generated_at" json:"generated_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
