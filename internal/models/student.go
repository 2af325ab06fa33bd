package models

import "time"

// FailStatus marks why a student ended up unscheduled.
type FailStatus string

const (
	// FailStatusCapacity is set when the automatic run could not place the student.
	FailStatusCapacity FailStatus = "CAPACITY"
	// FailStatusSpecial is set when an operator removed the student's schedule.
	FailStatusSpecial FailStatus = "SPECIAL"
)

// Student carries the scheduling-relevant student state.
type Student struct {
	ID                string     `db:"id" json:"id"`
	Name              string     `db:"name" json:"name"`
	NIM               string     `db:"nim" json:"nim"`
	Program           string     `db:"program" json:"program"`
	ReadyForDefense   bool       `db:"ready_for_defense" json:"ready_for_defense"`
	DefenseScheduled  bool       `db:"defense_scheduled" json:"defense_scheduled"`
	FailedToSchedule  bool       `db:"failed_to_schedule" json:"failed_to_schedule"`
	FailureReason     *string    `db:"failure_reason" json:"failure_reason,omitempty"`
	FailStatus        *string    `db:"fail_status" json:"fail_status,omitempty"`
	FailedPeriodID    *string    `db:"failed_period_id" json:"failed_period_id,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// FailedStudent is a board row describing a student who could not be scheduled.
type FailedStudent struct {
	Name    string `db:"name" json:"name"`
	NIM     string `db:"nim" json:"nim"`
	Program string `db:"program" json:"program"`
	Status  string `db:"status" json:"status"`
	Reason  string `db:"reason" json:"reason"`
}
