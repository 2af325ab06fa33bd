package models

import "time"

// DefenseStatus is the lifecycle of a defense record.
type DefenseStatus string

const (
	DefenseStatusAwaitingSchedule DefenseStatus = "awaiting_schedule"
	DefenseStatusScheduled        DefenseStatus = "scheduled"
	DefenseStatusPassed           DefenseStatus = "passed"
	DefenseStatusFailed           DefenseStatus = "failed"
)

// Defense is the oral examination event for a thesis. One is created on
// demand (awaiting_schedule) when a ready student has none active.
type Defense struct {
	ID        string        `db:"id" json:"id"`
	ThesisID  string        `db:"thesis_id" json:"thesis_id"`
	Stage     string        `db:"stage" json:"stage"`
	Status    DefenseStatus `db:"status" json:"status"`
	IsActive  bool          `db:"is_active" json:"is_active"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

// Candidate is an unscheduled student prepared for one scheduling pass:
// the active awaiting-schedule defense plus resolved advisor identities.
type Candidate struct {
	DefenseID    string
	ThesisID     string
	StudentID    string
	StudentName  string
	NIM          string
	Advisor1ID   string
	Advisor1Name string
	Advisor2ID   string
}

// AdvisorIDs returns the identities excluded from this candidate's
// examiner pool. Advisor2 is optional.
func (c Candidate) AdvisorIDs() []string {
	ids := []string{c.Advisor1ID}
	if c.Advisor2ID != "" {
		ids = append(ids, c.Advisor2ID)
	}
	return ids
}
