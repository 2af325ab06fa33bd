package models

import "time"

// Lecturer is a faculty member eligible to advise and examine defenses.
type Lecturer struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	NIDN      *string   `db:"nidn" json:"nidn,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// LecturerLoad is a derived per-pass count of examiner assignments for
// one lecturer within the active period.
type LecturerLoad struct {
	LecturerID string `db:"lecturer_id" json:"lecturer_id"`
	Count      int    `db:"count" json:"count"`
}

// AdvisorLoad counts primary advisees per lecturer, used by the
// advisor-overload pre-check.
type AdvisorLoad struct {
	LecturerID string `db:"lecturer_id"`
	Name       string `db:"name"`
	Count      int    `db:"count"`
}
