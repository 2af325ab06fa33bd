package models

import "time"

// Setting is a row in the generic key/value settings store that feeds
// the scheduling configuration.
type Setting struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
