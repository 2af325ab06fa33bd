package models

import "time"

// Room is a defense room. Rooms referenced by the scheduling
// configuration are resolved by name; unknown names are dropped.
type Room struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
