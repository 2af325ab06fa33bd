package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/itsanla/sita-bi-sub000/internal/models"
)

// RoomRepository manages persistence for defense rooms.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository constructs the repository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// List returns all rooms ordered by name.
func (r *RoomRepository) List(ctx context.Context) ([]models.Room, error) {
	const query = `SELECT id, name, created_at FROM rooms ORDER BY name ASC`
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// IDsByNames resolves configured room names to ids, preserving the
// configured order. Names with no matching room are dropped.
func (r *RoomRepository) IDsByNames(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT id, name, created_at FROM rooms WHERE name IN (%s)`, placeholders(len(names)))
	args := make([]interface{}, len(names))
	for i, name := range names {
		args[i] = name
	}
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query, args...); err != nil {
		return nil, fmt.Errorf("resolve room names: %w", err)
	}
	byName := make(map[string]string, len(rooms))
	for _, room := range rooms {
		byName[room.Name] = room.ID
	}
	ids := make([]string, 0, len(names))
	for _, name := range names {
		if id, ok := byName[name]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func placeholders(n int) string {
	values := make([]string, n)
	for i := 1; i <= n; i++ {
		values[i-1] = fmt.Sprintf("$%d", i)
	}
	return strings.Join(values, ",")
}
