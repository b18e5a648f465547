package repository

import (
	"context"
	"database/sql"

	"github.com/huylq/training-center-api/internal/model"
)

// RoomRepo manages persistence for rooms. Rooms are an open set;
// only active rooms are offered to the availability resolver.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// ListActive returns every room currently offered for new sessions,
// ordered by name.
func (r *RoomRepo) ListActive(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT id, name, capacity, is_active, created_at
	           FROM rooms WHERE is_active = 1 ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Room
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Capacity, &rm.IsActive, &rm.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ActiveNames returns just the names of active rooms, the shape the
// availability resolver takes.
func (r *RoomRepo) ActiveNames(ctx context.Context) ([]string, error) {
	rooms, err := r.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rooms))
	for _, rm := range rooms {
		names = append(names, rm.Name)
	}
	return names, nil
}
