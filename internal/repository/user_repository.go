package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/huylq/training-center-api/internal/model"
)

// ErrUserNotFound indicates that a user was not located in the DB.
var ErrUserNotFound = errors.New("user not found")

// UserRepo reads user records. Accounts are created and authenticated
// by the separate auth service; this repository only resolves the
// references classes and sessions carry.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetByID retrieves a user by ID. It returns ErrUserNotFound when
// there is no matching row.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT id, username, full_name, email, role, is_active, created_at, updated_at
	           FROM users WHERE id = ?`
	var u model.User
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&u.ID, &u.Username, &u.FullName, &u.Email, &u.Role,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
