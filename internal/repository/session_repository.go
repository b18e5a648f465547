// Package repository contains data access logic for session scheduling.
// This file defines the SessionRepo. Sessions occupy a (teacher, date,
// shift) and a (room, date, shift) slot; both pairs carry UNIQUE keys
// in MySQL over a nullable slot_active flag that is set to NULL when a
// session is cancelled or soft-deleted, so inactive rows never block a
// slot. The in-process availability check in internal/scheduler is
// advisory; these keys are the final authority and a duplicate-key
// rejection here is the definitive conflict signal.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/huylq/training-center-api/internal/model"
)

// ErrSessionNotFound indicates that a session was not located in the DB.
var ErrSessionNotFound = errors.New("session not found")

// ErrTeacherSlotTaken indicates the uq_teacher_slot key rejected an
// insert: the teacher already has an active session at that date+shift.
var ErrTeacherSlotTaken = errors.New("teacher slot taken")

// ErrRoomSlotTaken indicates the uq_room_slot key rejected an insert:
// the room is already occupied at that date+shift.
var ErrRoomSlotTaken = errors.New("room slot taken")

// SessionRepo manages persistence for class sessions.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo constructs a SessionRepo with the given DB handle.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

const sessionColumns = `id, class_id, teacher_id, DATE_FORMAT(session_date, '%Y-%m-%d'), shift, room, status, note, deleted_at, created_at, updated_at`

// scanSession reads one sessions row from a row scanner.
func scanSession(scan func(dest ...any) error, s *model.Session) error {
	var deletedAt sql.NullTime
	if err := scan(
		&s.ID, &s.ClassID, &s.TeacherID, &s.Date, &s.Shift,
		&s.Room, &s.Status, &s.Note, &deletedAt, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		s.DeletedAt = &t
	}
	return nil
}

// slotError maps a MySQL duplicate-key failure on one of the slot
// uniqueness keys to its sentinel. Any other error passes through
// unchanged, including network failures, which callers must not
// retry here.
func slotError(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != 1062 {
		return err
	}
	switch {
	case strings.Contains(me.Message, "uq_teacher_slot"):
		return ErrTeacherSlotTaken
	case strings.Contains(me.Message, "uq_room_slot"):
		return ErrRoomSlotTaken
	}
	return ErrConflict
}

// Create inserts a new session and assigns the generated ID and DB
// defaults back to the struct. The slot uniqueness keys fire here
// when a concurrent booking won the race after an advisory check
// passed; that rejection comes back as ErrTeacherSlotTaken or
// ErrRoomSlotTaken and must be surfaced as a conflict, never retried.
func (r *SessionRepo) Create(ctx context.Context, s *model.Session) error {
	const q = `INSERT INTO sessions (class_id, teacher_id, session_date, shift, room, status, note, slot_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?, 1)`
	res, err := r.db.ExecContext(ctx, q, s.ClassID, s.TeacherID, s.Date, s.Shift, s.Room, s.Status, s.Note)
	if err != nil {
		return slotError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	// Fetch the freshly inserted row to populate timestamps and defaults.
	const sel = `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	return scanSession(r.db.QueryRowContext(ctx, sel, s.ID).Scan, s)
}

// GetByID retrieves a session by its ID. It returns ErrSessionNotFound
// when there is no matching row.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.Session, error) {
	const q = `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	var s model.Session
	if err := scanSession(r.db.QueryRowContext(ctx, q, id).Scan, &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// list runs a query returning full session rows and scans them all.
func (r *SessionRepo) list(ctx context.Context, q string, args ...any) ([]model.Session, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Session
	for rows.Next() {
		var s model.Session
		if err := scanSession(rows.Scan, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListByClass returns all non-deleted sessions of a class ordered by
// (date, shift) ascending. Cancelled sessions are included so the
// schedule table can show them struck through; conflict checks skip
// them via Session.Active.
func (r *SessionRepo) ListByClass(ctx context.Context, classID uint64) ([]model.Session, error) {
	const q = `SELECT ` + sessionColumns + ` FROM sessions
	           WHERE class_id = ? AND deleted_at IS NULL
	           ORDER BY session_date ASC, shift ASC`
	return r.list(ctx, q, classID)
}

// ListByTeacherAndDate returns the teacher's non-deleted sessions on
// one civil date. This is the snapshot the availability resolver
// consumes for the shift check.
func (r *SessionRepo) ListByTeacherAndDate(ctx context.Context, teacherID uint64, date string) ([]model.Session, error) {
	const q = `SELECT ` + sessionColumns + ` FROM sessions
	           WHERE teacher_id = ? AND session_date = ? AND deleted_at IS NULL
	           ORDER BY shift ASC`
	return r.list(ctx, q, teacherID, date)
}

// ListByDate returns every non-deleted session on one civil date
// across all classes, the snapshot for the room availability check.
func (r *SessionRepo) ListByDate(ctx context.Context, date string) ([]model.Session, error) {
	const q = `SELECT ` + sessionColumns + ` FROM sessions
	           WHERE session_date = ? AND deleted_at IS NULL
	           ORDER BY shift ASC, room ASC`
	return r.list(ctx, q, date)
}

// SoftDelete marks a session deleted and releases its slot by nulling
// slot_active. The row is kept forever; sessions are never hard
// deleted. Returns ErrSessionNotFound when the row does not exist or
// was already deleted.
func (r *SessionRepo) SoftDelete(ctx context.Context, id uint64) error {
	const q = `UPDATE sessions
	           SET deleted_at = CURRENT_TIMESTAMP, slot_active = NULL, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Restore brings a soft-deleted session back and re-occupies its
// slot. The uniqueness keys fire when the slot was taken in the
// meantime, which surfaces as the usual slot-taken sentinels.
func (r *SessionRepo) Restore(ctx context.Context, id uint64) error {
	const q = `UPDATE sessions
	           SET deleted_at = NULL, slot_active = 1, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return slotError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// UpdateStatus transitions a session's lifecycle status. Cancelling
// releases the slot; the slot fields themselves (date, shift, room)
// are never updated in place — rescheduling is SoftDelete + Create.
func (r *SessionRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	var q string
	if status == model.SessionCancelled {
		q = `UPDATE sessions SET status = ?, slot_active = NULL, updated_at = CURRENT_TIMESTAMP
		     WHERE id = ? AND deleted_at IS NULL`
	} else {
		q = `UPDATE sessions SET status = ?, updated_at = CURRENT_TIMESTAMP
		     WHERE id = ? AND deleted_at IS NULL`
	}
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
