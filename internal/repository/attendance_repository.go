package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/huylq/training-center-api/internal/model"
)

// AttendanceRepo manages persistence for attendance records. Records
// are keyed by (session_id, student_id) with a UNIQUE key, and only
// ever written through UpsertSession, which applies a whole roster in
// one transaction: a partial save is treated as a total failure and
// rolled back, never reconciled.
type AttendanceRepo struct {
	db *sql.DB
}

// NewAttendanceRepo constructs an AttendanceRepo with the given DB handle.
func NewAttendanceRepo(db *sql.DB) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

const attendanceColumns = `id, session_id, student_id, status, note, created_at, updated_at`

// list runs a query returning attendance rows and scans them all.
func (r *AttendanceRepo) list(ctx context.Context, q string, args ...any) ([]model.AttendanceRecord, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.AttendanceRecord
	for rows.Next() {
		var rec model.AttendanceRecord
		if err := rows.Scan(
			&rec.ID, &rec.SessionID, &rec.StudentID, &rec.Status,
			&rec.Note, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListBySession returns all saved records of one session.
func (r *AttendanceRepo) ListBySession(ctx context.Context, sessionID uint64) ([]model.AttendanceRecord, error) {
	const q = `SELECT ` + attendanceColumns + ` FROM attendance
	           WHERE session_id = ? ORDER BY student_id ASC`
	return r.list(ctx, q, sessionID)
}

// ListByClass returns every record of every session of a class, the
// snapshot the reconciliation engine consumes for its matrix.
func (r *AttendanceRepo) ListByClass(ctx context.Context, classID uint64) ([]model.AttendanceRecord, error) {
	const q = `SELECT a.id, a.session_id, a.student_id, a.status, a.note, a.created_at, a.updated_at
	           FROM attendance a
	           JOIN sessions s ON s.id = a.session_id
	           WHERE s.class_id = ? AND s.deleted_at IS NULL
	           ORDER BY a.session_id ASC, a.student_id ASC`
	return r.list(ctx, q, classID)
}

// UpsertSession writes one session's whole record set atomically.
// Existing (session, student) rows are amended in place, new ones
// inserted, all inside a single transaction so that a mid-write
// failure leaves no partial state. Passing an empty slice is a no-op.
func (r *AttendanceRepo) UpsertSession(ctx context.Context, sessionID uint64, records []model.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var b strings.Builder
	b.WriteString(`INSERT INTO attendance (session_id, student_id, status, note) VALUES `)
	args := make([]any, 0, len(records)*4)
	for i, rec := range records {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?, ?, ?, ?)")
		args = append(args, sessionID, rec.StudentID, rec.Status, rec.Note)
	}
	b.WriteString(` ON DUPLICATE KEY UPDATE status = VALUES(status), note = VALUES(note), updated_at = CURRENT_TIMESTAMP`)
	if _, err = tx.ExecContext(ctx, b.String(), args...); err != nil {
		return err
	}
	// Once a session has any record it is RECORDED; mark it completed
	// so the pending-session list and schedule tables agree.
	if _, err = tx.ExecContext(ctx,
		`UPDATE sessions SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`,
		model.SessionCompleted, sessionID, model.SessionScheduled,
	); err != nil {
		return err
	}
	return nil
}
