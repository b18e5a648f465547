package repository

import (
	"context"
	"database/sql"

	"github.com/huylq/training-center-api/internal/calendar"
)

// CalendarRepo loads the denormalized session entries the calendar
// projection works over. It joins sessions with their class, subject
// and teacher so the grid builder can filter on display names without
// further lookups. Only active sessions appear on calendars; cancelled
// and soft-deleted rows are filtered here at the boundary.
type CalendarRepo struct {
	db *sql.DB
}

// NewCalendarRepo constructs a CalendarRepo with the given DB handle.
func NewCalendarRepo(db *sql.DB) *CalendarRepo {
	return &CalendarRepo{db: db}
}

const entrySelect = `SELECT s.id, s.class_id, c.name, sub.name, u.full_name,
	       s.room, DATE_FORMAT(s.session_date, '%Y-%m-%d'), s.shift
	FROM sessions s
	JOIN classes c  ON c.id = s.class_id
	JOIN subjects sub ON sub.id = c.subject_id
	JOIN users u    ON u.id = s.teacher_id
	WHERE s.deleted_at IS NULL AND s.status <> 'CANCELLED'`

// listEntries runs an entry query and scans all rows.
func (r *CalendarRepo) listEntries(ctx context.Context, q string, args ...any) ([]calendar.Entry, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []calendar.Entry
	for rows.Next() {
		var e calendar.Entry
		if err := rows.Scan(
			&e.SessionID, &e.ClassID, &e.ClassName, &e.SubjectName,
			&e.TeacherName, &e.Room, &e.Date, &e.Shift,
		); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListForStudent returns the calendar entries of every class the
// student is enrolled in, within [from, to] civil dates inclusive.
func (r *CalendarRepo) ListForStudent(ctx context.Context, studentID uint64, from, to string) ([]calendar.Entry, error) {
	const q = entrySelect + `
	  AND s.class_id IN (SELECT cs.class_id FROM class_students cs WHERE cs.student_id = ?)
	  AND s.session_date BETWEEN ? AND ?
	ORDER BY s.session_date ASC, s.shift ASC`
	return r.listEntries(ctx, q, studentID, from, to)
}

// ListForTeacher returns the calendar entries of the teacher's own
// sessions within [from, to] civil dates inclusive.
func (r *CalendarRepo) ListForTeacher(ctx context.Context, teacherID uint64, from, to string) ([]calendar.Entry, error) {
	const q = entrySelect + `
	  AND s.teacher_id = ?
	  AND s.session_date BETWEEN ? AND ?
	ORDER BY s.session_date ASC, s.shift ASC`
	return r.listEntries(ctx, q, teacherID, from, to)
}
