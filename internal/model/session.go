package model

import (
	"strings"
	"time"
)

// Session statuses as stored in sessions.status.  A cancelled
// session keeps its row but no longer occupies its slot.
const (
	SessionScheduled = "SCHEDULED"
	SessionCompleted = "COMPLETED"
	SessionCancelled = "CANCELLED"
)

// DateLayout is the civil-date format used for sessions.session_date
// and everywhere a calendar date crosses the API.  Sessions carry no
// time of day; the shift ordinal determines the window.
const DateLayout = "2006-01-02"

// Session represents one teaching occasion of a class.  The slot
// triple (Date, Shift, Room) together with the owning teacher is
// what the availability resolver guards; those fields are never
// updated in place — rescheduling is a soft delete followed by a
// new session.
//
// Fields:
//  ID        – primary key identifier.
//  ClassID   – class this session belongs to.
//  TeacherID – owning teacher, denormalized from the class.
//  Date      – civil date in DateLayout format, no time of day.
//  Shift     – daily time window ordinal (1..ShiftCount).
//  Room      – room name, e.g. "A101" or "Online".
//  Status    – SCHEDULED, COMPLETED or CANCELLED.
//  Note      – free-text note shown on schedule tables.
//  DeletedAt – soft-delete timestamp (null while the session is live).
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Session struct {
	ID        uint64     // sessions.id
	ClassID   uint64     // sessions.class_id
	TeacherID uint64     // sessions.teacher_id
	Date      string     // sessions.session_date ("2006-01-02")
	Shift     Shift      // sessions.shift
	Room      string     // sessions.room
	Status    string     // sessions.status
	Note      string     // sessions.note
	DeletedAt *time.Time // sessions.deleted_at (nullable)
	CreatedAt time.Time  // sessions.created_at
	UpdatedAt time.Time  // sessions.updated_at
}

// Active reports whether the session still occupies its slot.  Both
// cancelled and soft-deleted sessions are ignored by conflict checks
// and by the calendar projection.
func (s *Session) Active() bool {
	return s.Status != SessionCancelled && s.DeletedAt == nil
}

// NormalizeSessionStatus maps a raw status string to its canonical
// upper-case form.  The source data compares statuses loosely, so
// normalization happens once here at the boundary; the algorithms
// only ever see canonical values.  The second return is false for
// unknown statuses.
func NormalizeSessionStatus(raw string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case SessionScheduled, "UPCOMING":
		return SessionScheduled, true
	case SessionCompleted:
		return SessionCompleted, true
	case SessionCancelled:
		return SessionCancelled, true
	}
	return "", false
}

// ParseDate parses a civil date in DateLayout.  The returned time is
// midnight UTC; it is only ever used for day arithmetic, never for
// wall-clock comparisons.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}
