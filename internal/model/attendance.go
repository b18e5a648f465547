package model

import (
	"strings"
	"time"
)

// Attendance statuses.  PRESENT, ABSENT and LATE are the only values
// ever written to the attendance table.  NOT_TAKEN is derived: it is
// the resolved status of a roster member for a session that has no
// saved record, and exists only in reconciliation output.
const (
	AttendancePresent  = "PRESENT"
	AttendanceAbsent   = "ABSENT"
	AttendanceLate     = "LATE"
	AttendanceNotTaken = "NOT_TAKEN"
)

// AttendanceRecord is one saved (session, student) attendance mark
// as stored in the `attendance` table.  Records are written only
// through the whole-session upsert; a session either has a record
// for every roster member of its save or none at all.
//
// Fields:
//  ID        – primary key identifier.
//  SessionID – session the mark belongs to.
//  StudentID – student the mark belongs to.
//  Status    – PRESENT, ABSENT or LATE.
//  Note      – optional free-text note ("came in 15 min late").
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update (re-saves amend in place).
type AttendanceRecord struct {
	ID        uint64    // attendance.id
	SessionID uint64    // attendance.session_id
	StudentID uint64    // attendance.student_id
	Status    string    // attendance.status
	Note      string    // attendance.note
	CreatedAt time.Time // attendance.created_at
	UpdatedAt time.Time // attendance.updated_at
}

// NormalizeAttendanceStatus maps a raw status to its canonical form.
// Only the three persistable statuses are accepted; NOT_TAKEN is
// rejected because it must never be written to storage.
func NormalizeAttendanceStatus(raw string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case AttendancePresent:
		return AttendancePresent, true
	case AttendanceAbsent:
		return AttendanceAbsent, true
	case AttendanceLate:
		return AttendanceLate, true
	}
	return "", false
}
