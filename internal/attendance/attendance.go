// Package attendance reconciles a class roster, its session list and
// whatever attendance records exist into a complete student×session
// matrix with per-student and per-class statistics.  All functions are
// pure; the caller fetches the snapshot from storage and submits any
// save back as a single per-session upsert.
package attendance

import (
	"fmt"
	"math"

	"github.com/huylq/training-center-api/internal/model"
)

// Risk tiers for a student's attendance rate.
const (
	TierGood    = "GOOD"    // rate >= 80
	TierWarning = "WARNING" // 60 <= rate < 80
	TierDanger  = "DANGER"  // rate < 60
)

// Rate thresholds separating the tiers.
const (
	ThresholdGood    = 80
	ThresholdWarning = 60
)

// Cell is the resolved status for one (student, session) pair.  Pairs
// without a saved record resolve to NOT_TAKEN; the matrix always
// contains exactly |roster|×|sessions| cells.
type Cell struct {
	SessionID uint64
	StudentID uint64
	Status    string
	Note      string
}

// StudentRow is one roster member's reconciled line: resolved status
// per session plus the derived counters the detail view shows.
type StudentRow struct {
	Student  model.StudentRef
	Statuses map[uint64]string // session ID -> resolved status
	Present  int
	Absent   int
	Late     int
	Recorded int // sessions with any saved record for this student
	Rate     int // round(100 * Present / Recorded), 0 when Recorded == 0
	Tier     string
}

// Matrix is the reconciled attendance grid for one class.
type Matrix struct {
	Sessions []model.Session
	Rows     []StudentRow
}

// ClassStats aggregates a matrix for the statistics cards.
// AverageRate is the simple mean of per-student rates, not weighted
// by how many sessions each student has recorded.
type ClassStats struct {
	TotalStudents int     `json:"total_students"`
	AverageRate   float64 `json:"average_rate"`
	BelowWarning  int     `json:"below_warning"`
	Good          int     `json:"good"`
	Warning       int     `json:"warning"`
	Danger        int     `json:"danger"`
}

// recordKey indexes saved records by (session, student) so matrix
// construction stays O(|roster|×|sessions|) with O(1) lookups.
type recordKey struct {
	sessionID uint64
	studentID uint64
}

// TierFor classifies an attendance rate.
func TierFor(rate int) string {
	switch {
	case rate >= ThresholdGood:
		return TierGood
	case rate >= ThresholdWarning:
		return TierWarning
	default:
		return TierDanger
	}
}

// BuildMatrix resolves every (student, session) pair against the
// saved records.  A pair with a record takes the record's status; any
// other pair resolves to NOT_TAKEN.  LATE counts toward the recorded
// denominator but not the present numerator.
func BuildMatrix(roster []model.StudentRef, sessions []model.Session, records []model.AttendanceRecord) Matrix {
	idx := make(map[recordKey]*model.AttendanceRecord, len(records))
	for i := range records {
		r := &records[i]
		idx[recordKey{r.SessionID, r.StudentID}] = r
	}

	rows := make([]StudentRow, 0, len(roster))
	for _, st := range roster {
		row := StudentRow{
			Student:  st,
			Statuses: make(map[uint64]string, len(sessions)),
		}
		for i := range sessions {
			sess := &sessions[i]
			rec, ok := idx[recordKey{sess.ID, st.ID}]
			if !ok {
				row.Statuses[sess.ID] = model.AttendanceNotTaken
				continue
			}
			row.Statuses[sess.ID] = rec.Status
			row.Recorded++
			switch rec.Status {
			case model.AttendancePresent:
				row.Present++
			case model.AttendanceAbsent:
				row.Absent++
			case model.AttendanceLate:
				row.Late++
			}
		}
		if row.Recorded > 0 {
			row.Rate = int(math.Round(100 * float64(row.Present) / float64(row.Recorded)))
		}
		row.Tier = TierFor(row.Rate)
		rows = append(rows, row)
	}
	return Matrix{Sessions: sessions, Rows: rows}
}

// Cells flattens the matrix into its cell set.  Mostly useful for
// exports; the grid view renders Rows directly.
func (m Matrix) Cells() []Cell {
	out := make([]Cell, 0, len(m.Rows)*len(m.Sessions))
	for _, row := range m.Rows {
		for i := range m.Sessions {
			sess := &m.Sessions[i]
			out = append(out, Cell{
				SessionID: sess.ID,
				StudentID: row.Student.ID,
				Status:    row.Statuses[sess.ID],
			})
		}
	}
	return out
}

// Stats aggregates the matrix into class-level statistics.
func Stats(m Matrix) ClassStats {
	st := ClassStats{TotalStudents: len(m.Rows)}
	if len(m.Rows) == 0 {
		return st
	}
	sum := 0
	for _, row := range m.Rows {
		sum += row.Rate
		switch row.Tier {
		case TierGood:
			st.Good++
		case TierWarning:
			st.Warning++
		default:
			st.Danger++
		}
		if row.Rate < ThresholdWarning {
			st.BelowWarning++
		}
	}
	st.AverageRate = math.Round(100*float64(sum)/float64(len(m.Rows))) / 100
	return st
}

// PendingSessions returns the sessions still in the NO_RECORD state,
// i.e. active sessions with no attendance saved yet.  Once any save
// occurs the session is RECORDED permanently and drops out of this
// list; re-saves amend the recorded set but never bring it back.
func PendingSessions(sessions []model.Session, records []model.AttendanceRecord) []model.Session {
	recorded := make(map[uint64]bool, len(records))
	for i := range records {
		recorded[records[i].SessionID] = true
	}
	out := make([]model.Session, 0, len(sessions))
	for i := range sessions {
		s := sessions[i]
		if s.Active() && !recorded[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

// Edit is one student's mark in a whole-session save.
type Edit struct {
	StudentID uint64
	Status    string
	Note      string
}

// ValidationError reports a malformed save: an edit set that does not
// cover the roster exactly once, or a status outside the persistable
// set.  The save has no partial effect.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid attendance save: " + e.Reason }

// ValidateSave checks that edits cover every roster member exactly
// once and carry persistable statuses, and returns the record set for
// one atomic per-session upsert.  Students no longer on the roster
// are rejected; students removed after an earlier save keep their
// historical records untouched.
func ValidateSave(sessionID uint64, roster []model.StudentRef, edits []Edit) ([]model.AttendanceRecord, error) {
	onRoster := make(map[uint64]bool, len(roster))
	for _, st := range roster {
		onRoster[st.ID] = true
	}

	seen := make(map[uint64]bool, len(edits))
	out := make([]model.AttendanceRecord, 0, len(edits))
	for _, e := range edits {
		if !onRoster[e.StudentID] {
			return nil, &ValidationError{Reason: fmt.Sprintf("student %d is not on the roster", e.StudentID)}
		}
		if seen[e.StudentID] {
			return nil, &ValidationError{Reason: fmt.Sprintf("student %d appears more than once", e.StudentID)}
		}
		seen[e.StudentID] = true
		status, ok := model.NormalizeAttendanceStatus(e.Status)
		if !ok {
			return nil, &ValidationError{Reason: fmt.Sprintf("status %q is not persistable", e.Status)}
		}
		out = append(out, model.AttendanceRecord{
			SessionID: sessionID,
			StudentID: e.StudentID,
			Status:    status,
			Note:      e.Note,
		})
	}
	for _, st := range roster {
		if !seen[st.ID] {
			return nil, &ValidationError{Reason: fmt.Sprintf("student %d is missing from the save", st.ID)}
		}
	}
	return out, nil
}
