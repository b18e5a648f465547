package scheduler

import (
	"strings"

	"github.com/huylq/training-center-api/internal/model"
)

// Priority selects which invariant RequestSession checks before
// approving a booking.  Under TeacherFirst the room is accepted as
// given and room clashes are left to the storage uniqueness key;
// under RoomFirst the room must be free in the requested slot.
type Priority string

const (
	TeacherFirst Priority = "TEACHER_FIRST"
	RoomFirst    Priority = "ROOM_FIRST"
)

// Request carries everything needed to book one session.
// ExcludeSessionID is set when re-requesting a slot during an edit so
// the session does not conflict with itself; zero means no exclusion.
type Request struct {
	ClassID          uint64
	TeacherID        uint64
	Date             string // civil date, model.DateLayout
	Shift            model.Shift
	Room             string
	Priority         Priority
	ExcludeSessionID uint64
}

// counts reports whether an existing session occupies a slot from the
// perspective of a request.  Cancelled and soft-deleted sessions never
// count, and neither does the session being edited.
func counts(s *model.Session, excludeID uint64) bool {
	if !s.Active() {
		return false
	}
	return excludeID == 0 || s.ID != excludeID
}

// AvailableShiftsForTeacher returns every shift on the given date for
// which the teacher has no active session.  It is a pure function of
// its inputs; the caller supplies the current session snapshot.
func AvailableShiftsForTeacher(teacherID uint64, date string, existing []model.Session) []model.Shift {
	taken := make(map[model.Shift]bool, model.ShiftCount)
	for i := range existing {
		s := &existing[i]
		if counts(s, 0) && s.TeacherID == teacherID && s.Date == date {
			taken[s.Shift] = true
		}
	}
	free := make([]model.Shift, 0, model.ShiftCount)
	for _, sh := range model.AllShifts() {
		if !taken[sh] {
			free = append(free, sh)
		}
	}
	return free
}

// AvailableRoomsForSlot returns every room in allRooms not occupied by
// an active session at the given date and shift.  Room names compare
// case-insensitively to match the storage collation.
func AvailableRoomsForSlot(date string, shift model.Shift, existing []model.Session, allRooms []string) []string {
	taken := make(map[string]bool, len(existing))
	for i := range existing {
		s := &existing[i]
		if counts(s, 0) && s.Date == date && s.Shift == shift {
			taken[strings.ToLower(s.Room)] = true
		}
	}
	free := make([]string, 0, len(allRooms))
	for _, r := range allRooms {
		if !taken[strings.ToLower(r)] {
			free = append(free, r)
		}
	}
	return free
}

// RequestSession validates a booking against the supplied session
// snapshot and, when the slot is clear under the requested priority,
// returns the session value to persist.  The returned session is not
// durable: the caller must still submit it to storage, whose unique
// keys decide races this advisory check cannot see.
func RequestSession(req Request, existing []model.Session) (model.Session, error) {
	if err := validate(req); err != nil {
		return model.Session{}, err
	}
	switch req.Priority {
	case TeacherFirst:
		if c := teacherConflict(req, existing); c != nil {
			return model.Session{}, c
		}
	case RoomFirst:
		if c := roomConflict(req, existing); c != nil {
			return model.Session{}, c
		}
	}
	return model.Session{
		ClassID:   req.ClassID,
		TeacherID: req.TeacherID,
		Date:      req.Date,
		Shift:     req.Shift,
		Room:      req.Room,
		Status:    model.SessionScheduled,
	}, nil
}

// validate rejects structurally bad requests before any conflict
// scan.  Surfacing these as ValidationError keeps "please fill all
// fields" distinguishable from "slot taken" in the UI.
func validate(req Request) error {
	if req.ClassID == 0 {
		return &ValidationError{Field: "class_id", Reason: "required"}
	}
	if req.TeacherID == 0 {
		return &ValidationError{Field: "teacher_id", Reason: "required"}
	}
	if _, err := model.ParseDate(req.Date); err != nil {
		return &ValidationError{Field: "date", Reason: "must be a YYYY-MM-DD civil date"}
	}
	if !req.Shift.Valid() {
		return &ValidationError{Field: "shift", Reason: "undefined shift ordinal"}
	}
	if strings.TrimSpace(req.Room) == "" {
		return &ValidationError{Field: "room", Reason: "required"}
	}
	switch req.Priority {
	case TeacherFirst, RoomFirst:
	default:
		return &ValidationError{Field: "priority", Reason: "must be TEACHER_FIRST or ROOM_FIRST"}
	}
	return nil
}

// teacherConflict finds an active session of the same teacher in the
// same slot.  The first hit wins.
func teacherConflict(req Request, existing []model.Session) *ConflictError {
	for i := range existing {
		s := &existing[i]
		if counts(s, req.ExcludeSessionID) && s.TeacherID == req.TeacherID &&
			s.Date == req.Date && s.Shift == req.Shift {
			return &ConflictError{Kind: ConflictTeacher, SessionID: s.ID}
		}
	}
	return nil
}

// roomConflict finds an active session occupying the same room in the
// same slot.
func roomConflict(req Request, existing []model.Session) *ConflictError {
	for i := range existing {
		s := &existing[i]
		if counts(s, req.ExcludeSessionID) && strings.EqualFold(s.Room, req.Room) &&
			s.Date == req.Date && s.Shift == req.Shift {
			return &ConflictError{Kind: ConflictRoom, SessionID: s.ID}
		}
	}
	return nil
}
