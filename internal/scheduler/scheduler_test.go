package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huylq/training-center-api/internal/model"
)

func session(id, teacherID uint64, date string, shift model.Shift, room, status string) model.Session {
	return model.Session{
		ID:        id,
		ClassID:   1,
		TeacherID: teacherID,
		Date:      date,
		Shift:     shift,
		Room:      room,
		Status:    status,
	}
}

func TestAvailableShiftsForTeacher(t *testing.T) {
	existing := []model.Session{
		session(1, 7, "2025-09-03", model.Shift2, "P201", model.SessionScheduled),
		session(2, 7, "2025-09-03", model.Shift5, "P202", model.SessionCompleted),
		session(3, 7, "2025-09-03", model.Shift3, "P203", model.SessionCancelled), // cancelled frees the slot
		session(4, 9, "2025-09-03", model.Shift1, "P204", model.SessionScheduled), // different teacher
		session(5, 7, "2025-09-04", model.Shift1, "P205", model.SessionScheduled), // different date
	}

	free := AvailableShiftsForTeacher(7, "2025-09-03", existing)
	assert.Equal(t, []model.Shift{model.Shift1, model.Shift3, model.Shift4, model.Shift6}, free)
}

func TestAvailableShiftsForTeacherIgnoresSoftDeleted(t *testing.T) {
	deleted := session(1, 7, "2025-09-03", model.Shift2, "P201", model.SessionScheduled)
	now := deleted.CreatedAt
	deleted.DeletedAt = &now

	free := AvailableShiftsForTeacher(7, "2025-09-03", []model.Session{deleted})
	assert.Len(t, free, model.ShiftCount)
}

func TestAvailableRoomsForSlot(t *testing.T) {
	existing := []model.Session{
		session(1, 7, "2025-09-03", model.Shift3, "P201", model.SessionScheduled),
		session(2, 8, "2025-09-03", model.Shift3, "p202", model.SessionScheduled), // lowercase in storage
		session(3, 9, "2025-09-03", model.Shift3, "P203", model.SessionCancelled),
		session(4, 9, "2025-09-03", model.Shift4, "P204", model.SessionScheduled), // other shift
	}
	rooms := []string{"P201", "P202", "P203", "P204", "Lab A"}

	free := AvailableRoomsForSlot("2025-09-03", model.Shift3, existing, rooms)
	assert.Equal(t, []string{"P203", "P204", "Lab A"}, free)
}

func TestRequestSessionTeacherFirst(t *testing.T) {
	existing := []model.Session{
		session(10, 7, "2025-09-03", model.Shift3, "P201", model.SessionScheduled),
	}

	// Same teacher, same slot: rejected with the blocking session ID.
	_, err := RequestSession(Request{
		ClassID: 1, TeacherID: 7, Date: "2025-09-03", Shift: model.Shift3,
		Room: "P202", Priority: TeacherFirst,
	}, existing)
	var conflict *ConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, ConflictTeacher, conflict.Kind)
	assert.Equal(t, uint64(10), conflict.SessionID)

	// Same room, same slot, different teacher: TeacherFirst does not
	// check rooms, the storage key is left to decide.
	got, err := RequestSession(Request{
		ClassID: 1, TeacherID: 8, Date: "2025-09-03", Shift: model.Shift3,
		Room: "P201", Priority: TeacherFirst,
	}, existing)
	assert.NoError(t, err)
	assert.Equal(t, model.SessionScheduled, got.Status)
	assert.Equal(t, uint64(8), got.TeacherID)
}

func TestRequestSessionRoomFirst(t *testing.T) {
	existing := []model.Session{
		session(10, 7, "2025-09-03", model.Shift3, "P201", model.SessionScheduled),
	}

	_, err := RequestSession(Request{
		ClassID: 1, TeacherID: 8, Date: "2025-09-03", Shift: model.Shift3,
		Room: "p201", Priority: RoomFirst, // case differs, still the same room
	}, existing)
	var conflict *ConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, ConflictRoom, conflict.Kind)

	// A free room in the same slot passes.
	_, err = RequestSession(Request{
		ClassID: 1, TeacherID: 8, Date: "2025-09-03", Shift: model.Shift3,
		Room: "P202", Priority: RoomFirst,
	}, existing)
	assert.NoError(t, err)
}

func TestRequestSessionExcludesSelfDuringEdit(t *testing.T) {
	existing := []model.Session{
		session(10, 7, "2025-09-03", model.Shift3, "P201", model.SessionScheduled),
	}

	// Re-requesting the same slot while editing session 10 must not
	// conflict with session 10 itself.
	_, err := RequestSession(Request{
		ClassID: 1, TeacherID: 7, Date: "2025-09-03", Shift: model.Shift3,
		Room: "P201", Priority: TeacherFirst, ExcludeSessionID: 10,
	}, existing)
	assert.NoError(t, err)

	_, err = RequestSession(Request{
		ClassID: 1, TeacherID: 7, Date: "2025-09-03", Shift: model.Shift3,
		Room: "P201", Priority: RoomFirst, ExcludeSessionID: 10,
	}, existing)
	assert.NoError(t, err)
}

func TestRequestSessionIgnoresCancelled(t *testing.T) {
	existing := []model.Session{
		session(10, 7, "2025-09-03", model.Shift3, "P201", model.SessionCancelled),
	}

	_, err := RequestSession(Request{
		ClassID: 1, TeacherID: 7, Date: "2025-09-03", Shift: model.Shift3,
		Room: "P201", Priority: TeacherFirst,
	}, existing)
	assert.NoError(t, err)
}

func TestRequestSessionValidation(t *testing.T) {
	valid := Request{
		ClassID: 1, TeacherID: 7, Date: "2025-09-03", Shift: model.Shift3,
		Room: "P201", Priority: TeacherFirst,
	}

	cases := []struct {
		name   string
		mutate func(r *Request)
		field  string
	}{
		{"missing class", func(r *Request) { r.ClassID = 0 }, "class_id"},
		{"missing teacher", func(r *Request) { r.TeacherID = 0 }, "teacher_id"},
		{"bad date", func(r *Request) { r.Date = "03/09/2025" }, "date"},
		{"zero shift", func(r *Request) { r.Shift = 0 }, "shift"},
		{"shift out of range", func(r *Request) { r.Shift = model.Shift(9) }, "shift"},
		{"blank room", func(r *Request) { r.Room = "   " }, "room"},
		{"unknown priority", func(r *Request) { r.Priority = "ROOM_ONLY" }, "priority"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			_, err := RequestSession(req, nil)
			var invalid *ValidationError
			assert.True(t, errors.As(err, &invalid))
			assert.Equal(t, tc.field, invalid.Field)
		})
	}
}
