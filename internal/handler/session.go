package handler // handler package contains scheduling handlers for sessions

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/huylq/training-center-api/internal/model"
	"github.com/huylq/training-center-api/internal/repository"
	"github.com/huylq/training-center-api/internal/scheduler"
)

// sessionResponse is the JSON shape of a session returned by the API.
// The model structs carry no json tags by design; handlers own the
// wire format.
type sessionResponse struct {
	ID        uint64 `json:"id"`
	ClassID   uint64 `json:"class_id"`
	TeacherID uint64 `json:"teacher_id"`
	Date      string `json:"date"`
	Shift     uint8  `json:"shift"`
	ShiftTime string `json:"shift_time"`
	Room      string `json:"room"`
	Status    string `json:"status"`
	Note      string `json:"note"`
	CreatedAt string `json:"created_at"`
}

func toSessionResponse(s *model.Session) sessionResponse {
	return sessionResponse{
		ID:        s.ID,
		ClassID:   s.ClassID,
		TeacherID: s.TeacherID,
		Date:      s.Date,
		Shift:     uint8(s.Shift),
		ShiftTime: s.Shift.TimeRange(),
		Room:      s.Room,
		Status:    s.Status,
		Note:      s.Note,
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// resolveTeacherID decides whose schedule an operation targets. A
// teacher always acts on their own schedule; an admin may act on any
// teacher by supplying an explicit ID.
func resolveTeacherID(c echo.Context, explicit uint64) (uint64, error) {
	callerID, err := getUserID(c)
	if err != nil {
		return 0, err
	}
	if getRole(c) == model.RoleAdmin && explicit != 0 {
		return explicit, nil
	}
	return callerID, nil
}

// AvailableShifts handles GET /v1/availability/shifts?teacher_id=&date= and
// returns the shifts still free for the teacher on that date.
func (h *TeacherHandler) AvailableShifts(c echo.Context) error {
	explicit, _ := strconv.ParseUint(c.QueryParam("teacher_id"), 10, 64)
	teacherID, err := resolveTeacherID(c, explicit)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	date := strings.TrimSpace(c.QueryParam("date"))
	if _, err := model.ParseDate(date); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
	}
	existing, err := h.SessionRepo.ListByTeacherAndDate(c.Request().Context(), teacherID, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load sessions"})
	}
	free := scheduler.AvailableShiftsForTeacher(teacherID, date, existing)
	shifts := make([]map[string]any, 0, len(free))
	for _, sh := range free {
		shifts = append(shifts, map[string]any{"shift": uint8(sh), "time": sh.TimeRange()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"teacher_id": teacherID,
		"date":       date,
		"shifts":     shifts,
	})
}

// AvailableRooms handles GET /v1/availability/rooms?date=&shift= and
// returns the active rooms not occupied at that date+shift.
func (h *TeacherHandler) AvailableRooms(c echo.Context) error {
	date := strings.TrimSpace(c.QueryParam("date"))
	if _, err := model.ParseDate(date); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
	}
	shiftNum, err := strconv.ParseUint(c.QueryParam("shift"), 10, 8)
	shift := model.Shift(shiftNum)
	if err != nil || !shift.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid shift"})
	}
	existing, err := h.SessionRepo.ListByDate(c.Request().Context(), date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load sessions"})
	}
	allRooms, err := h.RoomRepo.ActiveNames(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load rooms"})
	}
	free := scheduler.AvailableRoomsForSlot(date, shift, existing, allRooms)
	return c.JSON(http.StatusOK, map[string]any{
		"date":  date,
		"shift": uint8(shift),
		"rooms": free,
	})
}

// CreateSession handles POST /v1/sessions. It runs the advisory
// availability check under the requested priority and, when clear,
// persists the session. The storage uniqueness keys remain the final
// authority: a duplicate-key rejection after a clean check is the
// expected outcome of a race and comes back as the same 409 kind.
func (h *TeacherHandler) CreateSession(c echo.Context) error {
	var body struct {
		ClassID          uint64 `json:"class_id"`           // class the session belongs to
		TeacherID        uint64 `json:"teacher_id"`         // optional explicit teacher (admin only)
		Date             string `json:"date"`               // civil date YYYY-MM-DD
		Shift            uint8  `json:"shift"`              // daily window ordinal
		Room             string `json:"room"`               // room name
		Priority         string `json:"priority"`           // TEACHER_FIRST or ROOM_FIRST
		Note             string `json:"note"`               // optional note
		ExcludeSessionID uint64 `json:"exclude_session_id"` // set when re-requesting during an edit
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	teacherID, err := resolveTeacherID(c, body.TeacherID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	// Verify the class exists and is owned by the acting teacher.
	cls, err := h.ClassRepo.GetByID(c.Request().Context(), body.ClassID)
	if err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "class not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load class"})
	}
	if cls.TeacherID != teacherID && getRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
	}

	priority := scheduler.Priority(strings.ToUpper(strings.TrimSpace(body.Priority)))
	if priority == "" {
		priority = scheduler.TeacherFirst
	}
	req := scheduler.Request{
		ClassID:          body.ClassID,
		TeacherID:        cls.TeacherID,
		Date:             strings.TrimSpace(body.Date),
		Shift:            model.Shift(body.Shift),
		Room:             strings.TrimSpace(body.Room),
		Priority:         priority,
		ExcludeSessionID: body.ExcludeSessionID,
	}
	if _, err := model.ParseDate(req.Date); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
	}
	// One snapshot of the date covers both the teacher and the room check.
	existing, err := h.SessionRepo.ListByDate(c.Request().Context(), req.Date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load sessions"})
	}
	sess, err := scheduler.RequestSession(req, existing)
	if err != nil {
		var conflict *scheduler.ConflictError
		if errors.As(err, &conflict) {
			return c.JSON(http.StatusConflict, map[string]any{
				"error":               "slot taken",
				"kind":                conflict.Kind,
				"conflict_session_id": conflict.SessionID,
			})
		}
		var invalid *scheduler.ValidationError
		if errors.As(err, &invalid) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": invalid.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "availability check failed"})
	}
	sess.Note = strings.TrimSpace(body.Note)

	if err := h.SessionRepo.Create(c.Request().Context(), &sess); err != nil {
		switch {
		case errors.Is(err, repository.ErrTeacherSlotTaken):
			return c.JSON(http.StatusConflict, map[string]any{"error": "slot taken", "kind": scheduler.ConflictTeacher})
		case errors.Is(err, repository.ErrRoomSlotTaken):
			return c.JSON(http.StatusConflict, map[string]any{"error": "slot taken", "kind": scheduler.ConflictRoom})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create session"})
	}
	return c.JSON(http.StatusCreated, toSessionResponse(&sess))
}

// ListClassSessions handles GET /v1/classes/:id/sessions and returns
// the schedule table of one class.
func (h *TeacherHandler) ListClassSessions(c echo.Context) error {
	classID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid class id"})
	}
	if _, err := h.ClassRepo.GetByID(c.Request().Context(), classID); err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "class not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load class"})
	}
	sessions, err := h.SessionRepo.ListByClass(c.Request().Context(), classID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load sessions"})
	}
	items := make([]sessionResponse, 0, len(sessions))
	for i := range sessions {
		items = append(items, toSessionResponse(&sessions[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// DeleteSession handles DELETE /v1/sessions/:id and soft-deletes a
// session, releasing its slot. Sessions with saved attendance cannot
// be deleted; rescheduling only applies to sessions not yet held.
func (h *TeacherHandler) DeleteSession(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	sess, err := h.SessionRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load session"})
	}
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	if sess.TeacherID != callerID && getRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
	}
	records, err := h.AttendanceRepo.ListBySession(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to check attendance"})
	}
	if len(records) > 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "session already has attendance saved"})
	}
	if err := h.SessionRepo.SoftDelete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// RestoreSession handles PATCH /v1/sessions/:id/restore and brings a
// soft-deleted session back, provided its slot is still free.
func (h *TeacherHandler) RestoreSession(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.SessionRepo.Restore(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrSessionNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
		case errors.Is(err, repository.ErrTeacherSlotTaken):
			return c.JSON(http.StatusConflict, map[string]any{"error": "slot taken", "kind": scheduler.ConflictTeacher})
		case errors.Is(err, repository.ErrRoomSlotTaken):
			return c.JSON(http.StatusConflict, map[string]any{"error": "slot taken", "kind": scheduler.ConflictRoom})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "restore failed"})
	}
	fresh, err := h.SessionRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load session"})
	}
	return c.JSON(http.StatusOK, toSessionResponse(fresh))
}
