package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/huylq/training-center-api/internal/model"
	"github.com/huylq/training-center-api/internal/repository"
)

// classResponse is the JSON shape of a class row.
type classResponse struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	SubjectName   string `json:"subject_name"`
	TeacherID     uint64 `json:"teacher_id"`
	StartDate     string `json:"start_date"`
	TotalSessions int    `json:"total_sessions"`
	MaxStudents   int    `json:"max_students"`
	Description   string `json:"description"`
}

func toClassResponse(cl *model.Class) classResponse {
	return classResponse{
		ID:            cl.ID,
		Name:          cl.Name,
		SubjectName:   cl.SubjectName,
		TeacherID:     cl.TeacherID,
		StartDate:     cl.StartDate,
		TotalSessions: cl.TotalSessions,
		MaxStudents:   cl.MaxStudents,
		Description:   cl.Description,
	}
}

// ListMyClasses handles GET /v1/classes and returns the classes the
// acting teacher owns. Admins may list another teacher's classes via
// the teacher_id query parameter.
func (h *TeacherHandler) ListMyClasses(c echo.Context) error {
	explicit, _ := strconv.ParseUint(c.QueryParam("teacher_id"), 10, 64)
	teacherID, err := resolveTeacherID(c, explicit)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	classes, err := h.ClassRepo.ListByTeacher(c.Request().Context(), teacherID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load classes"})
	}
	items := make([]classResponse, 0, len(classes))
	for i := range classes {
		items = append(items, toClassResponse(&classes[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// AddClassStudent handles POST /v1/classes/:id/students and enrolls a
// student. Enrollment is forward-looking only: past sessions keep
// whatever records they have and the new student shows NOT_TAKEN for
// them in the matrix.
func (h *TeacherHandler) AddClassStudent(c echo.Context) error {
	classID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid class id"})
	}
	var body struct {
		StudentID uint64 `json:"student_id"`
	}
	if err := c.Bind(&body); err != nil || body.StudentID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "student_id is required"})
	}
	if !h.requireClassOwner(c, classID) {
		return nil
	}
	if err := h.ClassRepo.AddStudent(c.Request().Context(), classID, body.StudentID); err != nil {
		switch {
		case errors.Is(err, repository.ErrClassNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "class not found"})
		case errors.Is(err, repository.ErrClassFull):
			return c.JSON(http.StatusConflict, map[string]string{"error": "class is full"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "enrollment failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveClassStudent handles DELETE /v1/classes/:id/students/:studentID.
// The student's saved attendance stays; removal only affects future
// rosters.
func (h *TeacherHandler) RemoveClassStudent(c echo.Context) error {
	classID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid class id"})
	}
	studentID, err := strconv.ParseUint(c.Param("studentID"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid student id"})
	}
	if !h.requireClassOwner(c, classID) {
		return nil
	}
	if err := h.ClassRepo.RemoveStudent(c.Request().Context(), classID, studentID); err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "student not enrolled"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "removal failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListRooms handles GET /v1/rooms and returns the active rooms the
// scheduling form offers.
func (h *TeacherHandler) ListRooms(c echo.Context) error {
	rooms, err := h.RoomRepo.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load rooms"})
	}
	items := make([]map[string]any, 0, len(rooms))
	for _, r := range rooms {
		items = append(items, map[string]any{
			"id":       r.ID,
			"name":     r.Name,
			"capacity": r.Capacity,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// CancelSession handles PATCH /v1/sessions/:id/cancel. Unlike a soft
// delete, cancelling keeps the row visible on schedule tables while
// releasing its slot for other bookings.
func (h *TeacherHandler) CancelSession(c echo.Context) error {
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
	if err := h.SessionRepo.UpdateStatus(c.Request().Context(), id, model.SessionCancelled); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "cancel failed"})
	}
	fresh, err := h.SessionRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load session"})
	}
	return c.JSON(http.StatusOK, toSessionResponse(fresh))
}

// requireClassOwner loads a class and verifies the caller owns it or
// is an admin. On failure it writes the error response and returns
// false; callers must stop without writing anything further.
func (h *TeacherHandler) requireClassOwner(c echo.Context, classID uint64) bool {
	cls, err := h.ClassRepo.GetByID(c.Request().Context(), classID)
	if err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			_ = c.JSON(http.StatusNotFound, map[string]string{"error": "class not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load class"})
		}
		return false
	}
	callerID, err := getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return false
	}
	if cls.TeacherID != callerID && getRole(c) != model.RoleAdmin {
		_ = c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		return false
	}
	return true
}
