package handler // handler defines http handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/huylq/training-center-api/internal/repository"
)

// ProfileHandler serves the authenticated caller's own record.
type ProfileHandler struct {
	UserRepo *repository.UserRepo // UserRepo resolves user records
}

// NewProfileHandler constructs a ProfileHandler and panics on a nil dependency.
func NewProfileHandler(userRepo *repository.UserRepo) *ProfileHandler {
	if userRepo == nil {
		panic("nil repository passed to NewProfileHandler")
	}
	return &ProfileHandler{UserRepo: userRepo}
}

// Me handles GET /v1/me and returns the caller's user record as known
// to this service. The token is already validated; a missing row means
// the auth service knows a user this database has not synced yet.
func (h *ProfileHandler) Me(c echo.Context) error {
	id, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	u, err := h.UserRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load user"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"id":        u.ID,
		"username":  u.Username,
		"full_name": u.FullName,
		"email":     u.Email,
		"role":      u.Role,
		"is_active": u.IsActive,
	})
}
