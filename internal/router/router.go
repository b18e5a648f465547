package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/huylq/training-center-api/internal/handler"    // import the handlers that implement business logic
	"github.com/huylq/training-center-api/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/huylq/training-center-api/internal/model"      // import model for the role constants
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterScheduling registers the session scheduling and attendance
// endpoints.  All of them require a valid access token; the write
// operations are restricted to teachers and admins, while the read-only
// attendance views are open to every authenticated role so students can
// review their own record.
func RegisterScheduling(e *echo.Echo, t *handler.TeacherHandler, jwtSecret string) {
	// Everything under /v1 requires a valid access token.  The JWTAuth
	// middleware validates the signature and injects user_id and role
	// into the context for the handlers below.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))

	// Availability probes answer "where can this session go" before a
	// create is attempted.  The answers are advisory; the database keys
	// remain the authority at insert time.
	avail := auth.Group("/availability")
	avail.Use(middleware.RequireRole(model.RoleTeacher, model.RoleAdmin))
	avail.GET("/shifts", t.AvailableShifts)
	avail.GET("/rooms", t.AvailableRooms)

	// Session lifecycle: create, list, soft-delete, restore.
	sessions := auth.Group("/sessions")
	sessions.Use(middleware.RequireRole(model.RoleTeacher, model.RoleAdmin))
	sessions.POST("", t.CreateSession)
	sessions.DELETE("/:id", t.DeleteSession)
	sessions.PATCH("/:id/restore", t.RestoreSession)
	sessions.PATCH("/:id/cancel", t.CancelSession)
	sessions.POST("/:id/attendance", t.SaveAttendance)

	// Scheduling support data.
	auth.GET("/rooms", t.ListRooms, middleware.RequireRole(model.RoleTeacher, model.RoleAdmin))

	// Class-scoped reads.  Students may view the reconciled matrix of
	// their own classes; the handlers enforce ownership where needed.
	classes := auth.Group("/classes")
	classes.Use(middleware.RequireRole(model.RoleTeacher, model.RoleAdmin, model.RoleStudent))
	classes.GET("/:id/sessions", t.ListClassSessions)
	classes.GET("/:id/attendance", t.GetClassAttendance)
	classes.GET("/:id/attendance/pending", t.GetPendingSessions)

	// Class and roster management is write-restricted.
	manage := auth.Group("/classes")
	manage.Use(middleware.RequireRole(model.RoleTeacher, model.RoleAdmin))
	manage.GET("", t.ListMyClasses)
	manage.POST("/:id/students", t.AddClassStudent)
	manage.DELETE("/:id/students/:studentID", t.RemoveClassStudent)
}

// RegisterProfile registers the caller-identity endpoint available to
// every authenticated role.
func RegisterProfile(e *echo.Echo, p *handler.ProfileHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleTeacher, model.RoleAdmin, model.RoleStudent))
	g.GET("/me", p.Me)
}

// RegisterCalendar registers the week grid and month listing views.
// Every authenticated role gets a calendar; the handler scopes the
// entries to the caller.
func RegisterCalendar(e *echo.Echo, cal *handler.CalendarHandler, jwtSecret string) {
	g := e.Group("/v1/calendar")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleTeacher, model.RoleAdmin, model.RoleStudent))
	g.GET("/week", cal.GetWeek)
	g.GET("/month", cal.GetMonth)
}
