package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // godotenv loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/huylq/training-center-api/internal/config"     // Internal config loader
	"github.com/huylq/training-center-api/internal/database"   // MySQL connection helper
	"github.com/huylq/training-center-api/internal/handler"    // HTTP handlers
	"github.com/huylq/training-center-api/internal/middleware" // Cache and rate-limit middleware
	"github.com/huylq/training-center-api/internal/queue"      // Attendance event consumer
	"github.com/huylq/training-center-api/internal/repository" // Data access layer
	"github.com/huylq/training-center-api/internal/router"     // Route registration
)

func main() {
	// Load .env when present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and the rate limiter.  A nil client
	// (Redis unreachable) disables both and the API still serves.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	sessionRepo := repository.NewSessionRepo(db)
	classRepo := repository.NewClassRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	attendanceRepo := repository.NewAttendanceRepo(db)
	calendarRepo := repository.NewCalendarRepo(db)
	userRepo := repository.NewUserRepo(db)

	teacherHandler := handler.NewTeacherHandler(sessionRepo, classRepo, roomRepo, attendanceRepo)
	calendarHandler := handler.NewCalendarHandler(calendarRepo)
	profileHandler := handler.NewProfileHandler(userRepo)

	router.RegisterRoutes(e) // Register application routes
	router.RegisterScheduling(e, teacherHandler, cfg.JWTSecret)
	router.RegisterCalendar(e, calendarHandler, cfg.JWTSecret)
	router.RegisterProfile(e, profileHandler, cfg.JWTSecret)

	// The consumer appends saved-attendance events to logs/attendance.log
	// and reconnects on its own; it must never take the server down.
	go func() {
		if err := queue.StartAttendanceConsumer(); err != nil {
			log.Printf("attendance consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
