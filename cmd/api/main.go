package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/vitalconnect/scheduler/config"
	"github.com/vitalconnect/scheduler/internal/handlers"
	"github.com/vitalconnect/scheduler/internal/middleware"
	"github.com/vitalconnect/scheduler/internal/repository"
	"github.com/vitalconnect/scheduler/internal/services/auth"
	"github.com/vitalconnect/scheduler/internal/services/notification"
	schedulingsvc "github.com/vitalconnect/scheduler/internal/services/scheduling"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Printf("Warning: Database ping failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to parse Redis URL: %v, using defaults", err)
		redisOpts = &redis.Options{Addr: "localhost:6379", DB: 0}
	}
	redisClient := redis.NewClient(redisOpts)
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		log.Printf("Warning: Redis ping failed: %v", err)
	}
	defer redisClient.Close()

	jwtService, err := auth.NewJWTService(
		cfg.JWTSecret,
		cfg.JWTRefreshSecret,
		cfg.JWTAccessDuration,
		cfg.JWTRefreshDuration,
	)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	leaveRepo := repository.NewLeaveDayRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	scheduleRunRepo := repository.NewScheduleRunRepository(db)

	// Services
	authService := auth.NewAuthService(jwtService, userRepo, redisClient)

	var smsService *notification.SMSService
	if cfg.IsTwilioConfigured() {
		smsService = notification.NewSMSService(&notification.SMSConfig{
			AccountSID:      cfg.TwilioAccountSID,
			AuthToken:       cfg.TwilioAuthToken,
			FromPhoneNumber: cfg.TwilioPhoneNumber,
		})
		log.Println("[SMSService] Twilio SMS alerting enabled")
	} else {
		smsService = notification.NewSMSService(nil)
		log.Println("Warning: Twilio not configured, schedule alert SMS disabled")
	}

	schedulingService := schedulingsvc.NewService(
		doctorRepo,
		teamRepo,
		leaveRepo,
		holidayRepo,
		shiftRepo,
		scheduleRunRepo,
		redisClient,
		smsService,
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	doctorHandler := handlers.NewDoctorHandler(doctorRepo)
	teamHandler := handlers.NewTeamHandler(teamRepo)
	leaveDayHandler := handlers.NewLeaveDayHandler(leaveRepo, schedulingService)
	holidayHandler := handlers.NewHolidayHandler(holidayRepo)
	scheduleHandler := handlers.NewScheduleHandler(schedulingService, shiftRepo, cfg.DefaultShiftsPerDay, cfg.DefaultShiftsPerNight)

	router := gin.Default()

	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SetJWTService(jwtService))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	v1 := router.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/login", middleware.LoginRateLimit(redisClient, cfg.LoginRateLimit), authHandler.Login)
			authRoutes.POST("/refresh", authHandler.RefreshToken)
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthRequired())
		{
			doctors := protected.Group("/doctors")
			{
				doctors.GET("", doctorHandler.List)
				doctors.POST("", middleware.RequireRole("admin", "scheduler"), doctorHandler.Create)
				doctors.GET("/:id", doctorHandler.GetByID)
				doctors.PATCH("/:id", middleware.RequireRole("admin", "scheduler"), doctorHandler.Update)
				doctors.DELETE("/:id", middleware.RequireRole("admin"), doctorHandler.Delete)
			}

			teams := protected.Group("/teams")
			{
				teams.GET("", teamHandler.List)
				teams.POST("", middleware.RequireRole("admin", "scheduler"), teamHandler.Create)
				teams.PATCH("/:id", middleware.RequireRole("admin"), teamHandler.Update)
				teams.DELETE("/:id", middleware.RequireRole("admin"), teamHandler.Delete)
			}

			leaveDays := protected.Group("/leave-days")
			{
				leaveDays.GET("", leaveDayHandler.ListByDoctor)
				leaveDays.POST("", leaveDayHandler.Create)
				leaveDays.DELETE("/:id", leaveDayHandler.Delete)
				leaveDays.POST("/validate", leaveDayHandler.Validate)
			}

			holidays := protected.Group("/holidays")
			{
				holidays.GET("", holidayHandler.List)
				holidays.POST("", middleware.RequireRole("admin"), holidayHandler.Create)
				holidays.DELETE("/:id", middleware.RequireRole("admin"), holidayHandler.Delete)
			}

			schedules := protected.Group("/schedules")
			{
				schedules.POST("/generate",
					middleware.RequireRole("admin", "scheduler"),
					middleware.GenerateRateLimit(redisClient, cfg.GenerateRateLimit),
					scheduleHandler.Generate,
				)
				schedules.GET("/:month/:year", scheduleHandler.GetForMonth)
				schedules.GET("/:month/:year/conflicts", scheduleHandler.GetConflicts)
			}
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("scheduler API server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
