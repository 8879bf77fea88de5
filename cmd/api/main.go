package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LiveKiller/placement-website/internal/app"
	"github.com/LiveKiller/placement-website/internal/config"
	"github.com/LiveKiller/placement-website/internal/database"
	apphttp "github.com/LiveKiller/placement-website/internal/http"
	"github.com/LiveKiller/placement-website/internal/http/handlers"
	httpmw "github.com/LiveKiller/placement-website/internal/http/middleware"
	"github.com/LiveKiller/placement-website/internal/http/response"
	"github.com/LiveKiller/placement-website/internal/observability"
	"github.com/LiveKiller/placement-website/internal/repository/postgres"
	"github.com/LiveKiller/placement-website/internal/security"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.LogLevel)
	response.SetLogger(logger)

	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatal(err)
	}

	userRepo := postgres.NewUserRepository(db)
	studentRepo := postgres.NewStudentProfileRepository(db)
	facultyRepo := postgres.NewFacultyProfileRepository(db)
	hiringRepo := postgres.NewHiringProfileRepository(db)
	internshipRepo := postgres.NewInternshipRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	hasher := security.NewPasswordHasher()

	authService := app.NewAuthService(userRepo, studentRepo, facultyRepo, hiringRepo, jwtProvider, hasher, cfg.AccessTokenTTL)
	profileService := app.NewProfileService(userRepo, studentRepo, facultyRepo, hiringRepo, hasher)
	internshipService := app.NewInternshipService(internshipRepo, hiringRepo, studentRepo, applicationRepo)
	applicationService := app.NewApplicationService(applicationRepo, internshipRepo, studentRepo, hiringRepo)
	reportService := app.NewReportService(reportRepo, internshipRepo, studentRepo, applicationRepo)

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		limiter = httpmw.NewRedisLimiter(redis.NewClient(opts))
		logger.Info("rate limiting backed by redis")
	}

	authHandler := handlers.NewAuthHandler(authService, limiter)
	profileHandler := handlers.NewProfileHandler(profileService)
	internshipHandler := handlers.NewInternshipHandler(internshipService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, limiter)
	reportHandler := handlers.NewReportHandler(reportService)
	authMiddleware := httpmw.NewAuthMiddleware(jwtProvider)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        authHandler,
		ProfileHandler:     profileHandler,
		InternshipHandler:  internshipHandler,
		ApplicationHandler: applicationHandler,
		ReportHandler:      reportHandler,
		AuthMiddleware:     authMiddleware,
		Logger:             logger,
		RequestTimeout:     cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
