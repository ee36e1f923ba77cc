package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwalitptl/clinic-api/internal/config"
	appointmentHandler "github.com/jwalitptl/clinic-api/internal/handler/appointment"
	authHandler "github.com/jwalitptl/clinic-api/internal/handler/auth"
	clinicHandler "github.com/jwalitptl/clinic-api/internal/handler/clinic"
	doctorHandler "github.com/jwalitptl/clinic-api/internal/handler/doctor"
	healthHandler "github.com/jwalitptl/clinic-api/internal/handler/health"
	patientHandler "github.com/jwalitptl/clinic-api/internal/handler/patient"
	reportHandler "github.com/jwalitptl/clinic-api/internal/handler/report"
	"github.com/jwalitptl/clinic-api/internal/middleware"
	"github.com/jwalitptl/clinic-api/internal/repository/postgres"
	"github.com/jwalitptl/clinic-api/internal/router"
	appointmentService "github.com/jwalitptl/clinic-api/internal/service/appointment"
	authService "github.com/jwalitptl/clinic-api/internal/service/auth"
	clinicService "github.com/jwalitptl/clinic-api/internal/service/clinic"
	doctorService "github.com/jwalitptl/clinic-api/internal/service/doctor"
	notificationService "github.com/jwalitptl/clinic-api/internal/service/notification"
	patientService "github.com/jwalitptl/clinic-api/internal/service/patient"
	reportService "github.com/jwalitptl/clinic-api/internal/service/report"
	scheduleService "github.com/jwalitptl/clinic-api/internal/service/schedule"
	jwtauth "github.com/jwalitptl/clinic-api/pkg/auth"
	"github.com/jwalitptl/clinic-api/pkg/logger"
	redisbroker "github.com/jwalitptl/clinic-api/pkg/messaging/redis"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
	"github.com/jwalitptl/clinic-api/pkg/validator"
	"github.com/jwalitptl/clinic-api/pkg/worker"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Log.Pretty,
	})

	db, err := postgres.NewDB(postgres.DBConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	v, err := validator.New()
	if err != nil {
		log.Fatal(err, "failed to build validator")
	}
	m := metrics.NewMetrics("clinic", "api")

	// Repositories
	clinicRepo := postgres.NewClinicRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Services
	jwtSvc := jwtauth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authSvc := authService.NewService(doctorRepo, jwtSvc)
	clinicSvc := clinicService.NewService(clinicRepo)
	doctorSvc := doctorService.NewService(doctorRepo)
	patientSvc := patientService.NewService(patientRepo)
	scheduleSvc := scheduleService.NewService(clinicRepo, doctorRepo, scheduleRepo, appointmentRepo)
	notificationSvc := notificationService.NewService(notificationService.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, patientRepo, doctorRepo, log)
	appointmentSvc := appointmentService.NewService(
		appointmentRepo, clinicRepo, outboxRepo, scheduleSvc, notificationSvc, log)
	reportSvc := reportService.NewService(clinicRepo, appointmentRepo, scheduleSvc)

	// Transport
	authMW := middleware.NewAuthMiddleware(authSvc)
	handlers := router.Handlers{
		Auth:        authHandler.NewHandler(authSvc, v),
		Clinic:      clinicHandler.NewHandler(clinicSvc, scheduleSvc, v),
		Doctor:      doctorHandler.NewHandler(doctorSvc, scheduleSvc, v),
		Patient:     patientHandler.NewHandler(patientSvc, v),
		Appointment: appointmentHandler.NewHandler(appointmentSvc, v, m),
		Report:      reportHandler.NewHandler(reportSvc),
		Health:      healthHandler.NewHandler(db),
	}

	r := router.NewRouter(authMW, handlers, m, log, router.Config{
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		CacheTTL:       cfg.Server.CacheTTL,
		CORSConfig:     middleware.DefaultCORSConfig(),
		ReleaseMode:    cfg.Server.ReleaseMode,
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Outbox processor drains appointment lifecycle events to Redis. The API
	// stays up without a broker; events queue in the outbox until one returns.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Redis.URL != "" {
		broker, err := redisbroker.NewRedisBroker(redisbroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, log)
		if err != nil {
			log.Fatal(err, "failed to connect to redis")
		}
		defer broker.Close()

		processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
			BatchSize:     cfg.Outbox.BatchSize,
			PollInterval:  cfg.Outbox.PollInterval,
			RetryAttempts: cfg.Outbox.RetryAttempts,
			RetryDelay:    cfg.Outbox.RetryDelay,
		}, log, m)
		go processor.Start(ctx)
	} else {
		log.Warn("redis url not configured, outbox events will not be published")
	}

	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "forced shutdown")
	}
	log.Info("server stopped")
}
