package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/carepulse/carepulse-api/internal/config"
	"github.com/carepulse/carepulse-api/internal/gate"
	v1 "github.com/carepulse/carepulse-api/internal/handler/v1"
	"github.com/carepulse/carepulse-api/internal/notify"
	"github.com/carepulse/carepulse-api/internal/repository/postgres"
	"github.com/carepulse/carepulse-api/internal/service"
	"github.com/carepulse/carepulse-api/internal/storage"
	"github.com/carepulse/carepulse-api/pkg/auth"
	"github.com/carepulse/carepulse-api/pkg/database"
	"github.com/carepulse/carepulse-api/pkg/logger"
	"github.com/carepulse/carepulse-api/pkg/metrics"
	"github.com/carepulse/carepulse-api/pkg/tracer"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("config: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	m := metrics.NewCollector(cfg.App.Name)
	if sqlDB, err := db.DB(); err == nil {
		m.DBConnections.Set(float64(sqlDB.Stats().OpenConnections))
	}

	// Document storage is optional; without a bucket, registrations
	// simply cannot carry a file.
	var docs *storage.DocumentStore
	if cfg.Storage.Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
		if err != nil {
			return err
		}
		docs = storage.NewDocumentStore(s3.NewFromConfig(awsCfg), cfg.Storage.Bucket, log)
		log.Info("document store enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		docs = storage.NewDocumentStore(nil, "", log)
		log.Info("document store disabled; bucket not configured")
	}

	// Push notifications are optional as well.
	var messenger notify.Messenger
	if cfg.Notify.Enabled {
		messenger, err = notify.NewMessenger(ctx, cfg.Notify.CredentialsFile)
		if err != nil {
			return err
		}
		log.Info("push notifications enabled")
	}
	notifier := notify.NewNotifier(messenger, log)
	notifier.OnFailure = m.NotifyFailuresTotal.Inc

	userRepo := postgres.NewUserRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	auditSvc := service.NewAuditService(auditRepo, log, m)
	defer auditSvc.Shutdown()

	jwtManager := auth.NewJWTManager(cfg.JWT)

	userSvc := service.NewUserService(userRepo, auditSvc, log, m)
	patientSvc := service.NewPatientService(patientRepo, userRepo, docs, auditSvc, log, m)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, patientRepo, userRepo, notifier, auditSvc, log, m)
	gateSvc := service.NewGateService(gate.New(cfg.Admin.Passkey), jwtManager, auditSvc, log, m)

	router := v1.NewRouter(v1.RouterDeps{
		Config:       cfg,
		Log:          log,
		Metrics:      m,
		JWT:          jwtManager,
		Users:        userSvc,
		Patients:     patientSvc,
		Appointments: appointmentSvc,
		Gate:         gateSvc,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Environment),
			zap.String("version", cfg.App.Version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("shutdown complete")
	return nil
}
