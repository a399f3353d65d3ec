package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	dbpkg "github.com/BruksfildServices01/studio-manager/internal/db"
	"github.com/BruksfildServices01/studio-manager/internal/infra/cache"
	"github.com/BruksfildServices01/studio-manager/internal/infra/notify"
	"github.com/BruksfildServices01/studio-manager/internal/infra/payments"
	infraRepo "github.com/BruksfildServices01/studio-manager/internal/infra/repository"
	"github.com/BruksfildServices01/studio-manager/internal/infra/storage"
	"github.com/BruksfildServices01/studio-manager/internal/infra/summarizer"
	"github.com/BruksfildServices01/studio-manager/internal/logger"
	"github.com/BruksfildServices01/studio-manager/internal/metrics"
	"github.com/BruksfildServices01/studio-manager/internal/routes"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/studio-manager/internal/usecase/appointment"
)

const shutdownTimeout = 15 * time.Second

func serveCommand(a *app) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reminder scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context(), migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "migrate the schema before serving")
	return cmd
}

func (a *app) serve(ctx context.Context, migrate bool) error {
	cfg := a.cfg
	log := a.log

	db, err := a.openDB()
	if err != nil {
		return err
	}
	if migrate {
		if err := dbpkg.Migrate(db, cfg.DefaultTimezone); err != nil {
			return err
		}
	}

	store, err := storage.New(cfg, log)
	if err != nil {
		return err
	}

	m := metrics.New()
	dispatcher := audit.NewDispatcher(audit.New(db), logger.Component(log, "audit"))

	deps := routes.Deps{
		DB:      db,
		Config:  cfg,
		Log:     log,
		Metrics: m,
		Audit:   dispatcher,
		Cache:   cache.New(cfg, log),
		Storage: store,
	}

	if cfg.PaymentsEnabled() {
		gw, err := payments.NewMercadoPago(cfg.MercadoPagoToken)
		if err != nil {
			return err
		}
		deps.Payments = gw
		log.Info("online payments enabled")
	}
	if cfg.SummaryEnabled() {
		deps.Summarizer = summarizer.NewWebhook(cfg.SummaryWebhookURL, cfg.SummaryTimeout, log)
		log.Info("note summaries enabled")
	}

	// ======================================================
	// REMINDERS
	// ======================================================
	reminders := ucAppointment.NewSendReminders(
		infraRepo.NewAppointmentGormRepository(db),
		notify.New(cfg, log),
		m,
		log,
	)

	scheduler := cron.New(cron.WithLocation(timezone.Location(cfg.DefaultTimezone)))
	if _, err := scheduler.AddFunc(cfg.ReminderCron, func() {
		report, err := reminders.Execute(ctx, timezone.Now())
		if err != nil {
			log.Error("reminder run failed", slog.Any("error", err))
			return
		}
		log.Info("reminder run finished", slog.Int("sent", report.Sent), slog.Int("failed", report.Failed))
	}); err != nil {
		return fmt.Errorf("invalid REMINDER_CRON %q: %w", cfg.ReminderCron, err)
	}
	scheduler.Start()

	// ======================================================
	// HTTP
	// ======================================================
	if logger.ParseLevel(cfg.LogLevel) != slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", slog.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			<-scheduler.Stop().Done()
			dispatcher.Close()
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		log.Warn("requests still in flight at shutdown, later audit events are dropped", slog.Any("error", err))
	}

	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn("reminder run still in progress at shutdown")
	}
	dispatcher.Close()

	return err
}
