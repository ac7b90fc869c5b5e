package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daily-report/internal/config"
	"daily-report/internal/logger"
	"daily-report/internal/model"
	"daily-report/internal/router"
	"daily-report/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	closeLog := logger.Init(cfg.Log)
	defer closeLog()

	if err := run(cfg); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	db, err := cfg.OpenGormDB()
	if err != nil {
		return err
	}
	if err := model.Migrate(db); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := router.NewServices(db, cfg, service.SystemClock)
	if _, err := svc.Admins.EnsureDefault(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		return err
	}

	go svc.Sessions.RunSweeper(ctx, cfg.Session.SweepInterval)
	slog.Info("session sweeper started", "interval", cfg.Session.SweepInterval.String())

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.New(db, cfg, svc),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
