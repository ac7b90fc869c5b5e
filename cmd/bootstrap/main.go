// Command bootstrap migrates the schema and creates or resets an admin
// account without starting the HTTP server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"daily-report/internal/config"
	"daily-report/internal/logger"
	"daily-report/internal/model"
	"daily-report/internal/service"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	username := flag.String("admin", "", "admin username (defaults to auth.admin_username)")
	password := flag.String("password", "", "admin password (defaults to auth.admin_password)")
	reset := flag.Bool("reset", false, "overwrite the password of an existing admin")
	flag.Parse()

	cfg := config.Load(*configFile)
	closeLog := logger.Init(config.LogConfig{Level: cfg.Log.Level, Console: true})

	if *username == "" {
		*username = cfg.Auth.AdminUsername
	}
	if *password == "" {
		*password = cfg.Auth.AdminPassword
	}

	err := run(context.Background(), cfg, *username, *password, *reset)
	if err != nil {
		logger.Error("bootstrap failed", "err", err)
	}
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, username, password string, reset bool) error {
	db, err := cfg.OpenGormDB()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := model.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("schema migrated", "driver", cfg.Database.Driver)

	if username == "" || password == "" {
		logger.Info("no admin credentials given, done")
		return nil
	}

	admins := service.NewAdminService(db, service.NewCredentials(cfg.Auth.BcryptCost), service.SystemClock)
	_, err = admins.Create(ctx, username, password)
	switch {
	case err == nil:
		logger.Info("admin created", "username", username)
	case errors.Is(err, service.ErrUsernameTaken) && reset:
		if err := admins.SetPassword(ctx, username, password); err != nil {
			return fmt.Errorf("reset password: %w", err)
		}
		logger.Info("admin password reset", "username", username)
	case errors.Is(err, service.ErrUsernameTaken):
		logger.Warn("admin already exists, pass -reset to change its password", "username", username)
	default:
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}
