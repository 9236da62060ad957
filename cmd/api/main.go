package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notesvc/internal/config"
	"notesvc/internal/database"
	"notesvc/internal/logger"
	"notesvc/internal/server"
	"notesvc/internal/services"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "notesvc: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.IsProduction(), cfg.LogFilter)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	appLog := log.For("notesvc")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, database.Config{
		URL:           cfg.DatabaseURL,
		MaxConns:      cfg.MaxDBConns,
		RunMigrations: cfg.RunMigrations,
	}, appLog)
	if err != nil {
		appLog.Error("failed to initialize database", zap.Error(err))
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLog.Warn("error closing database", zap.Error(err))
		}
	}()

	app := server.New(cfg, db, services.NewServiceRegister(db.DB()), log)
	app.RegisterFiberRoutes()

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.ListenAddr())
	}()

	fmt.Println("🚀 Server started successfully")
	appLog.Info("listening",
		zap.String("addr", cfg.ListenAddr()),
		zap.String("env", cfg.Env),
		zap.Bool("migrations", cfg.RunMigrations),
	)

	select {
	case err := <-listenErr:
		appLog.Error("server failed", zap.Error(err))
		return err
	case <-ctx.Done():
	}

	appLog.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLog.Error("server forced to shutdown", zap.Error(err))
	}

	appLog.Info("server stopped")
	return nil
}
