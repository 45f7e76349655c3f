package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/collabdesk/billing-api/internal/config"
	"github.com/collabdesk/billing-api/internal/db"
	"github.com/collabdesk/billing-api/internal/middleware"
	"github.com/collabdesk/billing-api/internal/server"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func setupLogger(level string) {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
	})))
}

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()
	setupLogger(cfg.LogLevel)

	if *migrateOnlyFlag {
		if _, err := db.ConnectAndMigrate(); err != nil {
			slog.Error("migrate-only failed", "err", err)
			os.Exit(1)
		}
		slog.Info("migrations completed; exiting as requested")
		return
	}

	conn, err := db.ConnectAndMigrate()
	if err != nil {
		slog.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	slog.Info("starting server", "env", cfg.Env, "port", cfg.Port)

	handler := middleware.RequestLog(server.New(conn))
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("error during shutdown", "err", err)
	}
	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
	slog.Info("server gracefully stopped")
}
