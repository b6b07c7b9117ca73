package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mlakar/inventar/internal/api"
	"github.com/mlakar/inventar/internal/config"
	"github.com/mlakar/inventar/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	// Auto-generate the signing key if not configured. Sessions then do not
	// survive a restart.
	if cfg.JWTSecret == "" {
		secret, err := generateSecret(32)
		if err != nil {
			slog.Error("generating JWT secret", "error", err)
			os.Exit(1)
		}
		cfg.JWTSecret = secret
		slog.Warn("JWT secret auto-generated, tokens will be invalidated on restart")
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		slog.Error("opening database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		slog.Error("migrating database", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.LoggingMiddleware(api.NewRouter(database, cfg.JWTSecret)),
	}

	go func() {
		slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// setupLogger configures the default slog logger from the configured level.
func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

// generateSecret creates a random hex-encoded key of the given byte length.
func generateSecret(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
