package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/pickem-league/internal/app"
	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/observability"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, logShutdown := buildLogger(cfg)
	logging.SetDefault(logger)

	accessLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slogLevel(cfg.LogLevel),
	}))

	// Telemetry failures are logged and the server still comes up, only the
	// app build itself is fatal.
	uptraceShutdown := func(context.Context) error { return nil }
	if shutdown, err := observability.InitUptrace(cfg, logger); err != nil {
		logger.Error("init uptrace failed", "error", err)
	} else {
		uptraceShutdown = shutdown
	}

	pyroscopeStop := func() error { return nil }
	if stop, err := observability.InitPyroscope(cfg, accessLogger); err != nil {
		logger.Error("init pyroscope failed", "error", err)
	} else {
		pyroscopeStop = stop
	}

	pprofServer, err := observability.StartPprofServer(cfg, accessLogger)
	if err != nil {
		logger.Error("start pprof server failed", "error", err)
	}

	application, err := app.New(cfg, logger, accessLogger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	application.Start()
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
		if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("http server stopped")

	if pprofServer != nil {
		if err := observability.StopPprofServer(pprofServer, accessLogger, 5*time.Second); err != nil {
			logger.Error("stop pprof server failed", "error", err)
		}
	}
	if err := pyroscopeStop(); err != nil {
		logger.Error("stop pyroscope failed", "error", err)
	}
	if err := uptraceShutdown(shutdownCtx); err != nil {
		logger.Error("shutdown uptrace failed", "error", err)
	}
	if err := logShutdown(shutdownCtx); err != nil {
		logger.Error("shutdown log shipper failed", "error", err)
	}
	_ = logger.Sync()
}

// buildLogger ships through BetterStack when configured and falls back to
// the plain JSON logger when the shipper cannot start.
func buildLogger(cfg config.Config) (*logging.Logger, func(context.Context) error) {
	base := logging.NewJSON(cfg.LogLevel)
	logger, shutdown, err := observability.InitBetterStackLogger(cfg, base)
	if err != nil {
		base.Error("init betterstack logger failed", "error", err)
		return base, func(context.Context) error { return nil }
	}
	return logger, shutdown
}

// slogLevel maps the zap level onto the slog scale for the access logger.
func slogLevel(level logging.Level) slog.Level {
	switch {
	case level <= logging.LevelDebug:
		return slog.LevelDebug
	case level == logging.LevelInfo:
		return slog.LevelInfo
	case level == logging.LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
