package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"finbuddy/internal/amqp"
	"finbuddy/internal/auth"
	"finbuddy/internal/cli"
	apphttp "finbuddy/internal/http"
	applog "finbuddy/internal/log"
	"finbuddy/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// The AMQP broker is optional for the API process. Without it,
	// ledger writes still succeed and export events are skipped.
	var events *services.LedgerEvents
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("AMQP unavailable, ledger export events disabled", applog.FieldError, err)
		events = services.NewLedgerEvents(nil)
	} else {
		defer amqpClient.Close()
		events = services.NewLedgerEvents(amqpClient)
	}

	authMgr := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	srv := apphttp.NewServer(":"+cfg.Port, repo, authMgr, events)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
	})

	logger.Info("Starting finbuddy server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
