package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"mawazna/internal/backend"
	"mawazna/internal/cli"
	apphttp "mawazna/internal/http"
	applog "mawazna/internal/log"
	"mawazna/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	factory := backend.NewFactory(applog.New(applog.DefaultConfig()))
	result, err := factory.CreateBackend(context.Background(), backend.Config{
		Type:          backend.Type(cfg.DataBackend),
		StateFilePath: cfg.StateFilePath,
		SQLiteDBPath:  cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	svc := services.NewStateService(result.Backend, applog.New(applog.DefaultConfig()))
	svc.Load(context.Background())

	srv := apphttp.NewServer(":"+cfg.Port, svc, cfg.WhatsAppLinkBase)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	shutdownCtx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}
	})

	g, _ := errgroup.WithContext(shutdownCtx)
	g.Go(func() error {
		logger.Info("Starting mawazna server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		cli.WaitForShutdown(shutdownCtx, done)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
