package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/nahidhasan98/script-drift/internal/app"
	"github.com/nahidhasan98/script-drift/internal/config"
	"github.com/nahidhasan98/script-drift/internal/handlers"
	"github.com/nahidhasan98/script-drift/internal/logger"
	"github.com/nahidhasan98/script-drift/internal/notify"
	"github.com/nahidhasan98/script-drift/internal/report"
	"github.com/nahidhasan98/script-drift/internal/server"
	"github.com/nahidhasan98/script-drift/internal/validation"
	"github.com/nahidhasan98/script-drift/internal/whatsapp"
)

var (
	cfg      *config.Config
	log      *logger.Logger
	pipeline *app.Pipeline
	waClient *whatsapp.Client
	errChan  = make(chan error, 2)
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	if err := initialize(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Initialization error: %v\n", err)
		os.Exit(1)
	}

	if waClient != nil {
		startWhatsAppClient(ctx, &wg)
	}

	startWebServer(ctx, &wg)

	waitForShutdown(cancel, &wg)
}

func initialize(ctx context.Context) error {
	var err error

	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log = logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info("Starting Script Drift server")

	// Catalog entries may name local files; ad hoc API locators are limited to http(s) and github.
	pipeline, err = app.NewPipeline(ctx, cfg, true, log)
	if err != nil {
		return err
	}
	log.Infof("Loaded %d scripts, summarizer backend %q", len(pipeline.Catalog.Names()), pipeline.Summarizer)

	if !cfg.NotificationsEnabled() {
		log.Warn("WhatsApp notifications disabled; reports will only be returned over HTTP")
		return nil
	}

	if appErr := validation.New().ValidateRecipient(cfg.WhatsApp.Recipient); appErr != nil {
		return appErr
	}

	waClient, err = whatsapp.New(ctx, whatsapp.Options{
		DBDriver:   cfg.WhatsApp.DBDriver,
		DBDSN:      cfg.WhatsApp.DBDSN,
		LogLevel:   cfg.WhatsApp.LogLevel,
		DeviceName: cfg.WhatsApp.DeviceName,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to create WhatsApp client: %w", err)
	}

	return nil
}

func startWhatsAppClient(ctx context.Context, wg *sync.WaitGroup) {
	wg.Go(func() {
		defer func() {
			waClient.Disconnect()
			log.Info("WhatsApp client shutdown complete")
		}()

		log.Info("Starting WhatsApp client...")
		if err := waClient.Connect(ctx); err != nil {
			errChan <- fmt.Errorf("failed to connect to WhatsApp: %w", err)
			return
		}

		<-ctx.Done()
		log.Info("WhatsApp client shutting down...")
	})
}

func startWebServer(ctx context.Context, wg *sync.WaitGroup) {
	wg.Go(func() {
		log.Info("Starting HTTP server...")

		opts := handlers.Options{
			GitHubSecret: cfg.Webhooks.GitHubSecret,
			GiteaSecret:  cfg.Webhooks.GiteaSecret,
			Summarizer:   pipeline.Summarizer,
		}

		var notifier report.Notifier
		if waClient != nil {
			notifier = notify.New(waClient, cfg.WhatsApp.Recipient, log.With("component", "notify"))
			opts.WhatsApp = waClient
		}

		svc := report.NewService(pipeline.Catalog, pipeline.Source, pipeline.Builder, notifier, log)
		httpServer := server.New(cfg, handlers.New(svc, log, opts), log)
		httpServer.Start(cfg, errChan)

		<-ctx.Done()
		log.Info("HTTP server shutting down...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Error during HTTP server shutdown", err)
		}
	})
}

func waitForShutdown(cancel context.CancelFunc, wg *sync.WaitGroup) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		log.Error("Service failed", err)
	case <-sigChan:
		log.Info("Received shutdown signal")
	}

	cancel()
	wg.Wait()

	log.Info("Application stopped")
}
