package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"websutech/internal/api"
	"websutech/internal/config"
	"websutech/internal/services"
	"websutech/internal/store"
)

const (
	shutdownTimeout = 30 * time.Second
	readTimeout     = 15 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
)

func newLogger(debug bool) *zap.SugaredLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(os.Stdout), level)
	return zap.New(core, zap.AddCaller()).Sugar()
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.App.Debug)
	defer log.Sync()

	log.Infow("starting", "name", cfg.App.Name, "version", cfg.App.Version,
		"debug", cfg.App.Debug, "host", cfg.App.Host, "port", cfg.App.Port)

	// Initialize the snapshot store
	st := store.Open(cfg.Store.Path, cfg.Store.SnapshotInterval, log)
	defer func() {
		log.Info("flushing final snapshot...")
		if err := st.Close(); err != nil {
			log.Errorw("final snapshot failed", "error", err)
		}
	}()

	// Create service instances
	log.Info("initializing services...")
	mailer := services.NewSMTPMailer(&cfg.Email, log)
	if !cfg.Email.Configured() {
		log.Warn("SMTP credentials absent: email runs in development mode")
	}
	dispatcher := services.NewDispatcher(mailer, cfg.Email.OpsEmail, log)
	filter := services.NewSubmissionFilter(cfg.Dedup.Window, cfg.Dedup.TTL)

	svcs := api.Services{
		Contact:   services.NewContactService(st, dispatcher, filter, log),
		Inquiries: services.NewInquiryService(st, dispatcher, log),
		Documents: services.NewDocumentService(st, log),
		Security:  services.NewSecurityService(log),
		Auth:      services.NewAuthService(&cfg.Auth, log),
		Health:    services.NewHealthService(),
	}

	handler := api.NewRouter(cfg, svcs, log)

	// Create HTTP server with timeouts
	addr := fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Infow("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatalw("server failed to start", "error", err)
	case sig := <-shutdown:
		log.Infow("starting graceful shutdown", "signal", sig.String())
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Errorw("error during graceful shutdown", "error", err)
		if err == context.DeadlineExceeded {
			log.Warn("shutdown timeout exceeded, forcing close...")
			httpServer.Close()
		}
	}

	log.Info("server shutdown complete")
}
