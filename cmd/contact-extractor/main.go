package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/docuform/contact-extractor/internal/config"
	"github.com/docuform/contact-extractor/internal/extractor"
	"github.com/docuform/contact-extractor/internal/logger"
	"github.com/docuform/contact-extractor/internal/mcp"
	"github.com/docuform/contact-extractor/internal/watch"
	"github.com/docuform/contact-extractor/internal/web"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// shutdownTimeout bounds how long outstanding HTTP requests may run
// after a shutdown signal
const shutdownTimeout = 10 * time.Second

// runStdioMode serves MCP over stdio
func runStdioMode(ctx context.Context, cfg *config.Config, service *extractor.Service, log *logger.Logger) {
	server, err := mcp.NewServer(cfg, service, log)
	if err != nil {
		log.Fatal("Failed to create MCP server", zap.Error(err))
	}

	// In stdio mode, the parent process controls our lifecycle.
	// We exit cleanly when stdin is closed or the client disconnects.
	if err := server.Run(ctx); err != nil {
		log.Error("Server error", zap.Error(err))
		os.Exit(1)
	}
}

// runHTTPMode runs the REST API with signal handling
func runHTTPMode(_ context.Context, cancel context.CancelFunc, cfg *config.Config, service *extractor.Service, log *logger.Logger) {
	server, err := web.NewServer(cfg, service, log)
	if err != nil {
		log.Fatal("Failed to create HTTP server", zap.Error(err))
	}

	// Set up signal handling for graceful shutdown
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	// Start server in a goroutine
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.Start()
	}()

	// Wait for shutdown signal or server error
	select {
	case sig := <-signalCh:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := server.Stop(shutdownCtx); err != nil {
			log.Error("Failed to shutdown server gracefully", zap.Error(err))
			os.Exit(1)
		}

		if err := <-serverErrCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server shutdown with error", zap.Error(err))
			os.Exit(1)
		}

	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", zap.Error(err))
			os.Exit(1)
		}
	}

	log.Info("Server stopped successfully")
}

// runWatchMode runs the drop folder watcher with signal handling
func runWatchMode(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, service *extractor.Service, log *logger.Logger) {
	runner := watch.NewRunner(watch.Config{
		Root:       cfg.WatchDirectory,
		Workers:    cfg.Workers,
		ExportPath: cfg.ExportPath,
	}, service, log)

	// Set up signal handling for graceful shutdown
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	// Start runner in a goroutine
	runnerErrCh := make(chan error, 1)
	go func() {
		runnerErrCh <- runner.Run(ctx)
	}()

	// Wait for shutdown signal or runner error. Cancelling the context
	// drains the queue and writes the contact sheet.
	select {
	case sig := <-signalCh:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
		cancel()

		if err := <-runnerErrCh; err != nil {
			log.Error("Watcher shutdown with error", zap.Error(err))
			os.Exit(1)
		}

	case err := <-runnerErrCh:
		if err != nil {
			log.Error("Watcher error", zap.Error(err))
			os.Exit(1)
		}
	}

	log.Info("Watcher stopped successfully")
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	// Load configuration from flags first
	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	log, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.IsDebug() {
		log.Debug("Starting with configuration", zap.String("config", cfg.String()))
	}

	service, err := extractor.NewService(cfg.MaxFileSize, cfg.EngineConfig(), log)
	if err != nil {
		log.Fatal("Failed to create extraction service", zap.Error(err))
	}

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle different modes
	switch {
	case cfg.IsHTTPMode():
		runHTTPMode(ctx, cancel, cfg, service, log)
	case cfg.IsWatchMode():
		runWatchMode(ctx, cancel, cfg, service, log)
	default:
		runStdioMode(ctx, cfg, service, log)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Contact Extractor\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
