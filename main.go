package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/radiusdt/vector-insights/internal/analytics"
	"github.com/radiusdt/vector-insights/internal/config"
	"github.com/radiusdt/vector-insights/internal/dataset"
	"github.com/radiusdt/vector-insights/internal/httpserver"
	"github.com/radiusdt/vector-insights/internal/metrics"
	"github.com/radiusdt/vector-insights/internal/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Can't use logger yet, fall back to standard log
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	logger, err := middleware.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("starting Vector-Insights",
		zap.String("env", cfg.Server.Env),
		zap.String("addr", cfg.Server.Addr),
		zap.Int64("seed", cfg.Generator.Seed),
	)

	m := metrics.NewMetrics("vector_insights")

	// Generate the synthetic dataset once; it is read-only afterwards.
	genStart := time.Now()
	ds := dataset.NewGenerator(cfg.Generator).Generate()
	m.GeneratorDuration.Observe(time.Since(genStart).Seconds())

	m.SetDatasetRows("advertisers", len(ds.Advertisers))
	m.SetDatasetRows("campaigns", len(ds.Campaigns))
	m.SetDatasetRows("creatives", len(ds.Creatives))
	m.SetDatasetRows("impressions", len(ds.Impressions))
	m.SetDatasetRows("clicks", len(ds.Clicks))
	m.SetDatasetRows("conversions", len(ds.Conversions))

	logger.Info("dataset generated",
		zap.Duration("elapsed", time.Since(genStart)),
		zap.Int("advertisers", len(ds.Advertisers)),
		zap.Int("campaigns", len(ds.Campaigns)),
		zap.Int("creatives", len(ds.Creatives)),
		zap.Int("impressions", len(ds.Impressions)),
		zap.Int("clicks", len(ds.Clicks)),
		zap.Int("conversions", len(ds.Conversions)),
	)

	// The engine's random source covers the simulated margin and payment
	// draws; it shares the generator seed so runs are reproducible.
	engine := analytics.NewEngine(
		rand.New(rand.NewSource(cfg.Generator.Seed)),
		analytics.WithPacingThreshold(cfg.Reports.PacingThresholdPct),
		analytics.WithPaymentTerms(cfg.Reports.ReceivableTermDays, cfg.Reports.PayableTermDays),
	)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Build dependencies
	deps := &httpserver.Dependencies{
		Dataset: ds,
		Engine:  engine,
		Config:  cfg,
		Logger:  logger,
		Metrics: m,
	}

	// Create HTTP server with all middlewares
	handler := httpserver.NewServer(deps)

	// Apply middleware chain (order matters: outermost first)
	// Recovery -> Logging -> RateLimit (global, then per-IP) -> Auth -> Handler
	recoveryMW := middleware.NewRecoveryMiddleware(logger)
	loggingMW := middleware.NewLoggingMiddleware(logger)
	rateLimitMW := middleware.NewRateLimitMiddleware(cfg.RateLimit, logger)
	rateLimitMW.SetMetrics(m)
	authMW := middleware.NewAuthMiddleware(cfg.Auth, logger)

	finalHandler := recoveryMW.Handler(
		loggingMW.Handler(
			rateLimitMW.Handler(
				rateLimitMW.HandlerPerIP(
					authMW.Handler(handler),
				),
			),
		),
	)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           finalHandler,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		logger.Info("HTTP server starting", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Start rate limiter cleanup goroutine
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rateLimitMW.CleanupIPLimiters()
			case <-ctx.Done():
				return
			}
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	// Cancel main context to stop background goroutines
	cancel()

	logger.Info("server stopped")
}
