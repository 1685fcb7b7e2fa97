package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"pricealert/configs"
	httpdelivery "pricealert/internal/delivery/http"
	"pricealert/internal/delivery/ops"
	"pricealert/internal/infra"
	"pricealert/internal/repository"
	"pricealert/internal/service"
	"pricealert/internal/usecase"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := configs.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := infra.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Initialize price table
	prices, err := service.LoadPriceTableService(cfg.Prices.File)
	if err != nil {
		logger.Fatal("Failed to load price table", zap.String("file", cfg.Prices.File), zap.Error(err))
	}

	// Initialize alert store
	var opts []repository.Option
	if cfg.Prices.SeedAlerts {
		opts = append(opts, repository.WithAlerts(repository.SeedAlerts(prices, time.Now())))
	}
	alertRepo := repository.NewAlertRepository(prices, opts...)

	// Initialize services
	metrics := infra.NewMetrics()
	alertService := usecase.NewAlertService(alertRepo, prices, logger, metrics)

	// Initialize cosmetic effects
	effects := infra.NewScheduler(cfg.Effects, logger)
	if err := effects.Start(); err != nil {
		logger.Fatal("Failed to start effects scheduler", zap.Error(err))
	}
	defer effects.Stop()

	templates, err := httpdelivery.LoadTemplates()
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	// Initialize HTTP router
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	httpdelivery.SetupRoutes(e, &httpdelivery.RouterConfig{
		WebHandler:   httpdelivery.NewWebHandler(templates, alertService, effects, logger),
		AlertHandler: httpdelivery.NewAlertHandler(alertService, logger),
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	opsSrv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.OpsPort),
		Handler:      ops.NewRouter(metrics.Handler(), alertService),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logger.Info("PRICE_ALERT.BOT starting",
		zap.String("addr", srv.Addr),
		zap.String("ops_addr", opsSrv.Addr),
		zap.String("env", cfg.Server.Env),
		zap.Int("tokens", len(prices.Symbols())),
		zap.Int("alerts", alertService.Counts().Total),
	)

	errCh := make(chan error, 2)
	go serve(srv, errCh)
	go serve(opsSrv, errCh)

	// Wait for interrupt signal or a listener failure
	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	case err := <-errCh:
		logger.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := opsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ops server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

func serve(srv *http.Server, errCh chan<- error) {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errCh <- fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}
}
