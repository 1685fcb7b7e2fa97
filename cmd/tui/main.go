package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pricealert/configs"
	"pricealert/internal/delivery/tui"
	"pricealert/internal/infra"
	"pricealert/internal/repository"
	"pricealert/internal/service"
	"pricealert/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := configs.Load(context.Background())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The terminal belongs to bubbletea; logs go to a file when requested
	logger := zap.NewNop()
	if path := cfg.Log.TUIFile; path != "" {
		if logger, err = infra.NewFileLogger(cfg.Log.Level, path); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	}
	defer func() { _ = logger.Sync() }()

	prices, err := service.LoadPriceTableService(cfg.Prices.File)
	if err != nil {
		log.Fatalf("Failed to load price table: %v", err)
	}

	var opts []repository.Option
	if cfg.Prices.SeedAlerts {
		opts = append(opts, repository.WithAlerts(repository.SeedAlerts(prices, time.Now())))
	}
	alertService := usecase.NewAlertService(repository.NewAlertRepository(prices, opts...), prices, logger, nil)

	effects := infra.NewScheduler(cfg.Effects, logger)
	p := tea.NewProgram(tui.New(alertService, effects), tea.WithAltScreen())
	effects.Subscribe(func() { go p.Send(tui.RefreshMsg{}) })

	if err := effects.Start(); err != nil {
		log.Fatalf("Failed to start effects scheduler: %v", err)
	}

	_, err = p.Run()
	effects.Stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
