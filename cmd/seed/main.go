package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/config"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/kv"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/logging"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/repository"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.New(cfg)

	if err := seed(cfg, logger); err != nil {
		logger.Error("seed failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func seed(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	logger.Info("connecting", slog.String("backend", cfg.StoreBackend))
	store, closeStore, err := kv.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	initializer := service.NewInitializer(
		repository.NewProductRepository(store, nil),
		repository.NewUserRepository(store, nil),
		logger,
	)
	result, err := initializer.Initialize(ctx)
	if err != nil {
		return err
	}

	logger.Info("seed completed",
		slog.Int("products_seeded", result.ProductsSeeded),
		slog.Int("users_seeded", result.UsersSeeded))
	return nil
}
