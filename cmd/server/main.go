package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/docs"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/auth"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/config"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/handler"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/kv"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/logging"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/metrics"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/repository"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/router"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/service"
)

// @title Stock Control API
// @version 1.0
// @description Inventory and staff management API with bearer token authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.New(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := kv.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("close store", slog.Any("error", err))
		}
	}()
	logger.Info("store ready", slog.String("backend", cfg.StoreBackend))

	if cfg.JWTSecret == "change-me" {
		logger.Warn("JWT_SECRET is the default value; set it before exposing the server")
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(store, nil)
	userRepo := repository.NewUserRepository(store, nil)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(store, logger)

	// Initialize services
	productService := service.NewProductService(productRepo)
	userService := service.NewUserService(userRepo)
	inventoryService := service.NewInventoryService(productRepo)
	initializer := service.NewInitializer(productRepo, userRepo, logger)

	if cfg.SeedOnStart {
		if _, err := initializer.Initialize(ctx); err != nil {
			return fmt.Errorf("seed on start: %w", err)
		}
	}

	m := metrics.New()

	e := echo.New()
	e.HidePort = true
	router.Register(e, cfg, router.Deps{
		Logger:     logger,
		JWT:        jwtService,
		Tokens:     tokenStore,
		Metrics:    m,
		Products:   handler.NewProductHandler(productService),
		Users:      handler.NewUserHandler(userService),
		Inventory:  handler.NewInventoryHandler(inventoryService, m),
		Initialize: handler.NewInitializeHandler(initializer),
		Auth:       handler.NewAuthHandler(tokenStore),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	addr := ":" + cfg.ServerPort
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", addr),
			slog.String("swagger", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html"))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
