package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hinglaj-store/internal/auth"
	"hinglaj-store/internal/config"
	"hinglaj-store/internal/database"
	"hinglaj-store/internal/handler"
	"hinglaj-store/internal/photo"
	"hinglaj-store/internal/repository"
	"hinglaj-store/internal/router"
	"hinglaj-store/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting hinglaj-store API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Ensure the schema exists
	if err := database.CreateSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize repositories
	itemRepo := repository.NewItemRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize photo storage with S3 and local fallback
	localStore, err := photo.NewLocalStore(cfg.Upload.Dir, cfg.Upload.PublicPath, cfg.Upload.MaxWidth, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize photo storage: %w", err)
	}

	var photoStore photo.Store = localStore
	if cfg.S3.Enabled {
		s3Store, err := photo.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 photo store, falling back to local file system")
		} else {
			photoStore = s3Store
		}
	} else {
		logger.Info().Msg("using local file system for product photos (S3 disabled)")
	}

	// Initialize token manager
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize services
	itemService := service.NewItemService(itemRepo, photoStore, logger)
	orderService := service.NewOrderService(orderRepo, itemRepo, logger)
	authService := service.NewAuthService(userRepo, tokens, logger)
	customerService := service.NewCustomerService(userRepo, orderRepo, logger)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	itemHandler := handler.NewItemHandler(itemService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	customerHandler := handler.NewCustomerHandler(customerService, logger)

	// Initialize router. Uploaded photos are only served locally when the
	// local store is in use.
	uploadDir := cfg.Upload.Dir
	if cfg.S3.Enabled {
		uploadDir = ""
	}
	mux := router.New(router.Config{
		AuthHandler:     authHandler,
		ItemHandler:     itemHandler,
		OrderHandler:    orderHandler,
		CustomerHandler: customerHandler,
		Tokens:          tokens,
		UploadDir:       uploadDir,
		UploadPublic:    cfg.Upload.PublicPath,
		Logger:          logger,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
