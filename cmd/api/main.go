package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chowline/internal/auth"
	"chowline/internal/config"
	"chowline/internal/database"
	"chowline/internal/handler"
	"chowline/internal/payment"
	"chowline/internal/repository"
	"chowline/internal/router"
	"chowline/internal/service"
	"chowline/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting chowline API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	attributeRepo := repository.NewAttributeRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	restaurantRepo := repository.NewRestaurantRepository(pool, logger)
	transactionRepo := repository.NewTransactionRepository(pool, logger)

	// Initialize image storage with S3 and local fallback
	var store storage.Store
	uploadsDir := ""
	if cfg.S3.Enabled {
		store, err = storage.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 storage, falling back to local file system")
		}
	}
	if store == nil {
		store, err = storage.NewLocalStore(cfg.S3.LocalDir, "/public/uploads", logger)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
		uploadsDir = cfg.S3.LocalDir
		logger.Info().Str("dir", cfg.S3.LocalDir).Msg("using local file system for uploaded images")
	}

	// Initialize auth components
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Minute)
	authorizer := auth.NewAuthorizer(cfg.Auth.JWTSecret, auth.DefaultRuleset(), logger)

	// Initialize payment gateway
	gateway := payment.NewClient(cfg.Payment, logger)
	verifier := payment.NewVerifier(cfg.Payment.ChecksumKey)

	// Initialize services
	orderService := service.NewOrderService(orderRepo, attributeRepo, productRepo, userRepo, restaurantRepo, logger)
	catalogService := service.NewCatalogService(productRepo, attributeRepo, categoryRepo, logger)
	userService := service.NewUserService(userRepo, issuer, logger)
	restaurantService := service.NewRestaurantService(restaurantRepo, logger)
	paymentService := service.NewPaymentService(gateway, verifier, orderRepo, transactionRepo, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Product:    handler.NewProductHandler(catalogService, logger),
		Attribute:  handler.NewAttributeHandler(catalogService, logger),
		Category:   handler.NewCategoryHandler(catalogService, logger),
		Order:      handler.NewOrderHandler(orderService, logger),
		Restaurant: handler.NewRestaurantHandler(restaurantService, logger),
		User:       handler.NewUserHandler(userService, logger),
		Payment:    handler.NewPaymentHandler(paymentService, logger),
		Upload:     handler.NewUploadHandler(store, logger),
	}

	// Initialize router
	mux := router.New(handlers, authorizer, uploadsDir, logger)

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
