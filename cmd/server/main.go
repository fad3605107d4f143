package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/inventory-stock-ledger/internal/cascade"
	"github.com/inventory-stock-ledger/internal/config"
	"github.com/inventory-stock-ledger/internal/data/mongo"
	"github.com/inventory-stock-ledger/internal/logger"
	"github.com/inventory-stock-ledger/internal/platform/messaging/producers"
	"github.com/inventory-stock-ledger/internal/platform/persistence"
	"github.com/inventory-stock-ledger/internal/reconcile"
	"github.com/inventory-stock-ledger/internal/server"
	"github.com/inventory-stock-ledger/internal/server/service"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("server")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize the document store with app context
	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	if err := mongo.EnsureIndexes(appCtx, log, mongoDB.Database()); err != nil {
		log.Error("Failed to ensure MongoDB indexes", "error", err)
		os.Exit(1)
	}

	// Initialize the low stock alert producer when enabled. A disabled
	// producer leaves alertProducer nil and the write path skips alerting.
	var alertProducer producers.MessagePublisher
	var lowStockProducer *producers.LowStockAlertProducer
	if cfg.Kafka.Enabled {
		lowStockProducer, err = producers.NewLowStockAlertProducer(appCtx, log, &cfg.Kafka)
		if err != nil {
			log.Error("Failed to initialize low stock alert producer", "error", err)
			os.Exit(1)
		}
		alertProducer = lowStockProducer
	}

	// Initialize repositories
	itemRepo := mongo.NewItemRepository(log, mongoDB.Database())
	transactionRepo := mongo.NewTransactionRepository(log, mongoDB.Database())

	// Initialize the stock derivation engine and the ledger cascade maintainer
	engine, err := reconcile.NewEngine(log, itemRepo, transactionRepo, cfg.WorkerPool.Size)
	if err != nil {
		log.Error("Failed to initialize stock derivation engine", "error", err)
		os.Exit(1)
	}
	maintainer := cascade.NewMaintainer(log, transactionRepo)

	// Initialize services
	itemService := service.NewItemService(log, itemRepo, transactionRepo, engine, maintainer)
	transactionService := service.NewTransactionService(log, transactionRepo, engine, alertProducer)

	// Initialize REST server
	srv := server.NewServer(log, cfg, itemService, transactionService)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := srv.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server
	if err = srv.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	// Release the derivation worker pool
	engine.Close()

	if lowStockProducer != nil {
		if err = lowStockProducer.Close(); err != nil {
			log.Error("Error closing low stock alert producer", "error", err)
		}
	}

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
