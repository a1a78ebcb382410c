// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tokenmart/ledger-backend/internal/broker"
	"github.com/tokenmart/ledger-backend/internal/cache"
	"github.com/tokenmart/ledger-backend/internal/config"
	"github.com/tokenmart/ledger-backend/internal/database"
	"github.com/tokenmart/ledger-backend/internal/router"
	"github.com/tokenmart/ledger-backend/internal/services"
	"github.com/tokenmart/ledger-backend/internal/store/postgres"
	"github.com/tokenmart/ledger-backend/internal/token"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close(db)

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize ledger store and seed platform state
	st := postgres.New(db)
	if err := st.Seed(context.Background(), cfg.Ledger.DefaultFeeRateBps); err != nil {
		log.Fatal("Failed to seed platform state:", err)
	}

	// Token ledger. The in-process bank backs development; production wires
	// the chain bridge here instead.
	bank := token.NewBank(cfg.Ledger.CustodyAccount)

	// Optional Kafka event feed
	var events services.EventSink
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(strings.Split(cfg.Kafka.Brokers, ","), cfg.Kafka.Topic)
		defer producer.Close()
		events = producer
	}

	// Optional Redis ownership cache
	var owned *cache.PurchaseCache
	if cfg.Redis.Enabled {
		owned, err = cache.NewPurchaseCache(
			fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			cfg.Redis.Password, cfg.Redis.DB,
		)
		if err != nil {
			log.Fatal("Failed to connect to redis:", err)
		}
		defer owned.Close()
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := router.Initialize(st, bank, events, owned, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
