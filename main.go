package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"turbochat/api"
	"turbochat/config"
	"turbochat/llmclient"
	"turbochat/service"
	"turbochat/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting turbochat...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Completion API: %s", cfg.CompletionBaseURL)

	// Initialize persistence
	kv, err := store.NewSQLiteKV(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize persistence: %v", err)
	}
	defer kv.Close()

	convStore, err := store.NewConversationStore(kv)
	if err != nil {
		log.Fatalf("Failed to load conversation store: %v", err)
	}

	// Initialize completion client
	llmClient := llmclient.NewClient(cfg.CompletionBaseURL, cfg.LLMTimeout)

	// Initialize service
	svc := service.New(convStore, llmClient, cfg)

	// Initialize handler
	h := api.NewHandler(svc)

	// Create Echo server
	server := echo.New()
	server.HideBanner = true

	// Middleware
	server.Use(middleware.Logger())
	server.Use(middleware.Recover())
	server.Use(middleware.CORS())

	// Register routes
	h.RegisterRoutes(server)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down turbochat...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("turbochat stopped")
}
