package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yooho-ai/trainee-engine/internal/config"
	"github.com/yooho-ai/trainee-engine/internal/handlers"
	"github.com/yooho-ai/trainee-engine/internal/logger"
	"github.com/yooho-ai/trainee-engine/internal/middleware"
	"github.com/yooho-ai/trainee-engine/internal/services"
	"github.com/yooho-ai/trainee-engine/internal/storage"
	"github.com/yooho-ai/trainee-engine/pkg/engine"
)

func main() {
	cfg := config.Load()

	log := logger.Setup(cfg)

	log.Info("Starting Trainee Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"chat_api_url", cfg.ChatAPIURL)

	chatService := services.NewYoohoService(cfg.ChatAPIURL, log)

	store := storage.NewRedisStorage(cfg.RedisURL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	gameEngine := engine.New(chatService, store, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/health", healthHandler)

	chatHandler := handlers.NewChatHandler(gameEngine, log)
	mux.Handle("/v1/chat", chatHandler)

	sessionHandler := handlers.NewSessionHandler(gameEngine, log)
	mux.Handle("/v1/session", sessionHandler)

	commandHandler := handlers.NewCommandHandler(gameEngine, log)
	mux.Handle("/v1/session/", commandHandler)

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// WriteTimeout removed to enable streaming - streaming endpoints handle their own timeouts
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
