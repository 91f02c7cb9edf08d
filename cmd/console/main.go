package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yooho-ai/trainee-engine/internal/config"
	"github.com/yooho-ai/trainee-engine/internal/logger"
	"github.com/yooho-ai/trainee-engine/internal/services"
	"github.com/yooho-ai/trainee-engine/internal/storage"
	"github.com/yooho-ai/trainee-engine/pkg/engine"
)

func main() {
	cfg := config.Load()

	// The TUI owns stdout, so route logs to a file.
	logPath := getEnv("CONSOLE_LOG_FILE", "console.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logFile.Close() // Ignore error in defer
	}()

	log := logger.SetupWriter(cfg, logFile)

	chatService := services.NewYoohoService(cfg.ChatAPIURL, log)

	// Prefer Redis when it answers quickly; otherwise run with an
	// in-memory save slot so the console works standalone.
	var store storage.Storage
	redisStore := storage.NewRedisStorage(cfg.RedisURL, log)
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redisStore.Ping(pingCtx); err != nil {
		log.Warn("Redis unavailable, using in-memory saves", "error", err)
		_ = redisStore.Close()
		store = storage.NewMock()
	} else {
		store = redisStore
	}
	pingCancel()

	gameEngine := engine.New(chatService, store, log)

	p := tea.NewProgram(NewConsoleUI(gameEngine),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
