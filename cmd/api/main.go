package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/casefile-games/mystery-engine/internal/config"
	"github.com/casefile-games/mystery-engine/internal/handlers"
	"github.com/casefile-games/mystery-engine/internal/logger"
	"github.com/casefile-games/mystery-engine/internal/middleware"
	"github.com/casefile-games/mystery-engine/internal/services"
	"github.com/casefile-games/mystery-engine/internal/storage"
	"github.com/casefile-games/mystery-engine/pkg/engine"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Mystery Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"storage_backend", cfg.StorageBackend,
		"ai_provider", cfg.AIProvider)

	var store storage.Storage
	switch strings.ToLower(cfg.StorageBackend) {
	case config.StorageRedis:
		rs, err := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, log)
		if err != nil {
			log.Error("Failed to configure Redis storage", "error", err)
			os.Exit(1)
		}
		waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if err := rs.WaitForConnection(waitCtx); err != nil {
			waitCancel()
			log.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		waitCancel()
		store = rs
		log.Info("Using Redis storage backend")
	case config.StorageSQLite:
		ss, err := storage.NewSQLiteStorage(cfg.SQLitePath, cfg.DataDir, log)
		if err != nil {
			log.Error("Failed to open SQLite storage", "error", err)
			os.Exit(1)
		}
		store = ss
		log.Info("Using SQLite storage backend", "path", cfg.SQLitePath)
	default:
		log.Error("Invalid storage backend specified", "backend", cfg.StorageBackend,
			"supported", []string{config.StorageRedis, config.StorageSQLite})
		os.Exit(1)
	}

	var aiService services.AIService
	switch strings.ToLower(cfg.AIProvider) {
	case config.ProviderGemini:
		aiService = services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, log)
		log.Info("Using Gemini AI provider", "model", cfg.GeminiModel)
	case config.ProviderMock:
		aiService = services.NewMockAIService()
		log.Info("Using mock AI provider")
	default:
		log.Error("Invalid AI provider specified", "provider", cfg.AIProvider,
			"supported", []string{config.ProviderGemini, config.ProviderMock})
		os.Exit(1)
	}

	autosaver := services.NewAutosaver(store, cfg.AutosaveDebounce, log)
	resolver := engine.New(cfg.Language, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/health", healthHandler)

	gamesHandler := handlers.NewGamesHandler(store, log)
	mux.Handle("/v1/games", gamesHandler)
	mux.Handle("/v1/games/", gamesHandler)

	sessionHandler := handlers.NewSessionHandler(store, autosaver, log)
	mux.Handle("/v1/sessions", sessionHandler)
	mux.Handle("/v1/sessions/{id}", sessionHandler)

	actionHandler := handlers.NewActionHandler(store, autosaver, resolver, log)
	mux.Handle("/v1/sessions/{id}/actions", actionHandler)

	chatHandler := handlers.NewChatHandler(store, autosaver, aiService, resolver, log)
	mux.Handle("/v1/sessions/{id}/chat", chatHandler)

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	// Flush pending autosaves before the storage goes away.
	if err := autosaver.Close(); err != nil {
		log.Error("Error flushing autosaves", "error", err)
	}
	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}
