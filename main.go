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

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hakivo/chatd/internal/adapter/agent"
	"github.com/hakivo/chatd/internal/adapter/docgen"
	"github.com/hakivo/chatd/internal/config"
	"github.com/hakivo/chatd/internal/repository"
	"github.com/hakivo/chatd/internal/service"
	transport "github.com/hakivo/chatd/internal/transport/http"
	"github.com/hakivo/chatd/internal/tools"
	"github.com/hakivo/chatd/policy"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	sugar.Infow("starting chatd",
		"port", cfg.Port,
		"database", cfg.DatabaseURL,
		"mode", cfg.Mode,
	)

	// Initialize store
	db, err := repository.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		sugar.Fatalw("failed to initialize store", "error", err)
	}
	defer db.Close()

	// Initialize tool registry backed by the data API
	dataAPI := tools.NewDataAPI(cfg.DataAPIURL, cfg.DataAPIKey, cfg.DataAPITimeout)
	registry := tools.NewBuiltinRegistry(dataAPI)

	// Initialize agent client and document generator
	agentClient, err := agent.NewClient(cfg, registry, sugar)
	if err != nil {
		sugar.Fatalw("failed to initialize agent client", "error", err)
	}
	generator, err := docgen.NewGenerator(cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to initialize document generator", "error", err)
	}
	sugar.Infow("backends ready", "agent", agentClient.Name(), "docgen", generator.Name())

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		sugar.Fatalw("failed to initialize policy engine", "error", err)
	}

	// Initialize service and server
	svc := service.New(db, agentClient, generator, policyEngine, cfg, sugar)
	server := transport.NewServer(svc, cfg)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("failed to start server", "error", err)
		}
	}()

	sugar.Infow("chatd started", "port", cfg.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sugar.Info("shutting down chatd")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("failed to shutdown server gracefully", "error", err)
	}

	sugar.Info("chatd stopped")
}
