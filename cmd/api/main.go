package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"lifeseed/internal/app"
	"lifeseed/internal/config"
	"lifeseed/internal/logger"
)

// @title           Lifeseed API
// @version         1.0
// @description     Lifeseed tracks habits, plans tasks and goals, and records personal finances.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	return application.Run(ctx)
}
