// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mess-review/cmd"
	"mess-review/internal/data/repository"
	"mess-review/internal/wire"
	"mess-review/pkg/cache"
	"mess-review/pkg/database"
	"mess-review/pkg/mailer"
	"mess-review/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.Migrate {
		if err := database.Migrate(ctx, db, logger); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	feedCache, err := cache.New(config.Cache.Size, config.Cache.TTL)
	if err != nil {
		logger.Fatal("Failed to create review cache", zap.Error(err))
	}

	sender := mailer.New(config.Email)
	if !sender.Enabled() {
		logger.Warn("SMTP not configured, complaint notifications disabled")
	}

	// Wire all dependencies
	app, err := wire.Wiring(repos, config, feedCache, sender, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	if config.Seed.Enabled {
		if err := app.Service.Seeder.Seed(ctx); err != nil {
			logger.Fatal("Failed to seed database", zap.Error(err))
		}
	}

	go cmd.SessionJanitor(ctx, repos.Session, time.Hour, logger)

	// Start server
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}

	logger.Info("Server stopped")
}
