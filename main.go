// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"storefront/cmd"
	"storefront/internal/data/repository"
	"storefront/internal/wire"
	"storefront/pkg/database"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Load config
	config, err := utils.LoadConfig(cmd.ConfigPath(args))
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using console logger.", err)
		logger = zap.NewExample()
	}
	defer logger.Sync()

	logger.Debug("Starting application",
		zap.String("app", config.App.Name),
		zap.String("db_path", config.Database.Path),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Open database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Error("Failed to open database", zap.Error(err))
		return 1
	}
	defer db.Close()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Bootstrap administrator
	if err := app.Service.Auth.EnsureAdmin(ctx); err != nil {
		logger.Error("Failed to bootstrap administrator", zap.Error(err))
		return 1
	}

	return cmd.Execute(ctx, app, args, logger)
}
