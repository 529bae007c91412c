package main

import (
	"fakeout/internal/config"
	"fakeout/internal/database"
	"fakeout/internal/game"
	logger "fakeout/internal/logging"
	"fakeout/internal/repository"
	"fakeout/internal/router"
	"fakeout/internal/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load a local .env if present; real deployments set env vars directly.
	_ = godotenv.Load()

	// Initialize Logger
	log, err := logger.Init(".")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize configuration
	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Database
	database.Init(log)

	// Wire the game engine against the durable store
	gameConf := config.Conf.Game
	engine := game.NewEngine(log, repository.NewPostgres(), game.Config{
		TokensPerCorrect:       gameConf.TokensPerCorrect,
		SessionTokenCap:        gameConf.SessionTokenCap,
		CooldownWindow:         gameConf.CooldownWindow,
		MaxSessionsPerCooldown: gameConf.MaxSessionsPerCooldown,
	})

	// Periodic cleanup of finished and abandoned sessions
	sweeper := services.NewSweeper(log, engine.Sessions(), gameConf.SessionRetention, gameConf.SweepSchedule)
	if err := sweeper.Start(); err != nil {
		log.Fatal("Failed to start session sweeper", zap.Error(err))
	}
	defer sweeper.Stop()

	// Setup router, passing the logger to it
	r := router.Setup(log, engine)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
