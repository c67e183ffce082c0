// Package main is the entry point for the betting league API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"inova-palpites/internal/config"
	"inova-palpites/internal/pkg/db"
	"inova-palpites/internal/pkg/lock"
	"inova-palpites/internal/repository"
	"inova-palpites/internal/server"
	"inova-palpites/internal/service"
	"inova-palpites/internal/storage"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal().Msg("auth.jwt_secret must be configured")
	}

	log.Info().Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// Run database migrations
	if err := db.Migrate(ctx, dbPool.Pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize object storage; uploads stay disabled when unconfigured.
	var uploader storage.FileUploader
	if cfg.Storage.Configured() {
		uploader, err = storage.NewR2Uploader(ctx, &cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize object storage")
		}
		log.Info().Str("bucket", cfg.Storage.Bucket).Msg("Object storage initialized")
	} else {
		log.Warn().Msg("Object storage not configured, file uploads disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(dbPool.Pool)
	playerRepo := repository.NewPlayerRepository(dbPool.Pool)
	tournamentRepo := repository.NewTournamentRepository(dbPool.Pool)
	betRepo := repository.NewBetRepository(dbPool.Pool)
	achievementRepo := repository.NewAchievementRepository(dbPool.Pool)

	// Initialize user lock
	userLock := lock.NewUserLock()

	// Initialize services
	accountService := service.NewAccountService(userRepo, achievementRepo, uploader)
	rosterService := service.NewRosterService(playerRepo)
	tournamentService := service.NewTournamentService(tournamentRepo, uploader)
	betService := service.NewBetService(tournamentRepo, playerRepo, betRepo, userLock, nil)
	resultService := service.NewResultService(tournamentRepo)
	leaderboardService := service.NewLeaderboardService(tournamentRepo, userRepo, playerRepo, betRepo)

	srv := server.New(&server.Dependencies{
		Config:             cfg,
		AccountService:     accountService,
		RosterService:      rosterService,
		TournamentService:  tournamentService,
		BetService:         betService,
		ResultService:      resultService,
		LeaderboardService: leaderboardService,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}
