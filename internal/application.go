package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/bowling-backend/internal/bowling"
	"github.com/rocketscienceinc/bowling-backend/internal/config"
	"github.com/rocketscienceinc/bowling-backend/internal/repository"
	"github.com/rocketscienceinc/bowling-backend/internal/repository/storage"
	"github.com/rocketscienceinc/bowling-backend/internal/usecase"
	"github.com/rocketscienceinc/bowling-backend/transport/rest"
)

var (
	ErrAddrNotFound = errors.New("redis address string is empty")
	ErrInvalidGames = errors.New("some games could not be scored")
)

// RunApp - runs the scoring service.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage.Connection, conf.Redis.GameTTL)
	bowlerRepo := repository.NewBowlerRepository(redisStorage.Connection)
	gameManager := usecase.NewGameManager(logger, gameRepo, bowlerRepo)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = rest.Start(ctx, conf.HTTPPort, rest.NewHandler(logger, gameManager)); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// RunCLI scores every argument and prints "Score: <n> for <arg>". A game
// that cannot be parsed is logged and skipped.
func RunCLI(logger *slog.Logger, out io.Writer, args []string) error {
	log := logger.With("component", "cli")

	failed := 0
	for _, arg := range args {
		score, err := bowling.TotalScoreFromText(arg)
		if err != nil {
			log.Error("could not score game", "game", arg, "error", err)
			failed++
			continue
		}

		if _, err = fmt.Fprintf(out, "Score: %d for %s\n", score, arg); err != nil {
			return fmt.Errorf("failed to write score: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrInvalidGames, failed, len(args))
	}

	return nil
}
