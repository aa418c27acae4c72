package application

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/columns/internal/columns"
	"github.com/rocketscienceinc/columns/internal/config"
	"github.com/rocketscienceinc/columns/internal/repository"
	"github.com/rocketscienceinc/columns/internal/repository/storage"
	"github.com/rocketscienceinc/columns/internal/usecase"
	"github.com/rocketscienceinc/columns/transport/rest"
)

// RunApp - runs the application.
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

	eventRepo, closeEvents, err := newEventRepository(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeEvents()

	gameManager := usecase.NewGameManager(logger, eventRepo, conf.Board.Rows, conf.Board.Columns, func() columns.Source {
		return columns.NewRandomSource(rand.Uint64())
	})

	if conf.TickInterval > 0 {
		go gameManager.Run(ctx, conf.TickInterval)
	}

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = rest.NewServer(logger, gameManager).Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")
	return nil
}

func newEventRepository(ctx context.Context, logger *slog.Logger, conf *config.Config) (repository.EventRepository, func(), error) {
	if !conf.Redis.Enabled {
		return repository.NewLogEventRepository(logger), func() {}, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeStorage := func() {
		if err := redisStorage.Close(); err != nil {
			logger.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewEventRepository(redisStorage.Connection, conf.Redis.Channel), closeStorage, nil
}
