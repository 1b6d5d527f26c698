package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/config"
	"github.com/rocketscienceinc/tictactoe/internal/repository"
	"github.com/rocketscienceinc/tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
	"github.com/rocketscienceinc/tictactoe/transport/rest"
	"github.com/rocketscienceinc/tictactoe/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gameRepo, closeStorage, err := newGameRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	gameManager := usecase.NewGameManager(logger, gameRepo)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		httpErrCh <- rest.New(logger, gameManager, conf.SessionTTL).Start(ctx, conf.HTTPPort)
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsErrCh <- websocket.New(logger, gameManager, conf.SessionTTL).Start(ctx, conf.SocketPort)
	}()

	// both servers are drained before storage is closed
	var httpErr, wsErr error
	select {
	case httpErr = <-httpErrCh:
		cancel()
		wsErr = <-wsErrCh
	case wsErr = <-wsErrCh:
		cancel()
		httpErr = <-httpErrCh
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		httpErr, wsErr = <-httpErrCh, <-wsErrCh
	}

	if httpErr != nil {
		return fmt.Errorf("HTTP server error: %w", httpErr)
	}
	if wsErr != nil {
		return fmt.Errorf("WebSocket server error: %w", wsErr)
	}

	return nil
}

func newGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func() error, error) {
	switch conf.Storage {
	case config.StorageMemory:
		return repository.NewMemoryGameRepository(conf.SessionTTL), func() error { return nil }, nil
	case config.StorageRedis:
		redisAddr := conf.Redis.GetRedisAddr()
		if redisAddr == "" {
			return nil, nil, apperror.ErrEmptyRedisAddr
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewGameRepository(redisStorage.Connection, conf.SessionTTL), redisStorage.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", apperror.ErrUnknownStorage, conf.Storage)
	}
}
