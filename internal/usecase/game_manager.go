package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.GameState) error
	GetByID(ctx context.Context, id string) (*entity.GameState, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager runs the game of each session. Operations are applied one at a
// time: each loads the session's game, changes it and stores it back.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	mu    sync.Mutex
	newID func() string
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
		newID:    uuid.NewString,
	}
}

// GetOrCreateGame returns the session's game, starting a new one when the
// session is empty or its game is gone.
func (that *GameManager) GetOrCreateGame(ctx context.Context, sessionID string) (*tictactoe.View, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	id, game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return game.View(id), nil
}

// MakeTurn applies a move for the player whose turn it is. A rejected move is
// not an error: accepted is false and the game is returned unchanged.
func (that *GameManager) MakeTurn(ctx context.Context, sessionID string, cell int) (*tictactoe.View, bool, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", sessionID, "cell", cell)

	that.mu.Lock()
	defer that.mu.Unlock()

	id, game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	if !game.MakeTurn(cell) {
		log.Debug("turn rejected")
		return game.View(id), false, nil
	}

	if err = that.updateGame(ctx, id, game); err != nil {
		return nil, false, err
	}

	if outcome := game.Outcome(); outcome.IsFinished() {
		log.Info("game finished", "status", outcome.Status, "winner", outcome.Winner)
	}

	return game.View(id), true, nil
}

func (that *GameManager) ResetGame(ctx context.Context, sessionID string) (*tictactoe.View, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	id, game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	game.Reset()

	if err = that.updateGame(ctx, id, game); err != nil {
		return nil, err
	}

	that.logger.Debug("game reset", "gameID", id)

	return game.View(id), nil
}

// EndGame drops the session's game. Ending a missing game is not an error.
func (that *GameManager) EndGame(ctx context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	err := that.gameRepo.DeleteByID(ctx, sessionID)
	if err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

func (that *GameManager) getOrCreateGame(ctx context.Context, sessionID string) (string, *tictactoe.GameController, error) {
	log := that.logger.With("method", "getOrCreateGame")

	if sessionID == "" {
		return that.createGame(ctx, that.newID())
	}

	state, err := that.gameRepo.GetByID(ctx, sessionID)
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return that.createGame(ctx, sessionID)
	case errors.Is(err, apperror.ErrCorruptedGame):
		log.Warn("discarding corrupted game", "gameID", sessionID, "error", err)
		return that.createGame(ctx, sessionID)
	case err != nil:
		return "", nil, fmt.Errorf("failed to get game: %w", err)
	}

	game, err := tictactoe.Load(state)
	if err != nil {
		log.Warn("discarding corrupted game", "gameID", sessionID, "error", err)
		return that.createGame(ctx, sessionID)
	}

	return sessionID, game, nil
}

func (that *GameManager) createGame(ctx context.Context, id string) (string, *tictactoe.GameController, error) {
	game := tictactoe.NewGameController()

	if err := that.updateGame(ctx, id, game); err != nil {
		return "", nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", id)

	return id, game, nil
}

func (that *GameManager) updateGame(ctx context.Context, id string, game *tictactoe.GameController) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game.Snapshot(id)); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
