package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// GameController owns the board and the turn of one game.
// It is not safe for concurrent use; callers serialise access.
type GameController struct {
	board entity.Board
	turn  entity.Mark
}

func NewGameController() *GameController {
	return &GameController{
		turn: entity.PlayerX,
	}
}

// Load rebuilds a controller from a stored snapshot.
func Load(state *entity.GameState) (*GameController, error) {
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load game %s: %w", state.ID, err)
	}

	return &GameController{
		board: state.BoardMarks(),
		turn:  entity.Mark(state.Turn),
	}, nil
}

// MakeTurn places the current player's mark on cell. It reports false and
// leaves the game untouched when the cell is out of range or occupied, or
// when the game is already decided.
func (that *GameController) MakeTurn(cell int) bool {
	if !that.CanPlay(cell) {
		return false
	}

	that.board[cell] = that.turn

	// the turn is frozen once the game is decided
	if that.Outcome().IsOngoing() {
		that.turn = that.turn.Opponent()
	}

	return true
}

// CanPlay reports whether MakeTurn(cell) would be accepted.
func (that *GameController) CanPlay(cell int) bool {
	if !entity.IsValidCell(cell) {
		return false
	}

	if that.board[cell] != entity.EmptyCell {
		return false
	}

	return that.Outcome().IsOngoing()
}

func (that *GameController) Reset() {
	that.board = entity.Board{}
	that.turn = entity.PlayerX
}

func (that *GameController) Outcome() entity.Outcome {
	return entity.Evaluate(that.board)
}

func (that *GameController) Board() entity.Board {
	return that.board
}

func (that *GameController) Turn() entity.Mark {
	return that.turn
}

// Snapshot returns the storable state of the game under id.
func (that *GameController) Snapshot(id string) *entity.GameState {
	state := &entity.GameState{
		ID:   id,
		Turn: string(that.turn),
	}

	for i, cell := range that.board {
		state.Board[i] = string(cell)
	}

	return state
}
