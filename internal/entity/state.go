package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
)

// GameState is the stored snapshot of one session's game.
type GameState struct {
	ID    string    `json:"id"`
	Board [9]string `json:"board"`
	Turn  string    `json:"player_turn"`
}

// Validate checks that the snapshot could have been produced by legal play.
func (that *GameState) Validate() error {
	var board Board
	for i, cell := range that.Board {
		mark := Mark(cell)
		if mark != EmptyCell && !mark.IsValid() {
			return fmt.Errorf("%w: cell %d holds %q", apperror.ErrCorruptedGame, i, cell)
		}
		board[i] = mark
	}

	turn := Mark(that.Turn)
	if !turn.IsValid() {
		return fmt.Errorf("%w: turn %q", apperror.ErrCorruptedGame, that.Turn)
	}

	diff := board.Count(PlayerX) - board.Count(PlayerO)
	if diff != 0 && diff != 1 {
		return fmt.Errorf("%w: X and O counts differ by %d", apperror.ErrCorruptedGame, diff)
	}

	outcome := Evaluate(board)

	// while the game runs the next mark follows from the counts
	if outcome.IsOngoing() && turn != nextTurn(diff) {
		return fmt.Errorf("%w: turn %s out of order", apperror.ErrCorruptedGame, turn)
	}

	if !outcome.IsWin() {
		return nil
	}

	if board.HasLine(outcome.Winner.Opponent()) {
		return fmt.Errorf("%w: both X and O hold a line", apperror.ErrCorruptedGame)
	}

	// the winner made the last move
	if outcome.Winner != lastMover(diff) {
		return fmt.Errorf("%w: %s wins but X and O counts differ by %d", apperror.ErrCorruptedGame, outcome.Winner, diff)
	}

	return nil
}

// BoardMarks converts the stored board into marks. Call Validate first.
func (that *GameState) BoardMarks() Board {
	var board Board
	for i, cell := range that.Board {
		board[i] = Mark(cell)
	}
	return board
}

func lastMover(diff int) Mark {
	return nextTurn(diff).Opponent()
}

func nextTurn(diff int) Mark {
	if diff == 0 {
		return PlayerX
	}
	return PlayerO
}
