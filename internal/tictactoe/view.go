package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const messageDraw = "It's a draw!"

// View is everything a presentation needs to render one game.
type View struct {
	ID       string    `json:"id"`
	Board    [9]string `json:"board"`
	Turn     string    `json:"player_turn"`
	Status   string    `json:"status"`
	Winner   string    `json:"winner,omitempty"`
	Line     []int     `json:"line,omitempty"`
	Message  string    `json:"message"`
	Playable [9]bool   `json:"playable"`
}

func (that *GameController) View(id string) *View {
	outcome := that.Outcome()

	view := &View{
		ID:      id,
		Turn:    string(that.turn),
		Status:  outcome.Status,
		Winner:  string(outcome.Winner),
		Message: StatusMessage(outcome, that.turn),
	}

	for i, cell := range that.board {
		view.Board[i] = string(cell)
		view.Playable[i] = outcome.IsOngoing() && cell == entity.EmptyCell
	}

	if outcome.IsWin() {
		view.Line = outcome.Line[:]
	}

	return view
}

// StatusMessage is the one-line status shown under the board.
func StatusMessage(outcome entity.Outcome, turn entity.Mark) string {
	switch {
	case outcome.IsWin():
		return fmt.Sprintf("Player %s wins!", outcome.Winner)
	case outcome.IsDraw():
		return messageDraw
	default:
		return fmt.Sprintf("Player %s's turn", turn)
	}
}

// IsWinningCell reports whether cell belongs to the winning line.
func (that *View) IsWinningCell(cell int) bool {
	for _, i := range that.Line {
		if i == cell {
			return true
		}
	}
	return false
}
