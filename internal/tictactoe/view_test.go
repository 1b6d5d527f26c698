package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

func TestGameController_View(t *testing.T) {
	t.Run("Fresh game", func(t *testing.T) {
		// Given: a new game
		game := NewGameController()

		// When: building its view
		view := game.View("abc")

		// Then: every cell is playable and X is to move
		assert.Equal(t, "abc", view.ID)
		assert.Equal(t, entity.StatusOngoing, view.Status)
		assert.Equal(t, "Player X's turn", view.Message)
		assert.Equal(t, [9]bool{true, true, true, true, true, true, true, true, true}, view.Playable)
		assert.Empty(t, view.Line)
		assert.Empty(t, view.Winner)
	})

	t.Run("Occupied cells are not playable", func(t *testing.T) {
		// Given: X took the centre
		game := NewGameController()
		playAll(t, game, 4)

		// When: building its view
		view := game.View("abc")

		// Then: the centre is disabled and O is to move
		assert.False(t, view.Playable[4])
		assert.True(t, view.Playable[0])
		assert.Equal(t, "X", view.Board[4])
		assert.Equal(t, "Player O's turn", view.Message)
	})

	t.Run("Win exposes the line and disables the board", func(t *testing.T) {
		// Given: X won on the main diagonal
		game := NewGameController()
		playAll(t, game, 0, 1, 4, 2, 8)

		// When: building its view
		view := game.View("abc")

		// Then: the line, winner and message are set and nothing is playable
		assert.Equal(t, entity.StatusWin, view.Status)
		assert.Equal(t, "X", view.Winner)
		assert.Equal(t, []int{0, 4, 8}, view.Line)
		assert.Equal(t, "Player X wins!", view.Message)
		assert.Equal(t, [9]bool{}, view.Playable)
		assert.True(t, view.IsWinningCell(4))
		assert.False(t, view.IsWinningCell(1))
	})

	t.Run("Draw message", func(t *testing.T) {
		// Given: a drawn game
		game := NewGameController()
		playAll(t, game, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// When: building its view
		view := game.View("abc")

		// Then: the draw message is shown
		assert.Equal(t, entity.StatusDraw, view.Status)
		assert.Equal(t, "It's a draw!", view.Message)
		assert.Empty(t, view.Line)
	})
}

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		name    string
		outcome entity.Outcome
		turn    entity.Mark
		want    string
	}{
		{"X to move", entity.Outcome{Status: entity.StatusOngoing}, entity.PlayerX, "Player X's turn"},
		{"O to move", entity.Outcome{Status: entity.StatusOngoing}, entity.PlayerO, "Player O's turn"},
		{"O wins", entity.Outcome{Status: entity.StatusWin, Winner: entity.PlayerO}, entity.PlayerO, "Player O wins!"},
		{"draw", entity.Outcome{Status: entity.StatusDraw}, entity.PlayerX, "It's a draw!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusMessage(tt.outcome, tt.turn))
		})
	}
}
