package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

const (
	gridSize = 3
	gameID   = "local"
)

// Model is a hot-seat game in the terminal: both players share the keyboard.
type Model struct {
	game   *tictactoe.GameController
	cursor int

	keys keyMap
	help help.Model
}

func New() Model {
	return Model{
		game:   tictactoe.NewGameController(),
		cursor: 4,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Reset):
		m.game.Reset()
	case key.Matches(msg, m.keys.Up):
		if m.cursor >= gridSize {
			m.cursor -= gridSize
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < entity.BoardSize-gridSize {
			m.cursor += gridSize
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor%gridSize > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor%gridSize < gridSize-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Place):
		// rejected moves are ignored, the board already shows why
		m.game.MakeTurn(m.cursor)
	case key.Matches(msg, m.keys.Cell):
		m.cursor = int(msg.String()[0] - '1')
		m.game.MakeTurn(m.cursor)
	}

	return m, nil
}

func (m Model) View() string {
	view := m.game.View(gameID)

	rows := make([]string, 0, gridSize)
	for row := range gridSize {
		cells := make([]string, 0, gridSize)
		for col := range gridSize {
			cells = append(cells, m.renderCell(view, row*gridSize+col))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Tic Tac Toe"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n\n")
	b.WriteString(renderStatus(view))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return panelStyle.Render(b.String())
}

func (m Model) renderCell(view *tictactoe.View, cell int) string {
	style := cellStyle
	switch {
	case view.IsWinningCell(cell):
		style = winningCellStyle
	case cell == m.cursor && view.Playable[cell]:
		style = cursorCellStyle
	}

	return style.Render(renderMark(entity.Mark(view.Board[cell])))
}

func renderMark(mark entity.Mark) string {
	switch mark {
	case entity.PlayerX:
		return markXStyle.Render(string(mark))
	case entity.PlayerO:
		return markOStyle.Render(string(mark))
	default:
		return " "
	}
}

func renderStatus(view *tictactoe.View) string {
	switch view.Status {
	case entity.StatusWin:
		return winStyle.Render(view.Message)
	case entity.StatusDraw:
		return drawStyle.Render(view.Message)
	}

	if entity.Mark(view.Turn) == entity.PlayerX {
		return turnStyle.Foreground(markXStyle.GetForeground()).Render(view.Message)
	}
	return turnStyle.Foreground(markOStyle.GetForeground()).Render(view.Message)
}
