package entity

const (
	StatusOngoing = "ongoing"
	StatusWin     = "win"
	StatusDraw    = "draw"
)

// Mark is the symbol a player places. The zero value is an empty cell.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

// BoardSize is the number of cells on the 3x3 board.
const BoardSize = 9

type Board [BoardSize]Mark

// Line is a triple of board indices.
type Line [3]int

// WinCombos lists every winning line in evaluation order:
// rows top to bottom, columns left to right, main diagonal, anti-diagonal.
var WinCombos = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Outcome is derived from a board, never stored.
type Outcome struct {
	Status string
	Winner Mark
	Line   Line
}

func (that Outcome) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that Outcome) IsWin() bool {
	return that.Status == StatusWin
}

func (that Outcome) IsDraw() bool {
	return that.Status == StatusDraw
}

func (that Outcome) IsFinished() bool {
	return that.IsWin() || that.IsDraw()
}

// Evaluate reports the outcome of the board. The first matching line in
// WinCombos order wins.
func Evaluate(board Board) Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Outcome{Status: StatusWin, Winner: a, Line: combo}
		}
	}

	// the game will continue until all the squares are full
	if !board.IsFull() {
		return Outcome{Status: StatusOngoing}
	}

	return Outcome{Status: StatusDraw}
}

func (that Mark) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other player's mark.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// Count returns how many cells hold the mark.
func (that Board) Count(mark Mark) int {
	n := 0
	for _, cell := range that {
		if cell == mark {
			n++
		}
	}
	return n
}

// HasLine reports whether the mark fills any winning line.
func (that Board) HasLine(mark Mark) bool {
	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}
	return false
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}
