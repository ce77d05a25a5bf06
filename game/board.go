package game

import "fmt"

const (
	Columns = 6
	Rows    = 6

	// CenterColumn sits on the most lines of the board.
	CenterColumn = Columns / 2
)

// PlayerID is a seat index, 0 or 1.
type PlayerID int

// NoPlayer marks an empty cell.
const NoPlayer PlayerID = -1

type Coord struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

// Board is the 6x6 grid. Row 0 is the top, Row 5 rests on the floor.
// The zero value is an empty board.
type Board struct {
	// cells hold owner+1 so that 0 means empty.
	cells [Rows][Columns]int8
	moves int
}

// LowestEmptyRow returns the row a piece dropped into column would land on,
// or false when the column is full.
func (b *Board) LowestEmptyRow(column int) (int, bool) {
	mustColumn(column)
	for row := Rows - 1; row >= 0; row-- {
		if b.cells[row][column] == 0 {
			return row, true
		}
	}
	return -1, false
}

// Place writes player into (column, row). The cell must be the column's
// current landing row; anything else is a bug in the caller and panics.
func (b *Board) Place(column, row int, player PlayerID) {
	mustColumn(column)
	if row < 0 || row >= Rows {
		panic(fmt.Sprintf("game: row %d out of range", row))
	}
	if player != 0 && player != 1 {
		panic(fmt.Sprintf("game: invalid player %d", player))
	}
	landing, ok := b.LowestEmptyRow(column)
	if !ok || landing != row {
		panic(fmt.Sprintf("game: placement at column %d row %d breaks gravity (landing row %d)", column, row, landing))
	}
	b.cells[row][column] = int8(player) + 1
	b.moves++
}

// CellOwner returns the player holding (column, row), or NoPlayer.
func (b *Board) CellOwner(column, row int) PlayerID {
	return PlayerID(b.cells[row][column]) - 1
}

func (b *Board) inside(column, row int) bool {
	return column >= 0 && column < Columns && row >= 0 && row < Rows
}

func (b *Board) Reset() {
	*b = Board{}
}

// Filled returns the number of occupied cells.
func (b *Board) Filled() int { return b.moves }

func (b *Board) Full() bool { return b.moves == Rows*Columns }

// Grid returns a copy of the owners, indexed [row][column].
func (b *Board) Grid() [Rows][Columns]PlayerID {
	var g [Rows][Columns]PlayerID
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			g[r][c] = b.CellOwner(c, r)
		}
	}
	return g
}

func mustColumn(column int) {
	if column < 0 || column >= Columns {
		panic(fmt.Sprintf("game: column %d out of range", column))
	}
}
