package game

// directions are horizontal, vertical, and the two diagonals, as
// (column, row) steps. Row grows downward, so {1, -1} climbs to the right.
var directions = [4][2]int{{1, 0}, {0, 1}, {1, -1}, {1, 1}}

// HasFourInARow reports whether the piece just placed at (column, row)
// completes a line of four or more for player.
func HasFourInARow(b *Board, column, row int, player PlayerID) bool {
	return len(WinningLine(b, column, row, player)) >= 4
}

// WinningLine returns the cells of the first line through (column, row) that
// is at least four long, ordered along the axis, or nil.
func WinningLine(b *Board, column, row int, player PlayerID) []Coord {
	for _, d := range directions {
		back := run(b, column, row, -d[0], -d[1], player)
		fwd := run(b, column, row, d[0], d[1], player)
		if 1+back+fwd < 4 {
			continue
		}
		line := make([]Coord, 0, 1+back+fwd)
		for i := back; i >= -fwd; i-- {
			line = append(line, Coord{Column: column - d[0]*i, Row: row - d[1]*i})
		}
		return line
	}
	return nil
}

// run counts consecutive cells owned by player stepping (dc, dr) away from
// (column, row), not counting the start.
func run(b *Board, column, row, dc, dr int, player PlayerID) int {
	n := 0
	for c, r := column+dc, row+dr; b.inside(c, r) && b.CellOwner(c, r) == player; c, r = c+dc, r+dr {
		n++
	}
	return n
}
