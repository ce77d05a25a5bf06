// utils/utils.go

package utils

import (
	"github.com/cameroncuttingedge/titration_four/game"
	"github.com/google/uuid"
)

func GenerateUUIDString() string {
	id := uuid.New()
	return id.String()
}

// Glyph is the terminal symbol for a polarity's pieces.
func Glyph(p game.Polarity) string {
	if p == game.Base {
		return "B"
	}
	return "A"
}

// ConvertBoardToStrings maps each owner in grid to its player's glyph, "."
// for empty cells.
func ConvertBoardToStrings(grid [game.Rows][game.Columns]game.PlayerID, players [2]game.Player) [game.Rows][game.Columns]string {
	var stringBoard [game.Rows][game.Columns]string
	for i, row := range grid {
		for j, cell := range row {
			if cell == game.NoPlayer {
				stringBoard[i][j] = "."
				continue
			}
			stringBoard[i][j] = Glyph(players[cell].Polarity)
		}
	}
	return stringBoard
}
