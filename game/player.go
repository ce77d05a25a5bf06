package game

import "fmt"

// Polarity decides which side of the pH scale a player pushes toward.
type Polarity string

const (
	Acid Polarity = "acid"
	Base Polarity = "base"
)

type Player struct {
	ID       PlayerID `json:"id"`
	Name     string   `json:"name"`
	Polarity Polarity `json:"polarity"`
}

// Role is the display label of the player's polarity.
func (p Player) Role() string {
	if p.Polarity == Base {
		return "Base"
	}
	return "Acid"
}

// Color is the piece color the UI paints for the player.
func (p Player) Color() string {
	if p.Polarity == Base {
		return "#3b82f6"
	}
	return "#ef4444"
}

func defaultName(seat PlayerID) string {
	return fmt.Sprintf("Player %d", seat+1)
}

func (p Polarity) opposite() Polarity {
	if p == Acid {
		return Base
	}
	return Acid
}
