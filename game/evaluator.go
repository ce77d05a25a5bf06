package game

import "math"

const (
	// Neutral is the advantage of an even position.
	Neutral = 7.0
	// scaleHalfRange maps a normalized advantage of ±1 onto 0 or 14.
	scaleHalfRange = 7.0
)

// Weights tune the evaluator. Win must dwarf the threat bonuses.
type Weights struct {
	Win         int     `json:"win"`
	MajorThreat int     `json:"majorThreat"`
	MinorThreat int     `json:"minorThreat"`
	Center      int     `json:"center"`
	MaxSwing    float64 `json:"maxSwing"`
}

var DefaultWeights = Weights{
	Win:         10000,
	MajorThreat: 100,
	MinorThreat: 10,
	Center:      3,
	MaxSwing:    200,
}

// Evaluator scores how a board favours acid or base. No lookahead: it only
// characterizes the position as it stands.
type Evaluator struct {
	weights Weights
}

func NewEvaluator(w Weights) *Evaluator {
	if w.MaxSwing <= 0 {
		w.MaxSwing = DefaultWeights.MaxSwing
	}
	return &Evaluator{weights: w}
}

func (e *Evaluator) Weights() Weights { return e.weights }

// Score sums window bonuses and the center column bonus for player.
func (e *Evaluator) Score(b *Board, player PlayerID) int {
	score := 0
	for row := 0; row < Rows; row++ {
		if b.CellOwner(CenterColumn, row) == player {
			score += e.weights.Center
		}
	}

	for _, d := range directions {
		for row := 0; row < Rows; row++ {
			for col := 0; col < Columns; col++ {
				endC, endR := col+3*d[0], row+3*d[1]
				if !b.inside(endC, endR) {
					continue
				}
				score += e.window(b, col, row, d[0], d[1], player)
			}
		}
	}
	return score
}

func (e *Evaluator) window(b *Board, col, row, dc, dr int, player PlayerID) int {
	own, empty := 0, 0
	for i := 0; i < 4; i++ {
		switch b.CellOwner(col+i*dc, row+i*dr) {
		case player:
			own++
		case NoPlayer:
			empty++
		default:
			// Blocked by the opponent; this window can never be won.
			return 0
		}
	}
	switch {
	case own == 4:
		return e.weights.Win
	case own == 3 && empty == 1:
		return e.weights.MajorThreat
	case own == 2 && empty == 2:
		return e.weights.MinorThreat
	}
	return 0
}

// Advantage maps the base-minus-acid score difference onto the 0..14 pH
// scale, rounded to one decimal. 7.0 is even.
func (e *Evaluator) Advantage(b *Board, acid, base PlayerID) float64 {
	diff := float64(e.Score(b, base) - e.Score(b, acid))
	normalized := math.Max(-1, math.Min(1, diff/e.weights.MaxSwing))
	return math.Round((Neutral+normalized*scaleHalfRange)*10) / 10
}

// Indication classifies an advantage reading the way a pH meter would.
type Indication string

const (
	Acidic    Indication = "acidic"
	NeutralPH Indication = "neutral"
	Basic     Indication = "basic"
)

// Indicate returns acidic below 6.5, basic above 7.5, neutral otherwise.
func Indicate(advantage float64) Indication {
	switch {
	case advantage < 6.5:
		return Acidic
	case advantage > 7.5:
		return Basic
	default:
		return NeutralPH
	}
}
