package game

import (
	"github.com/rs/zerolog/log"

	"github.com/cameroncuttingedge/titration_four/events"
)

// Snapshot returns the session as the UI sees it.
func (s *Session) Snapshot() events.GameState {
	state := events.GameState{
		ID:         s.ID,
		Status:     string(s.state),
		Board:      convertBoard(s.board, s.players),
		Labels:     s.labels,
		Turn:       int(s.current),
		Advantage:  s.advantage,
		Indication: string(Indicate(s.advantage)),
		Topics:     append([]string(nil), s.set.Topics...),
		Questions:  append([]string(nil), s.set.Questions...),
		Moves:      s.board.Filled(),
	}
	for i, p := range s.players {
		state.Players[i] = events.PlayerState{
			ID:       int(p.ID),
			Name:     p.Name,
			Polarity: string(p.Polarity),
			Role:     p.Role(),
			Color:    p.Color(),
		}
	}
	if s.winner != NoPlayer {
		w := int(s.winner)
		state.Winner = &w
	}
	if s.pending != nil {
		state.Pending = &events.PromptState{
			Column:     s.pending.Column,
			Row:        s.pending.Row,
			Topic:      s.pending.Topic,
			TopicLabel: s.pending.TopicLabel,
			Question:   s.pending.Question,
			Text:       s.pending.Text,
			Spoken:     s.pending.Spoken,
		}
	}
	return state
}

func (s *Session) publish(kind events.Kind, res *events.Resolution) {
	if s.notifier == nil {
		return
	}
	log.Debug().Str("sessionID", s.ID).Str("kind", string(kind)).Msg("Publishing game state")
	s.notifier.Publish(events.GameEvent{
		Kind:       kind,
		SessionID:  s.ID,
		Data:       s.Snapshot(),
		Resolution: res,
	})
}

func (s *Session) resolution(out Outcome, mover PlayerID, at Coord) *events.Resolution {
	res := &events.Resolution{
		Player:    int(mover),
		Column:    at.Column,
		Row:       at.Row,
		Submitted: out.Entry.Submitted,
		Accepted:  out.Accepted,
		Reaction:  string(out.Reaction),
		Advantage: out.Advantage,
	}
	for _, c := range out.WinningLine {
		res.WinningLine = append(res.WinningLine, [2]int{c.Column, c.Row})
	}
	return res
}

// convertBoard renders owners as their polarity, "" for empty cells.
func convertBoard(b Board, players [2]Player) [Rows][Columns]string {
	var converted [Rows][Columns]string
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if owner := b.CellOwner(c, r); owner != NoPlayer {
				converted[r][c] = string(players[owner].Polarity)
			}
		}
	}
	return converted
}
