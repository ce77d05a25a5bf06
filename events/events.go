package events

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Kind names what happened in a session.
type Kind string

const (
	SessionStarted    Kind = "session_started"
	ColumnChosen      Kind = "column_chosen"
	QuestionCancelled Kind = "question_cancelled"
	AnswerResolved    Kind = "answer_resolved"
	GameWon           Kind = "game_won"
	GameDrawn         Kind = "game_drawn"
	SessionReset      Kind = "session_reset"
	RolesSwapped      Kind = "roles_swapped"
	PlayerRenamed     Kind = "player_renamed"
	QuestionsReplaced Kind = "questions_replaced"
	// Snapshot is sent to a listener when it first connects.
	Snapshot          Kind = "snapshot"
)

type PlayerState struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Polarity string `json:"polarity"`
	Role     string `json:"role"`
	Color    string `json:"color"`
}

type PromptState struct {
	Column     int    `json:"column"`
	Row        int    `json:"row"`
	Topic      string `json:"topic"`
	TopicLabel string `json:"topicLabel"`
	Question   string `json:"question"`
	Text       string `json:"text"`
	Spoken     string `json:"spoken"`
}

// GameState is the JSON snapshot of a session sent to the UI. Board cells
// hold the owner's polarity, or "" when empty. Rows run top to bottom.
type GameState struct {
	ID         string         `json:"id"`
	Status     string         `json:"status"`
	Board      [6][6]string   `json:"board"`
	Labels     [6][6]string   `json:"labels"`
	Players    [2]PlayerState `json:"players"`
	Turn       int            `json:"turn"`
	Winner     *int           `json:"winner,omitempty"`
	Pending    *PromptState   `json:"pending,omitempty"`
	Advantage  float64        `json:"advantage"`
	Indication string         `json:"indication"`
	Topics     []string       `json:"topics"`
	Questions  []string       `json:"questions"`
	Moves      int            `json:"moves"`
}

// Resolution accompanies AnswerResolved, GameWon and GameDrawn.
type Resolution struct {
	Player      int      `json:"player"`
	Column      int      `json:"column"`
	Row         int      `json:"row"`
	Submitted   string   `json:"submitted"`
	Accepted    bool     `json:"accepted"`
	Reaction    string   `json:"reaction,omitempty"`
	WinningLine [][2]int `json:"winningLine,omitempty"`
	Advantage   float64  `json:"advantage"`
}

type GameEvent struct {
	Kind       Kind        `json:"kind"`
	SessionID  string      `json:"sessionId"`
	Data       GameState   `json:"state"`
	Resolution *Resolution `json:"resolution,omitempty"`
}

// Notifier receives session events. Implementations must not block.
type Notifier interface {
	Publish(GameEvent)
}

// Bus is a buffered event channel with a single consumer.
type Bus struct {
	mu     sync.Mutex
	ch     chan GameEvent
	closed bool
}

func NewBus(size int) *Bus {
	if size < 1 {
		size = 1
	}
	return &Bus{ch: make(chan GameEvent, size)}
}

// Publish enqueues e, dropping it when the buffer is full or the bus is
// closed so the engine never waits on its listeners.
func (b *Bus) Publish(e GameEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	select {
	case b.ch <- e:
	default:
		log.Warn().Str("sessionID", e.SessionID).Str("kind", string(e.Kind)).Msg("Event buffer full, dropping event")
	}
}

// Events is the consuming side of the bus. It is closed by Close.
func (b *Bus) Events() <-chan GameEvent { return b.ch }

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.ch)
	}
}
