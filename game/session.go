package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cameroncuttingedge/titration_four/chemtext"
	"github.com/cameroncuttingedge/titration_four/events"
	"github.com/cameroncuttingedge/titration_four/matcher"
	"github.com/cameroncuttingedge/titration_four/questions"
)

var (
	ErrColumnOutOfRange  = errors.New("column out of range")
	ErrColumnFull        = errors.New("column is full")
	ErrBlankAnswer       = errors.New("answer is blank")
	ErrNoPendingQuestion = errors.New("no question is pending")
	ErrQuestionPending   = errors.New("a question is already pending")
	ErrNotPlaying        = errors.New("game has not started")
	ErrNotInSetup        = errors.New("only allowed during setup")
	ErrGameOver          = errors.New("game is over")
	ErrInvalidSeat       = errors.New("invalid seat")
)

type State string

const (
	StateSetup          State = "setup"
	StateAwaitingColumn State = "awaiting_column"
	StateAwaitingAnswer State = "awaiting_answer"
	StateWon            State = "won"
	StateDrawn          State = "drawn"
)

// Reaction tells the UI which effect a placement triggers.
type Reaction string

const (
	// Bubble is a drop onto the floor or onto a friendly piece.
	Bubble Reaction = "bubble"
	// Neutralization is a drop onto an opponent's piece.
	Neutralization Reaction = "neutralization"
)

// Prompt is the question a player must answer to claim a cell.
type Prompt struct {
	Coord
	Topic      string `json:"topic"`
	TopicLabel string `json:"topicLabel"`
	Question   string `json:"question"`
	Text       string `json:"text"`
	Spoken     string `json:"spoken"`
}

// HistoryEntry is one resolved question. Accepted is always recorded, even
// for wrong answers; whether to show it is up to the UI.
type HistoryEntry struct {
	Seq        int       `json:"seq"`
	Player     PlayerID  `json:"player"`
	PlayerName string    `json:"playerName"`
	Column     int       `json:"column"`
	Row        int       `json:"row"`
	Topic      string    `json:"topic"`
	Question   string    `json:"question"`
	Submitted  string    `json:"submitted"`
	Correct    bool      `json:"correct"`
	Accepted   []string  `json:"accepted"`
	Matched    string    `json:"matched,omitempty"`
	At         time.Time `json:"at"`
}

func (h HistoryEntry) clone() HistoryEntry {
	h.Accepted = append([]string(nil), h.Accepted...)
	return h
}

// Outcome is what SubmitAnswer reports back to the UI.
type Outcome struct {
	Accepted    bool         `json:"accepted"`
	PlacedAt    *Coord       `json:"placedAt,omitempty"`
	WonBy       *PlayerID    `json:"wonBy,omitempty"`
	Draw        bool         `json:"draw"`
	Advantage   float64      `json:"advantage"`
	Indication  Indication   `json:"indication"`
	Reaction    Reaction     `json:"reaction,omitempty"`
	WinningLine []Coord      `json:"winningLine,omitempty"`
	NextPlayer  PlayerID     `json:"nextPlayer"`
	Entry       HistoryEntry `json:"entry"`
}

type Options struct {
	ID        string
	Questions *questions.Set
	Weights   Weights
	Notifier  events.Notifier
	Now       func() time.Time
}

// Session owns one local game: players, board, turn and history. It is not
// safe for concurrent use; hosts must serialize calls.
type Session struct {
	ID string

	state     State
	players   [2]Player
	current   PlayerID
	winner    PlayerID
	board     Board
	labels    [Rows][Columns]string
	pending   *Prompt
	history   []HistoryEntry
	advantage float64

	set      *questions.Set
	eval     *Evaluator
	notifier events.Notifier
	now      func() time.Time
}

// NewSession creates a session in setup with default names, acid on seat 0.
func NewSession(opts Options) *Session {
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.Questions == nil {
		opts.Questions = questions.Default()
	}
	if opts.Weights == (Weights{}) {
		opts.Weights = DefaultWeights
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Session{
		ID:       opts.ID,
		set:      opts.Questions.Clone(),
		eval:     NewEvaluator(opts.Weights),
		notifier: opts.Notifier,
		now:      opts.Now,
	}
	s.players[0] = Player{ID: 0, Name: defaultName(0), Polarity: Acid}
	s.players[1] = Player{ID: 1, Name: defaultName(1), Polarity: Base}
	s.clear()
	return s
}

func (s *Session) clear() {
	s.state = StateSetup
	s.board.Reset()
	s.labels = [Rows][Columns]string{}
	s.pending = nil
	s.history = nil
	s.advantage = Neutral
	s.current = 0
	s.winner = NoPlayer
}

// SetPlayerName renames a seat. Blank names fall back to "Player N" at start.
func (s *Session) SetPlayerName(seat PlayerID, name string) error {
	if s.state != StateSetup {
		return ErrNotInSetup
	}
	if seat != 0 && seat != 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	s.players[seat].Name = strings.TrimSpace(name)
	s.publish(events.PlayerRenamed, nil)
	return nil
}

// SwapRoles exchanges polarities between the seats. Names stay put; seat 0
// still moves first, so this also changes which polarity opens.
func (s *Session) SwapRoles() error {
	if s.state != StateSetup {
		return ErrNotInSetup
	}
	for i := range s.players {
		s.players[i].Polarity = s.players[i].Polarity.opposite()
	}
	log.Info().Str("sessionID", s.ID).Str("first", string(s.players[0].Polarity)).Msg("Roles swapped")
	s.publish(events.RolesSwapped, nil)
	return nil
}

// SetQuestions replaces the question set for the next game.
func (s *Session) SetQuestions(set *questions.Set) error {
	if s.state != StateSetup {
		return ErrNotInSetup
	}
	if err := set.Validate(); err != nil {
		return err
	}
	s.set = set.Clone()
	log.Info().Str("sessionID", s.ID).Str("set", set.Name).Msg("Question set replaced")
	s.publish(events.QuestionsReplaced, nil)
	return nil
}

// Start leaves setup and waits for the first column choice.
func (s *Session) Start() error {
	if s.state != StateSetup {
		return ErrNotInSetup
	}
	s.clear()
	for i := range s.players {
		if s.players[i].Name == "" {
			s.players[i].Name = defaultName(PlayerID(i))
		}
	}
	s.state = StateAwaitingColumn
	log.Info().
		Str("sessionID", s.ID).
		Str("player1", s.players[0].Name).
		Str("player2", s.players[1].Name).
		Msg("Game started")
	s.publish(events.SessionStarted, nil)
	return nil
}

// ChooseColumn finds where a piece in column would land and returns the
// question for that cell. A full column costs nothing; pick another.
func (s *Session) ChooseColumn(column int) (Prompt, error) {
	switch s.state {
	case StateSetup:
		return Prompt{}, ErrNotPlaying
	case StateWon, StateDrawn:
		return Prompt{}, ErrGameOver
	case StateAwaitingAnswer:
		return Prompt{}, ErrQuestionPending
	}
	if column < 0 || column >= Columns {
		return Prompt{}, fmt.Errorf("%w: %d", ErrColumnOutOfRange, column)
	}
	row, ok := s.board.LowestEmptyRow(column)
	if !ok {
		return Prompt{}, fmt.Errorf("%w: %d", ErrColumnFull, column)
	}

	p := s.prompt(column, row)
	s.pending = &p
	s.state = StateAwaitingAnswer
	log.Debug().Str("sessionID", s.ID).Int("column", column).Int("row", row).Msg("Column chosen")
	s.publish(events.ColumnChosen, nil)
	return p, nil
}

func (s *Session) prompt(column, row int) Prompt {
	topic := s.set.Topic(column)
	question := strings.TrimSpace(s.set.Question(row))
	if !strings.HasSuffix(question, "?") {
		question += "?"
	}
	text := fmt.Sprintf("Topic: %s\n\n%s", topic, question)
	return Prompt{
		Coord:      Coord{Column: column, Row: row},
		Topic:      topic,
		TopicLabel: chemtext.Format(topic),
		Question:   question,
		Text:       text,
		Spoken:     chemtext.Spoken(strings.Replace(text, "\n\n", ". ", 1)),
	}
}

// CancelQuestion abandons the pending question. The turn does not change.
func (s *Session) CancelQuestion() {
	if s.state != StateAwaitingAnswer {
		return
	}
	s.pending = nil
	s.state = StateAwaitingColumn
	s.publish(events.QuestionCancelled, nil)
}

// SubmitAnswer resolves the pending question. Blank input is refused without
// side effects; anything else is logged to history and costs the turn,
// unless it wins the game.
func (s *Session) SubmitAnswer(text string) (Outcome, error) {
	if s.state != StateAwaitingAnswer || s.pending == nil {
		return Outcome{}, ErrNoPendingQuestion
	}
	if strings.TrimSpace(text) == "" {
		return Outcome{}, ErrBlankAnswer
	}

	p := *s.pending
	accepted := s.set.Accepted(p.Column, p.Row)
	res := matcher.Match(text, accepted)
	mover := s.players[s.current]

	entry := HistoryEntry{
		Seq:        len(s.history) + 1,
		Player:     mover.ID,
		PlayerName: mover.Name,
		Column:     p.Column,
		Row:        p.Row,
		Topic:      p.Topic,
		Question:   s.set.Question(p.Row),
		Submitted:  matcher.Normalize(text),
		Correct:    res.Accepted,
		Accepted:   accepted,
		Matched:    res.Matched,
		At:         s.now(),
	}
	s.history = append(s.history, entry)
	s.pending = nil

	out := Outcome{Accepted: res.Accepted, Entry: entry.clone()}
	kind := events.AnswerResolved
	if res.Accepted {
		s.board.Place(p.Column, p.Row, mover.ID)
		s.labels[p.Row][p.Column] = chemtext.Format(entry.Submitted)
		s.advantage = s.eval.Advantage(&s.board, s.seatOf(Acid), s.seatOf(Base))
		out.PlacedAt = &Coord{Column: p.Column, Row: p.Row}
		out.Reaction = s.reaction(p.Column, p.Row, mover.ID)

		if line := WinningLine(&s.board, p.Column, p.Row, mover.ID); line != nil {
			s.state = StateWon
			s.winner = mover.ID
			winner := mover.ID
			out.WonBy = &winner
			out.WinningLine = line
			kind = events.GameWon
		} else if s.board.Full() {
			s.state = StateDrawn
			out.Draw = true
			kind = events.GameDrawn
		}
	}
	if s.state == StateAwaitingAnswer {
		s.state = StateAwaitingColumn
		s.switchTurn()
	}

	out.Advantage = s.advantage
	out.Indication = Indicate(s.advantage)
	out.NextPlayer = s.current

	log.Info().
		Str("sessionID", s.ID).
		Str("player", mover.Name).
		Int("column", p.Column).
		Int("row", p.Row).
		Bool("correct", res.Accepted).
		Float64("advantage", s.advantage).
		Str("state", string(s.state)).
		Msg("Answer resolved")
	s.publish(kind, s.resolution(out, mover.ID, p.Coord))
	return out, nil
}

func (s *Session) switchTurn() {
	s.current = (s.current + 1) % PlayerID(len(s.players))
}

func (s *Session) seatOf(p Polarity) PlayerID {
	if s.players[0].Polarity == p {
		return 0
	}
	return 1
}

func (s *Session) reaction(column, row int, mover PlayerID) Reaction {
	if row+1 < Rows {
		below := s.board.CellOwner(column, row+1)
		if below != NoPlayer && below != mover {
			return Neutralization
		}
	}
	return Bubble
}

// Reset returns to setup and clears the board, history and advantage.
// Names and polarities are kept for the setup screen.
func (s *Session) Reset() {
	s.clear()
	log.Info().Str("sessionID", s.ID).Msg("Session reset")
	s.publish(events.SessionReset, nil)
}

func (s *Session) State() State { return s.state }

func (s *Session) Players() [2]Player { return s.players }

func (s *Session) CurrentPlayer() Player { return s.players[s.current] }

// Winner returns the winning player once the game is won.
func (s *Session) Winner() (Player, bool) {
	if s.winner == NoPlayer {
		return Player{}, false
	}
	return s.players[s.winner], true
}

// Advantage is the current pH reading, 7.0 before any piece is placed.
func (s *Session) Advantage() float64 { return s.advantage }

// Board returns a copy of the board.
func (s *Session) Board() *Board {
	b := s.board
	return &b
}

// Label returns the formatted answer that claimed (column, row).
func (s *Session) Label(column, row int) string { return s.labels[row][column] }

// Pending returns the question awaiting an answer, if any.
func (s *Session) Pending() (Prompt, bool) {
	if s.pending == nil {
		return Prompt{}, false
	}
	return *s.pending, true
}

// Questions returns a copy of the active question set.
func (s *Session) Questions() *questions.Set { return s.set.Clone() }

// History returns a copy of the review log, oldest first.
func (s *Session) History() []HistoryEntry {
	out := make([]HistoryEntry, len(s.history))
	for i, h := range s.history {
		out[i] = h.clone()
	}
	return out
}
