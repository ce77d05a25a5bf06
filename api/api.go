package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/cameroncuttingedge/titration_four/events"
	"github.com/cameroncuttingedge/titration_four/game"
	"github.com/cameroncuttingedge/titration_four/questions"
	"github.com/cameroncuttingedge/titration_four/websocket"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

// Server exposes one shared session over HTTP. Every call into the session
// goes through lock.
type Server struct {
	lock    sync.Mutex
	session *game.Session
	router  *mux.Router
	hub     *websocket.Hub
	origins []string
}

type playerRequest struct {
	Seat *int   `json:"seat"`
	Name string `json:"name"`
}

type columnRequest struct {
	Column *int `json:"column"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type columnResponse struct {
	Prompt game.Prompt      `json:"prompt"`
	State  events.GameState `json:"state"`
}

type answerResponse struct {
	Outcome game.Outcome     `json:"outcome"`
	State   events.GameState `json:"state"`
}

// NewServer builds the router for session. allowedOrigins limits CORS and
// websocket origins; empty allows any.
func NewServer(session *game.Session, allowedOrigins []string) *Server {
	s := &Server{
		session: session,
		router:  mux.NewRouter(),
		origins: allowedOrigins,
	}
	s.hub = websocket.NewHub(s.Snapshot, allowedOrigins)

	r := s.router
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/session", s.getSessionHandler).Methods(http.MethodGet)
	r.HandleFunc("/session/players", s.setPlayerHandler).Methods(http.MethodPost)
	r.HandleFunc("/session/swap", s.swapHandler).Methods(http.MethodPost)
	r.HandleFunc("/session/start", s.startHandler).Methods(http.MethodPost)
	r.HandleFunc("/session/column", s.chooseColumnHandler).Methods(http.MethodPost)
	r.HandleFunc("/session/cancel", s.cancelHandler).Methods(http.MethodPost)
	r.HandleFunc("/session/answer", s.submitAnswerHandler).Methods(http.MethodPost)
	r.HandleFunc("/session/history", s.historyHandler).Methods(http.MethodGet)
	r.HandleFunc("/session/reset", s.resetHandler).Methods(http.MethodPost)
	r.HandleFunc("/questions", s.getQuestionsHandler).Methods(http.MethodGet)
	r.HandleFunc("/questions", s.putQuestionsHandler).Methods(http.MethodPut)
	r.HandleFunc("/ws", s.hub.Handler)
	return s
}

// Hub is the websocket hub fed by the session's event bus.
func (s *Server) Hub() *websocket.Hub { return s.hub }

// Handler wraps the router with access logging, panic recovery and CORS.
func (s *Server) Handler() http.Handler {
	origins := s.origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	recovery := handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}), handlers.PrintRecoveryStack(true))
	return handlers.CombinedLoggingHandler(accessLog{}, recovery(cors(s.router)))
}

// Snapshot returns the session state under the server lock.
func (s *Server) Snapshot() events.GameState {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.session.Snapshot()
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Snapshot())
}

func (s *Server) setPlayerHandler(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Seat == nil {
		writeError(w, fmt.Errorf("%w: seat is required", errBadRequest))
		return
	}
	s.mutate(w, func() error { return s.session.SetPlayerName(game.PlayerID(*req.Seat), req.Name) })
}

func (s *Server) swapHandler(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, s.session.SwapRoles)
}

func (s *Server) startHandler(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, s.session.Start)
}

func (s *Server) cancelHandler(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, func() error {
		s.session.CancelQuestion()
		return nil
	})
}

func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, func() error {
		s.session.Reset()
		return nil
	})
}

// mutate runs op under the lock and answers with the new snapshot.
func (s *Server) mutate(w http.ResponseWriter, op func() error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if err := op(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) chooseColumnHandler(w http.ResponseWriter, r *http.Request) {
	var req columnRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Column == nil {
		writeError(w, fmt.Errorf("%w: column is required", errBadRequest))
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	prompt, err := s.session.ChooseColumn(*req.Column)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, columnResponse{Prompt: prompt, State: s.session.Snapshot()})
}

func (s *Server) submitAnswerHandler(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	out, err := s.session.SubmitAnswer(req.Answer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{Outcome: out, State: s.session.Snapshot()})
}

func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	history := s.session.History()
	s.lock.Unlock()
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) getQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	set := s.session.Questions()
	s.lock.Unlock()
	writeJSON(w, http.StatusOK, set)
}

// putQuestionsHandler takes a YAML or JSON question set.
func (s *Server) putQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	set, err := questions.Parse(data)
	if err != nil {
		writeError(w, err)
		return
	}
	s.mutate(w, func() error { return s.session.SetQuestions(set) })
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: error decoding JSON: %v", errBadRequest, err)
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, game.ErrColumnOutOfRange),
		errors.Is(err, game.ErrBlankAnswer),
		errors.Is(err, game.ErrInvalidSeat),
		errors.Is(err, questions.ErrInvalidSet):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrColumnFull),
		errors.Is(err, game.ErrQuestionPending),
		errors.Is(err, game.ErrNoPendingQuestion),
		errors.Is(err, game.ErrNotPlaying),
		errors.Is(err, game.ErrNotInSetup),
		errors.Is(err, game.ErrGameOver):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("Request rejected")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// accessLog feeds Apache combined log lines into zerolog.
type accessLog struct{}

func (accessLog) Write(p []byte) (int, error) {
	log.Info().Str("component", "http").Msg(string(trimNewline(p)))
	return len(p), nil
}

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	log.Error().Str("component", "http").Msg(fmt.Sprint(v...))
}

func trimNewline(p []byte) []byte {
	if n := len(p); n > 0 && p[n-1] == '\n' {
		return p[:n-1]
	}
	return p
}
