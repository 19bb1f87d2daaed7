package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pokedexlabs/pokenator/internal/domain"
	"github.com/pokedexlabs/pokenator/internal/engine"
	"github.com/pokedexlabs/pokenator/internal/game"
	"go.uber.org/zap"
)

// SessionRegistry is the host-side store mapping opaque game ids to session
// handles.
type SessionRegistry interface {
	Create() (uuid.UUID, *game.Session, error)
	Get(id uuid.UUID) (*game.Session, bool)
	Delete(id uuid.UUID)
}

// topCandidateCount is how many ranked candidates each response carries.
const topCandidateCount = game.DefaultTopCandidates

type GameHandler struct {
	registry SessionRegistry
	logger   *zap.Logger
}

func NewGameHandler(registry SessionRegistry, logger *zap.Logger) *GameHandler {
	return &GameHandler{registry: registry, logger: logger}
}

// candidateDTO matches the shape the web frontend expects.
type candidateDTO struct {
	Candidate struct {
		Name string `json:"name"`
	} `json:"pokemon"`
	Confidence float64 `json:"confidence"`
}

func toCandidateDTOs(ranked []engine.RankedCandidate) []candidateDTO {
	out := make([]candidateDTO, 0, len(ranked))
	for _, rc := range ranked {
		var dto candidateDTO
		dto.Candidate.Name = rc.Candidate.Name
		dto.Confidence = rc.Probability
		out = append(out, dto)
	}
	return out
}

// Start creates a session and returns its id.
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, _, err := h.registry.Create()
	if err != nil {
		h.logger.Error("failed to create session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to start game")
		return
	}

	h.logger.Info("game started", zap.String("game_id", id.String()))
	writeJSON(w, http.StatusOK, map[string]string{"gameId": id.String()})
}

func (h *GameHandler) session(w http.ResponseWriter, r *http.Request) (*game.Session, uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return nil, uuid.Nil, false
	}

	session, ok := h.registry.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return nil, uuid.Nil, false
	}
	return session, id, true
}

type questionResponse struct {
	Question       *questionDTO   `json:"question"`
	Candidates     []candidateDTO `json:"candidates"`
	QuestionsAsked int            `json:"questionsAsked"`
	Message        string         `json:"message,omitempty"`
}

type questionDTO struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// GetQuestion picks the next question for the session. A null question with a
// message means no question carries enough information to be worth asking.
func (h *GameHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	session, _, ok := h.session(w, r)
	if !ok {
		return
	}

	resp := questionResponse{
		Candidates:     toCandidateDTOs(session.TopCandidates(topCandidateCount)),
		QuestionsAsked: session.QuestionsAsked(),
	}

	q := session.NextQuestion()
	if q == nil {
		resp.Message = "No more questions available"
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp.Question = &questionDTO{ID: q.ID, Text: q.Text}
	writeJSON(w, http.StatusOK, resp)
}

type answerRequest struct {
	QuestionID string          `json:"questionId"`
	Response   domain.Response `json:"response"`
}

type answerResponse struct {
	ShouldGuess    bool           `json:"shouldGuess"`
	Guess          *guessDTO      `json:"guess"`
	Candidates     []candidateDTO `json:"candidates"`
	QuestionsAsked int            `json:"questionsAsked"`
	GameOver       bool           `json:"gameOver"`
}

type guessDTO struct {
	Name string `json:"name"`
}

// SubmitAnswer records a response and reports whether the engine wants to
// commit to a guess.
func (h *GameHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	session, id, ok := h.session(w, r)
	if !ok {
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuestionID == "" {
		writeError(w, http.StatusBadRequest, "questionId is required")
		return
	}
	if !domain.ValidResponse(req.Response) {
		writeError(w, http.StatusBadRequest, "invalid response")
		return
	}

	if err := session.RecordAnswer(req.QuestionID, req.Response); err != nil {
		if errors.Is(err, game.ErrUnknownQuestion) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to record answer")
		return
	}

	guess := session.ShouldGuess()
	resp := answerResponse{
		ShouldGuess:    guess != nil,
		Candidates:     toCandidateDTOs(session.TopCandidates(topCandidateCount)),
		QuestionsAsked: session.QuestionsAsked(),
		GameOver:       session.Over(),
	}
	if guess != nil {
		resp.Guess = &guessDTO{Name: guess.Name}
	}

	h.logger.Debug("answer recorded",
		zap.String("game_id", id.String()),
		zap.String("question_id", req.QuestionID),
		zap.String("response", string(req.Response)),
		zap.Bool("should_guess", guess != nil))

	writeJSON(w, http.StatusOK, resp)
}

type wrongGuessRequest struct {
	Name string `json:"name"`

	// The web frontend posts the rejected guess under pokemonName.
	PokemonName string `json:"pokemonName"`
}

func (r wrongGuessRequest) name() string {
	if r.Name != "" {
		return r.Name
	}
	return r.PokemonName
}

// WrongGuess removes a rejected candidate from the session's active set.
// Unknown names are accepted and ignored; the operation is idempotent.
func (h *GameHandler) WrongGuess(w http.ResponseWriter, r *http.Request) {
	session, _, ok := h.session(w, r)
	if !ok {
		return
	}

	var req wrongGuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name := req.name()
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	session.RecordWrongGuess(name)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type stateResponse struct {
	Status         game.Status    `json:"status"`
	QuestionsAsked int            `json:"questionsAsked"`
	Remaining      int            `json:"remaining"`
	Candidates     []candidateDTO `json:"candidates"`
	GameOver       bool           `json:"gameOver"`
}

// GetState reports the session's current standing without advancing it.
func (h *GameHandler) GetState(w http.ResponseWriter, r *http.Request) {
	session, _, ok := h.session(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, stateResponse{
		Status:         session.Status(),
		QuestionsAsked: session.QuestionsAsked(),
		Remaining:      session.Remaining(),
		Candidates:     toCandidateDTOs(session.TopCandidates(topCandidateCount)),
		GameOver:       session.Over(),
	})
}

type resultRequest struct {
	Won bool `json:"won"`
}

// Result records the game's outcome and closes the session.
func (h *GameHandler) Result(w http.ResponseWriter, r *http.Request) {
	session, _, ok := h.session(w, r)
	if !ok {
		return
	}

	var req resultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session.Finish(req.Won)
	writeJSON(w, http.StatusOK, map[string]any{
		"status": session.Status(),
	})
}

// Delete abandons a session. The engine holds no external resources, so this
// is purely a registry removal.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, id, ok := h.session(w, r)
	if !ok {
		return
	}

	h.registry.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}
