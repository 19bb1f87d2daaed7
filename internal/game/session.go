// Package game holds per-session state and drives one round at a time:
// pick a question, record the answer, rescore, check the guess policy.
package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pokedexlabs/pokenator/internal/catalog"
	"github.com/pokedexlabs/pokenator/internal/domain"
	"github.com/pokedexlabs/pokenator/internal/engine"
)

var (
	// ErrUnknownQuestion is returned when an answer references a question id
	// the catalog does not know. That is a caller bug; the session state is
	// untouched.
	ErrUnknownQuestion = errors.New("game: unknown question id")

	// ErrNoCatalog refuses session creation without a validated catalog.
	ErrNoCatalog = errors.New("game: no catalog")
)

// Status tracks the session's lifecycle.
type Status string

const (
	StatusActive    Status = "active"
	StatusWon       Status = "won"
	StatusExhausted Status = "exhausted"
)

// DefaultTopCandidates is how many ranked candidates a round reports back.
const DefaultTopCandidates = 7

// Session is one game's belief state: which questions were asked, what was
// answered, and which candidates remain in play. It owns no catalog data; the
// catalog is shared and read-only. The mutex serializes the host's requests
// for this session; distinct sessions share nothing mutable.
type Session struct {
	mu sync.Mutex

	catalog   *catalog.Catalog
	remaining []*domain.Candidate
	asked     map[string]struct{}
	answers   map[string]domain.Answer
	order     []string
	status    Status

	createdAt  time.Time
	lastActive time.Time
}

// NewSession starts a game over the full catalog. The catalog must already be
// validated; a nil catalog refuses to initialize.
func NewSession(cat *catalog.Catalog) (*Session, error) {
	if cat == nil {
		return nil, ErrNoCatalog
	}
	now := time.Now()
	return &Session{
		catalog:    cat,
		remaining:  cat.Candidates(),
		asked:      make(map[string]struct{}),
		answers:    make(map[string]domain.Answer),
		status:     StatusActive,
		createdAt:  now,
		lastActive: now,
	}, nil
}

// NextQuestion selects the highest-gain question not yet asked, marks it as
// asked, and returns it. A nil return means no question carries enough
// information to be worth asking; the session moves to exhausted unless it has
// already terminated.
func (s *Session) NextQuestion() *domain.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if s.status != StatusActive {
		return nil
	}

	available := make([]*domain.Question, 0, s.catalog.QuestionCount())
	for _, q := range s.catalog.Questions() {
		if _, ok := s.asked[q.ID]; !ok {
			available = append(available, q)
		}
	}

	q := engine.SelectQuestion(s.remaining, available, s.answerHistory())
	if q == nil {
		s.status = StatusExhausted
		return nil
	}

	s.asked[q.ID] = struct{}{}
	return q
}

// RecordAnswer stores the player's response, snapshotting the question's
// category and target attribute so later catalog edits cannot reinterpret old
// answers. Re-answering a question overwrites the prior answer without
// duplicating it in the history.
func (s *Session) RecordAnswer(questionID string, response domain.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	q, ok := s.catalog.Question(questionID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
	}

	if _, seen := s.answers[questionID]; !seen {
		s.order = append(s.order, questionID)
	}
	s.answers[questionID] = domain.Answer{
		QuestionID:      questionID,
		Category:        q.Category,
		TargetAttribute: q.TargetAttribute,
		Response:        response,
	}
	return nil
}

// RecordWrongGuess removes the named candidate from the active set. Unknown or
// already-removed names are a no-op, so rejecting the same guess twice leaves
// the same active set. Answer history is untouched.
func (s *Session) RecordWrongGuess(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	for i, c := range s.remaining {
		if c.Name == name {
			s.remaining = append(s.remaining[:i], s.remaining[i+1:]...)
			return
		}
	}
}

// ShouldGuess applies the guess policy to the current belief and returns the
// candidate to propose, or nil to keep asking.
func (s *Session) ShouldGuess() *domain.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.ShouldGuess(s.remaining, s.answerHistory())
}

// TopCandidates returns the k highest-probability candidates under the current
// belief, fewer if the active set is smaller.
func (s *Session) TopCandidates(k int) []engine.RankedCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()

	ranked := engine.Probabilities(s.remaining, s.answerHistory())
	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// QuestionsAsked is the round counter: the number of distinct answered
// question ids.
func (s *Session) QuestionsAsked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

// Remaining is the size of the active candidate set.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.remaining)
}

// Over reports whether the game has hit a terminal condition: the round cap,
// an empty active set, or an already-terminal status.
func (s *Session) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status != StatusActive ||
		len(s.answers) >= engine.MaxRounds ||
		len(s.remaining) == 0
}

// Finish marks the session won or exhausted. Further rounds are refused.
func (s *Session) Finish(won bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	if won {
		s.status = StatusWon
	} else {
		s.status = StatusExhausted
	}
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LastActive reports when the session was last touched; the host's sweeper
// uses it to reclaim abandoned sessions.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// answerHistory returns the recorded answers in question order. Callers hold
// the session lock.
func (s *Session) answerHistory() []domain.Answer {
	history := make([]domain.Answer, 0, len(s.order))
	for _, id := range s.order {
		history = append(history, s.answers[id])
	}
	return history
}
