package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pokedexlabs/pokenator/internal/catalog"
	"github.com/pokedexlabs/pokenator/internal/domain"
	"github.com/pokedexlabs/pokenator/internal/engine"
	"github.com/stretchr/testify/require"
)

// newTestCatalog builds a small catalog with one discriminating question per
// attribute so sessions always have something to ask.
func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	candidates := []domain.Candidate{
		{Name: "charmander", Type: map[string]float64{"fire": 1.0}, Color: map[string]float64{"red": 1.0}},
		{Name: "squirtle", Type: map[string]float64{"water": 1.0}, Color: map[string]float64{"blue": 1.0}},
		{Name: "bulbasaur", Type: map[string]float64{"grass": 1.0}, Color: map[string]float64{"green": 1.0}},
		{Name: "pikachu", Type: map[string]float64{"electric": 1.0}, Color: map[string]float64{"yellow": 1.0}},
	}
	questions := []domain.Question{
		{ID: "q-fire", Text: "Is it a fire type?", Category: domain.CategoryType, TargetAttribute: "fire"},
		{ID: "q-water", Text: "Is it a water type?", Category: domain.CategoryType, TargetAttribute: "water"},
		{ID: "q-red", Text: "Is it red?", Category: domain.CategoryColor, TargetAttribute: "red"},
		{ID: "q-blue", Text: "Is it blue?", Category: domain.CategoryColor, TargetAttribute: "blue"},
	}

	cat, err := catalog.New(candidates, questions)
	require.NoError(t, err)
	return cat
}

func TestNewSession_RequiresCatalog(t *testing.T) {
	_, err := NewSession(nil)
	require.ErrorIs(t, err, ErrNoCatalog)
}

func TestSession_NextQuestionMarksAsked(t *testing.T) {
	s, err := NewSession(newTestCatalog(t))
	require.NoError(t, err)

	q := s.NextQuestion()
	require.NotNil(t, q)

	// Even unanswered, an asked question is never re-asked.
	q2 := s.NextQuestion()
	if q2 != nil {
		require.NotEqual(t, q.ID, q2.ID)
	}
}

func TestSession_ExhaustsWhenNoQuestionClearsFloor(t *testing.T) {
	s, err := NewSession(newTestCatalog(t))
	require.NoError(t, err)

	// Drain every question worth asking.
	for i := 0; i < 10; i++ {
		if s.NextQuestion() == nil {
			break
		}
	}

	require.Nil(t, s.NextQuestion())
	require.Equal(t, StatusExhausted, s.Status())
}

func TestSession_RecordAnswerUnknownID(t *testing.T) {
	s, err := NewSession(newTestCatalog(t))
	require.NoError(t, err)

	err = s.RecordAnswer("no-such-question", domain.ResponseYes)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownQuestion))

	// Rejected atomically: no partial write to the history.
	require.Equal(t, 0, s.QuestionsAsked())
}

func TestSession_RecordAnswerOverwrites(t *testing.T) {
	s, err := NewSession(newTestCatalog(t))
	require.NoError(t, err)

	require.NoError(t, s.RecordAnswer("q-fire", domain.ResponseYes))
	require.NoError(t, s.RecordAnswer("q-fire", domain.ResponseNo))

	// One distinct question answered, with the later response in effect:
	// charmander (fire) must now rank below the non-fire candidates.
	require.Equal(t, 1, s.QuestionsAsked())

	ranked := s.TopCandidates(4)
	require.Len(t, ranked, 4)
	require.Equal(t, "charmander", ranked[3].Candidate.Name)
}

func TestSession_RecordWrongGuessIdempotent(t *testing.T) {
	s, err := NewSession(newTestCatalog(t))
	require.NoError(t, err)

	s.RecordWrongGuess("pikachu")
	require.Equal(t, 3, s.Remaining())

	s.RecordWrongGuess("pikachu")
	require.Equal(t, 3, s.Remaining())

	// Unknown names are a no-op too.
	s.RecordWrongGuess("missingno")
	require.Equal(t, 3, s.Remaining())
}

func TestSession_WrongGuessesNeverReadded(t *testing.T) {
	s, err := NewSession(newTestCatalog(t))
	require.NoError(t, err)

	s.RecordWrongGuess("charmander")
	require.NoError(t, s.RecordAnswer("q-fire", domain.ResponseYes))

	for _, rc := range s.TopCandidates(0) {
		require.NotEqual(t, "charmander", rc.Candidate.Name)
	}
}

func TestSession_SingleRemainingCandidateIsGuessed(t *testing.T) {
	s, err := NewSession(newTestCatalog(t))
	require.NoError(t, err)

	s.RecordWrongGuess("charmander")
	s.RecordWrongGuess("squirtle")
	s.RecordWrongGuess("bulbasaur")

	g := s.ShouldGuess()
	require.NotNil(t, g)
	require.Equal(t, "pikachu", g.Name)
}

func TestSession_OverAtRoundCap(t *testing.T) {
	candidates := []domain.Candidate{
		{Name: "a", Type: map[string]float64{"x0": 1.0}},
		{Name: "b", Type: map[string]float64{"x1": 1.0}},
	}
	var questions []domain.Question
	for i := 0; i < engine.MaxRounds+2; i++ {
		questions = append(questions, domain.Question{
			ID:              fmt.Sprintf("q%d", i),
			Text:            fmt.Sprintf("question %d", i),
			Category:        domain.CategoryType,
			TargetAttribute: fmt.Sprintf("x%d", i),
		})
	}
	cat, err := catalog.New(candidates, questions)
	require.NoError(t, err)

	s, err := NewSession(cat)
	require.NoError(t, err)
	require.False(t, s.Over())

	for i := 0; i < engine.MaxRounds; i++ {
		require.NoError(t, s.RecordAnswer(fmt.Sprintf("q%d", i), domain.ResponseDontKnow))
	}

	require.Equal(t, engine.MaxRounds, s.QuestionsAsked())
	require.True(t, s.Over())
	require.NotNil(t, s.ShouldGuess())
}

func TestSession_Finish(t *testing.T) {
	s, err := NewSession(newTestCatalog(t))
	require.NoError(t, err)

	s.Finish(true)
	require.Equal(t, StatusWon, s.Status())
	require.True(t, s.Over())

	// Terminal sessions refuse further questions.
	require.Nil(t, s.NextQuestion())
}

func TestSession_AnswerSnapshotsQuestionTarget(t *testing.T) {
	s, err := NewSession(newTestCatalog(t))
	require.NoError(t, err)

	require.NoError(t, s.RecordAnswer("q-fire", domain.ResponseYes))

	// The answer's effect is fixed by the snapshot: charmander leads
	// regardless of any later interpretation of q-fire.
	ranked := s.TopCandidates(1)
	require.Equal(t, "charmander", ranked[0].Candidate.Name)
}
