package engine

import (
	"math"
	"testing"

	"github.com/pokedexlabs/pokenator/internal/domain"
)

// fireCatalog is the canonical split scenario: two fire candidates, two not,
// one question targeting type.fire.
func fireCatalog() ([]*domain.Candidate, []*domain.Question) {
	candidates := []*domain.Candidate{
		{Name: "A", Type: map[string]float64{"fire": 1.0}},
		{Name: "B", Type: map[string]float64{"fire": 0.0}},
		{Name: "C", Type: map[string]float64{"fire": 1.0}},
		{Name: "D", Type: map[string]float64{"fire": 0.0}},
	}
	questions := []*domain.Question{
		{ID: "q-fire", Text: "Is it a fire type?", Category: domain.CategoryType, TargetAttribute: "fire", Importance: 1.0},
	}
	return candidates, questions
}

func TestSelectQuestion_DiscriminatingQuestionWins(t *testing.T) {
	candidates, questions := fireCatalog()

	q := SelectQuestion(candidates, questions, nil)
	if q == nil {
		t.Fatal("expected the fire question to be selected")
	}
	if q.ID != "q-fire" {
		t.Fatalf("selected %q, want q-fire", q.ID)
	}
}

func TestSelectQuestion_FireScenarioAfterYes(t *testing.T) {
	candidates, _ := fireCatalog()
	answers := []domain.Answer{{
		QuestionID:      "q-fire",
		Category:        domain.CategoryType,
		TargetAttribute: "fire",
		Response:        domain.ResponseYes,
	}}

	for _, name := range []string{"A", "C"} {
		c := findCandidate(t, candidates, name)
		if got := Confidence(c, answers); got != 1.0 {
			t.Errorf("Confidence(%s) = %v, want 1.0", name, got)
		}
	}
	for _, name := range []string{"B", "D"} {
		c := findCandidate(t, candidates, name)
		if got := Confidence(c, answers); got != MinConfidence {
			t.Errorf("Confidence(%s) = %v, want %v", name, got, MinConfidence)
		}
	}

	ranked := Probabilities(candidates, answers)
	if math.Abs(ranked[0].Probability-0.4998) > 0.001 {
		t.Errorf("top probability = %v, want ~0.4998", ranked[0].Probability)
	}
	if math.Abs(ranked[3].Probability-0.0002) > 0.001 {
		t.Errorf("bottom probability = %v, want ~0.0002", ranked[3].Probability)
	}
}

func TestSelectQuestion_NoInformationReturnsNil(t *testing.T) {
	// Every candidate shares the same degree, so no question can split them.
	candidates := []*domain.Candidate{
		{Name: "A", Type: map[string]float64{"fire": 1.0}},
		{Name: "B", Type: map[string]float64{"fire": 1.0}},
	}
	questions := []*domain.Question{
		{ID: "q-fire", Category: domain.CategoryType, TargetAttribute: "fire"},
	}

	if q := SelectQuestion(candidates, questions, nil); q != nil {
		t.Fatalf("expected no question, got %q", q.ID)
	}
}

func TestSelectQuestion_SkipsAnsweredQuestions(t *testing.T) {
	candidates, questions := fireCatalog()
	answers := []domain.Answer{{
		QuestionID:      "q-fire",
		Category:        domain.CategoryType,
		TargetAttribute: "fire",
		Response:        domain.ResponseDontKnow,
	}}

	if q := SelectQuestion(candidates, questions, answers); q != nil {
		t.Fatalf("answered question was selected again: %q", q.ID)
	}
}

func TestSelectQuestion_TieBreakIsFirstInCatalogOrder(t *testing.T) {
	candidates, _ := fireCatalog()
	// Two questions over the same attribute carry identical gain.
	questions := []*domain.Question{
		{ID: "first", Category: domain.CategoryType, TargetAttribute: "fire"},
		{ID: "second", Category: domain.CategoryType, TargetAttribute: "fire"},
	}

	for i := 0; i < 10; i++ {
		q := SelectQuestion(candidates, questions, nil)
		if q == nil || q.ID != "first" {
			t.Fatalf("tie-break not deterministic: got %v", q)
		}
	}
}

func TestSelectQuestion_EmptyInputs(t *testing.T) {
	candidates, questions := fireCatalog()

	if q := SelectQuestion(nil, questions, nil); q != nil {
		t.Fatal("expected nil with no candidates")
	}
	if q := SelectQuestion(candidates, nil, nil); q != nil {
		t.Fatal("expected nil with no questions")
	}
}

func TestInformationGain_NonNegative(t *testing.T) {
	candidates, _ := fireCatalog()
	weights := []float64{1, 1, 1, 1}

	questions := []*domain.Question{
		{ID: "split", Category: domain.CategoryType, TargetAttribute: "fire"},
		{ID: "uniform", Category: domain.CategoryType, TargetAttribute: "water"},
		{ID: "unknown-cat", Category: "shape", TargetAttribute: "round"},
	}

	for _, q := range questions {
		if gain := informationGain(q, candidates, weights); gain < 0 {
			t.Errorf("gain(%s) = %v, want >= 0", q.ID, gain)
		}
	}
}

func TestBinnedEntropy(t *testing.T) {
	// Even split across two bins with equal weight is exactly one bit.
	got := binnedEntropy([]float64{0.05, 0.95}, []float64{1, 1})
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("entropy = %v, want 1.0", got)
	}

	// A single bin has zero entropy; 1.0 clamps into the top bin.
	if got := binnedEntropy([]float64{1.0, 0.95}, []float64{1, 1}); got != 0 {
		t.Fatalf("entropy = %v, want 0", got)
	}

	if got := binnedEntropy(nil, nil); got != 0 {
		t.Fatalf("entropy of empty set = %v, want 0", got)
	}

	// Out-of-range values clamp into the edge bins instead of indexing
	// outside the array.
	if got := binnedEntropy([]float64{-0.5, 0.05}, []float64{1, 1}); got != 0 {
		t.Fatalf("entropy with negative value = %v, want 0", got)
	}
}

func TestSelectQuestion_OutOfRangeDegreeDoesNotPanic(t *testing.T) {
	// Catalog validation rejects these at load; the selector still must not
	// crash if one slips through another construction path.
	candidates := []*domain.Candidate{
		{Name: "glitch", Type: map[string]float64{"fire": -0.5}},
		{Name: "squirtle", Type: map[string]float64{"water": 1.0}},
	}
	questions := []*domain.Question{
		{ID: "q-fire", Category: domain.CategoryType, TargetAttribute: "fire"},
	}

	SelectQuestion(candidates, questions, nil)
}

func findCandidate(t *testing.T, candidates []*domain.Candidate, name string) *domain.Candidate {
	t.Helper()
	for _, c := range candidates {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("candidate %q not found", name)
	return nil
}
