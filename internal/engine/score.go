// Package engine implements the belief/inference core of the guessing game:
// confidence scoring over answer histories, entropy-driven question selection,
// and the guess-commitment policy. Every function here is pure; the engine
// holds no state and performs no I/O.
package engine

import (
	"sort"

	"github.com/pokedexlabs/pokenator/internal/domain"
)

// MinConfidence is the floor applied to every candidate's confidence so no
// candidate becomes permanently unrecoverable through rounding or later
// probability division.
const MinConfidence = 0.001

// MatchScore maps an attribute degree and a response to [0,1]: how well the
// response fits a candidate carrying that degree.
func MatchScore(degree float64, response domain.Response) float64 {
	switch response {
	case domain.ResponseYes:
		return degree
	case domain.ResponseNo:
		return 1.0 - degree
	case domain.ResponseSomewhat:
		return 0.7 * degree
	case domain.ResponseNotReally:
		return 0.7 * (1.0 - degree)
	default:
		// DontKnow and anything unexpected carry no signal.
		return 0.5
	}
}

// Confidence is the unnormalized plausibility of a candidate given the full
// answer history: the product of per-answer match scores, 1.0 when no answers
// exist. Multiplication is commutative, so answer order does not matter.
func Confidence(c *domain.Candidate, answers []domain.Answer) float64 {
	if len(answers) == 0 {
		return 1.0
	}

	total := 1.0
	for _, a := range answers {
		degree := c.Degree(a.Category, a.TargetAttribute)
		total *= MatchScore(degree, a.Response)
	}

	if total < MinConfidence {
		return MinConfidence
	}
	return total
}

// RankedCandidate pairs a candidate with its normalized probability.
type RankedCandidate struct {
	Candidate   *domain.Candidate
	Probability float64
}

// Probabilities computes the belief distribution over the given candidates,
// sorted descending with ties kept in input (catalog) order. The distribution
// is recomputed from scratch: Confidence is a pure function of the full
// history, so there is nothing to maintain incrementally.
func Probabilities(candidates []*domain.Candidate, answers []domain.Answer) []RankedCandidate {
	ranked := make([]RankedCandidate, 0, len(candidates))

	var sum float64
	for _, c := range candidates {
		conf := Confidence(c, answers)
		ranked = append(ranked, RankedCandidate{Candidate: c, Probability: conf})
		sum += conf
	}

	// Guard against a degenerate set; reachable after enough contradictory
	// answers, so it is normalized away rather than surfaced as an error.
	if sum == 0 {
		sum = 1.0
	}
	for i := range ranked {
		ranked[i].Probability /= sum
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Probability > ranked[j].Probability
	})

	return ranked
}
