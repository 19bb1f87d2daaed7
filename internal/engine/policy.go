package engine

import "github.com/pokedexlabs/pokenator/internal/domain"

const (
	// GuessProbabilityThreshold is deliberately low: over a large catalog even
	// the true answer rarely dominates the distribution in absolute terms.
	GuessProbabilityThreshold = 0.15

	// GuessLeadRatio is how far the top candidate must outstrip the runner-up
	// to count as a clear leader.
	GuessLeadRatio = 2.0

	// MaxRounds is the hard cap on answered questions before a guess is forced.
	MaxRounds = 10
)

// ShouldGuess decides whether to stop asking and commit to the top-ranked
// candidate. It returns nil to continue the question loop. The rule is a
// heuristic, not a formal stopping criterion: guess when the leader is both
// reasonably probable and clearly ahead, or when the round budget is spent.
func ShouldGuess(candidates []*domain.Candidate, answers []domain.Answer) *domain.Candidate {
	if len(candidates) == 0 {
		return nil
	}

	ranked := Probabilities(candidates, answers)
	top := ranked[0]

	highConfidence := top.Probability >= GuessProbabilityThreshold

	clearLeader := len(ranked) == 1 ||
		top.Probability/ranked[1].Probability >= GuessLeadRatio

	tooManyQuestions := len(answers) >= MaxRounds

	if (highConfidence && clearLeader) || tooManyQuestions {
		return top.Candidate
	}
	return nil
}
