package engine

import "github.com/pokedexlabs/pokenator/internal/domain"

const (
	// minInformationGain filters questions that would barely move the belief
	// distribution; asking them wastes a round.
	minInformationGain = 0.01

	// plausibleMatchThreshold selects the candidates a hypothetical response
	// would leave plausible when simulating that response's split.
	plausibleMatchThreshold = 0.6
)

// decisiveResponses are the replies worth simulating when estimating a
// question's split. DontKnow scores 0.5 for every candidate regardless of
// degree, so it contributes no discriminating power by construction.
var decisiveResponses = [...]domain.Response{
	domain.ResponseYes,
	domain.ResponseNo,
	domain.ResponseSomewhat,
	domain.ResponseNotReally,
}

// SelectQuestion picks the question with the highest expected information gain
// against the current belief over the given candidates, or nil when no
// unanswered question clears the gain floor. Nil is a terminal signal for the
// caller, not an error. Ties keep the first question in catalog order.
func SelectQuestion(candidates []*domain.Candidate, questions []*domain.Question, answers []domain.Answer) *domain.Question {
	if len(questions) == 0 || len(candidates) == 0 {
		return nil
	}

	answered := make(map[string]struct{}, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = struct{}{}
	}

	// Candidate weights are shared across all questions this round.
	weights := make([]float64, len(candidates))
	for i, c := range candidates {
		weights[i] = Confidence(c, answers)
	}

	var best *domain.Question
	bestGain := minInformationGain

	for _, q := range questions {
		if _, ok := answered[q.ID]; ok {
			continue
		}
		if gain := informationGain(q, candidates, weights); gain > bestGain {
			best = q
			bestGain = gain
		}
	}

	return best
}

// informationGain estimates the expected entropy reduction from asking q,
// weighting each candidate by its current confidence so near-eliminated
// candidates stop influencing question choice.
func informationGain(q *domain.Question, candidates []*domain.Candidate, weights []float64) float64 {
	values := make([]float64, len(candidates))
	var totalWeight float64
	for i, c := range candidates {
		values[i] = c.Degree(q.Category, q.TargetAttribute)
		totalWeight += weights[i]
	}

	currentEntropy := binnedEntropy(values, weights)

	// Simulate each decisive response: restrict to the candidates that
	// response would leave plausible and weigh the split's entropy by the
	// probability mass it captures.
	var expectedEntropy float64
	for _, response := range decisiveResponses {
		var subsetValues, subsetWeights []float64
		var subsetWeight float64

		for i, v := range values {
			if MatchScore(v, response) > plausibleMatchThreshold {
				subsetValues = append(subsetValues, v)
				subsetWeights = append(subsetWeights, weights[i])
				subsetWeight += weights[i]
			}
		}

		if len(subsetValues) == 0 || totalWeight == 0 {
			continue
		}

		responseWeight := subsetWeight / totalWeight
		expectedEntropy += responseWeight * binnedEntropy(subsetValues, subsetWeights)
	}

	gain := currentEntropy - expectedEntropy
	if gain < 0 {
		return 0
	}
	return gain
}
