package engine

import "math"

const entropyBins = 10

// binnedEntropy computes the Shannon entropy of a weighted attribute-value
// distribution. Values in [0,1] are grouped into ten equal-width bins
// (1.0 clamps into the top bin), bin totals are normalized by the overall
// weight, and entropy is summed over non-empty bins.
func binnedEntropy(values, weights []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var bins [entropyBins]float64
	var totalWeight float64

	for i, v := range values {
		// Degrees are validated into [0,1] at catalog load; clamp anyway so a
		// stray value cannot index outside the bin array.
		idx := int(v * entropyBins)
		if idx < 0 {
			idx = 0
		}
		if idx > entropyBins-1 {
			idx = entropyBins - 1
		}
		bins[idx] += weights[i]
		totalWeight += weights[i]
	}

	if totalWeight == 0 {
		return 0
	}

	var entropy float64
	for _, w := range bins {
		if w > 0 {
			p := w / totalWeight
			entropy -= p * math.Log2(p)
		}
	}
	return entropy
}
