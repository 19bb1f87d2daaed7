package domain

import "strings"

// Candidate is one catalog entry the game tries to identify. Each category map
// holds attribute-name -> degree in [0,1]; an absent attribute means degree 0.
// Candidates are immutable after catalog load.
type Candidate struct {
	Name  string             `json:"name" yaml:"name"`
	Type  map[string]float64 `json:"type" yaml:"type"`
	Color map[string]float64 `json:"color" yaml:"color"`
	Other map[string]float64 `json:"other" yaml:"other"`
}

// Degree returns how true the attribute is for this candidate. An unknown
// category or missing attribute resolves to 0.
func (c *Candidate) Degree(category, attribute string) float64 {
	var degrees map[string]float64
	switch strings.ToLower(category) {
	case CategoryType:
		degrees = c.Type
	case CategoryColor:
		degrees = c.Color
	case CategoryOther:
		degrees = c.Other
	default:
		return 0
	}
	return degrees[attribute]
}

// CandidateDistance pairs a candidate name with its attribute-profile distance
// to a reference candidate. Lower means more alike.
type CandidateDistance struct {
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
}
