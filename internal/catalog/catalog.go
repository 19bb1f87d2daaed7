// Package catalog loads and validates the immutable candidate/question data the
// engine plays over. A Catalog is built once and shared read-only by every
// session afterwards.
package catalog

import (
	"errors"
	"fmt"

	"github.com/pokedexlabs/pokenator/internal/domain"
)

var (
	ErrNoCandidates = errors.New("catalog: no candidates")
	ErrNoQuestions  = errors.New("catalog: no questions")
)

type Catalog struct {
	candidates []domain.Candidate
	questions  []domain.Question

	candidateByName map[string]*domain.Candidate
	questionByID    map[string]*domain.Question
}

// New validates the raw catalog data and freezes it. Empty or malformed data is
// fatal here; sessions must never be created over an undefined candidate set.
func New(candidates []domain.Candidate, questions []domain.Question) (*Catalog, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	c := &Catalog{
		candidates:      candidates,
		questions:       questions,
		candidateByName: make(map[string]*domain.Candidate, len(candidates)),
		questionByID:    make(map[string]*domain.Question, len(questions)),
	}

	for i := range c.candidates {
		cand := &c.candidates[i]
		if cand.Name == "" {
			return nil, fmt.Errorf("catalog: candidate %d has no name", i)
		}
		if _, ok := c.candidateByName[cand.Name]; ok {
			return nil, fmt.Errorf("catalog: duplicate candidate %q", cand.Name)
		}
		for category, degrees := range map[string]map[string]float64{
			domain.CategoryType:  cand.Type,
			domain.CategoryColor: cand.Color,
			domain.CategoryOther: cand.Other,
		} {
			for attr, v := range degrees {
				// The comparison is written to also reject NaN.
				if !(v >= 0 && v <= 1) {
					return nil, fmt.Errorf("catalog: candidate %q %s attribute %q has degree %v outside [0,1]",
						cand.Name, category, attr, v)
				}
			}
		}
		c.candidateByName[cand.Name] = cand
	}

	for i := range c.questions {
		q := &c.questions[i]
		if q.ID == "" {
			return nil, fmt.Errorf("catalog: question %d has no id", i)
		}
		if _, ok := c.questionByID[q.ID]; ok {
			return nil, fmt.Errorf("catalog: duplicate question id %q", q.ID)
		}
		if !domain.ValidCategory(q.Category) {
			return nil, fmt.Errorf("catalog: question %q has invalid category %q", q.ID, q.Category)
		}
		if q.TargetAttribute == "" {
			return nil, fmt.Errorf("catalog: question %q has no target attribute", q.ID)
		}
		if q.Importance == 0 {
			q.Importance = 1.0
		}
		c.questionByID[q.ID] = q
	}

	return c, nil
}

// Candidates returns pointers to every candidate in catalog order. The returned
// slice is fresh on each call; the candidates themselves are shared and must
// not be mutated.
func (c *Catalog) Candidates() []*domain.Candidate {
	out := make([]*domain.Candidate, len(c.candidates))
	for i := range c.candidates {
		out[i] = &c.candidates[i]
	}
	return out
}

// Questions returns pointers to every question in catalog order.
func (c *Catalog) Questions() []*domain.Question {
	out := make([]*domain.Question, len(c.questions))
	for i := range c.questions {
		out[i] = &c.questions[i]
	}
	return out
}

func (c *Catalog) Question(id string) (*domain.Question, bool) {
	q, ok := c.questionByID[id]
	return q, ok
}

func (c *Catalog) Candidate(name string) (*domain.Candidate, bool) {
	cand, ok := c.candidateByName[name]
	return cand, ok
}

func (c *Catalog) CandidateCount() int { return len(c.candidates) }

func (c *Catalog) QuestionCount() int { return len(c.questions) }
