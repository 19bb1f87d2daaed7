package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pokedexlabs/pokenator/internal/domain"
	"gopkg.in/yaml.v3"
)

// Load reads candidate and question files and returns a validated catalog.
// Files ending in .yaml or .yml are parsed as YAML, everything else as JSON
// (the shape the extractor writes).
func Load(candidatesPath, questionsPath string) (*Catalog, error) {
	var candidates []domain.Candidate
	if err := loadFile(candidatesPath, &candidates); err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	var questions []domain.Question
	if err := loadFile(questionsPath, &questions); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	return New(candidates, questions)
}

// LoadQuestions reads and validates a questions file on its own, for callers
// that need the question list before any candidates exist (the extraction
// pipeline persisting a catalog it is about to build).
func LoadQuestions(path string) ([]domain.Question, error) {
	var questions []domain.Question
	if err := loadFile(path, &questions); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	seen := make(map[string]struct{}, len(questions))
	for i := range questions {
		q := &questions[i]
		if q.ID == "" {
			return nil, fmt.Errorf("catalog: question %d has no id", i)
		}
		if _, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate question id %q", q.ID)
		}
		seen[q.ID] = struct{}{}
		if !domain.ValidCategory(q.Category) {
			return nil, fmt.Errorf("catalog: question %q has invalid category %q", q.ID, q.Category)
		}
		if q.TargetAttribute == "" {
			return nil, fmt.Errorf("catalog: question %q has no target attribute", q.ID)
		}
		if q.Importance == 0 {
			q.Importance = 1.0
		}
	}
	return questions, nil
}

func loadFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return nil
}
