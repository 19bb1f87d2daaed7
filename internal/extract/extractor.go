package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pokedexlabs/pokenator/internal/domain"
	"go.uber.org/zap"
)

// Options configures one extraction run over an inclusive id range.
type Options struct {
	From    int
	To      int
	OutPath string

	// Store, when set, also persists the catalog to Postgres alongside the
	// JSON file. Questions supplies the question list to store with it.
	Store     domain.CatalogStore
	Questions []domain.Question
}

// Extractor pulls candidates from PokeAPI and writes the catalog file the
// server and TUI load at startup.
type Extractor struct {
	client *Client
	logger *zap.Logger
}

func NewExtractor(client *Client, logger *zap.Logger) *Extractor {
	return &Extractor{client: client, logger: logger}
}

// Run fetches every id in the range, builds candidates, and writes the result.
// Individual fetch failures abort the run; a partial catalog is worse than a
// retryable one.
func (e *Extractor) Run(ctx context.Context, opts Options) ([]domain.Candidate, error) {
	if opts.From <= 0 || opts.To < opts.From {
		return nil, fmt.Errorf("extract: invalid id range %d..%d", opts.From, opts.To)
	}

	candidates := make([]domain.Candidate, 0, opts.To-opts.From+1)
	for id := opts.From; id <= opts.To; id++ {
		pokemon, err := e.client.Pokemon(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("extract: pokemon %d: %w", id, err)
		}
		species, err := e.client.Species(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("extract: species %d: %w", id, err)
		}

		c := BuildCandidate(pokemon, species)
		candidates = append(candidates, c)

		e.logger.Info("extracted candidate",
			zap.Int("id", id),
			zap.String("name", c.Name),
			zap.Int("type_attrs", len(c.Type)),
			zap.Int("other_attrs", len(c.Other)))
	}

	if opts.OutPath != "" {
		if err := writeJSONFile(opts.OutPath, candidates); err != nil {
			return nil, err
		}
		e.logger.Info("wrote catalog file",
			zap.String("path", opts.OutPath),
			zap.Int("candidates", len(candidates)))
	}

	if opts.Store != nil {
		if err := opts.Store.SaveCatalog(ctx, candidates, opts.Questions); err != nil {
			return nil, fmt.Errorf("extract: persist catalog: %w", err)
		}
		e.logger.Info("persisted catalog to database",
			zap.Int("candidates", len(candidates)),
			zap.Int("questions", len(opts.Questions)))
	}

	return candidates, nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("extract: marshal catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("extract: write catalog: %w", err)
	}
	return nil
}
