// Package store persists extracted catalogs in Postgres. It is written by the
// extraction pipeline and read once at server startup; live sessions never
// touch it.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/pokedexlabs/pokenator/internal/domain"
)

type CatalogStore struct {
	db *pgxpool.Pool
}

func NewCatalogStore(db *pgxpool.Pool) *CatalogStore {
	return &CatalogStore{db: db}
}

// SaveCatalog replaces the stored catalog atomically. Candidate degree maps are
// additionally flattened into fixed-order attribute-profile vectors so
// NearestCandidates can compare candidates with a single pgvector query.
func (s *CatalogStore) SaveCatalog(ctx context.Context, candidates []domain.Candidate, questions []domain.Question) error {
	vocab := buildVocabulary(candidates)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, table := range []string{"candidates", "questions", "catalog_attributes"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, key := range vocab {
		if _, err := tx.Exec(ctx,
			`INSERT INTO catalog_attributes (position, key) VALUES ($1, $2)`,
			i, key,
		); err != nil {
			return fmt.Errorf("insert attribute %q: %w", key, err)
		}
	}

	for i, c := range candidates {
		profile := pgvector.NewVector(profileVector(&c, vocab))
		if _, err := tx.Exec(ctx,
			`INSERT INTO candidates (name, type_degrees, color_degrees, other_degrees, profile, position)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			c.Name, c.Type, c.Color, c.Other, profile, i,
		); err != nil {
			return fmt.Errorf("insert candidate %q: %w", c.Name, err)
		}
	}

	for i, q := range questions {
		if _, err := tx.Exec(ctx,
			`INSERT INTO questions (id, text, category, target_attribute, importance, position)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			q.ID, q.Text, q.Category, q.TargetAttribute, q.Importance, i,
		); err != nil {
			return fmt.Errorf("insert question %q: %w", q.ID, err)
		}
	}

	return tx.Commit(ctx)
}

// LoadCatalog reads the stored catalog back in its original order.
func (s *CatalogStore) LoadCatalog(ctx context.Context) ([]domain.Candidate, []domain.Question, error) {
	rows, err := s.db.Query(ctx,
		`SELECT name, type_degrees, color_degrees, other_degrees
		 FROM candidates ORDER BY position`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(&c.Name, &c.Type, &c.Color, &c.Other); err != nil {
			return nil, nil, err
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	qrows, err := s.db.Query(ctx,
		`SELECT id, text, category, target_attribute, importance
		 FROM questions ORDER BY position`)
	if err != nil {
		return nil, nil, err
	}
	defer qrows.Close()

	var questions []domain.Question
	for qrows.Next() {
		var q domain.Question
		if err := qrows.Scan(&q.ID, &q.Text, &q.Category, &q.TargetAttribute, &q.Importance); err != nil {
			return nil, nil, err
		}
		questions = append(questions, q)
	}
	if err := qrows.Err(); err != nil {
		return nil, nil, err
	}

	if len(candidates) == 0 || len(questions) == 0 {
		return nil, nil, ErrEmpty
	}
	return candidates, questions, nil
}

// NearestCandidates returns the k candidates whose attribute profiles sit
// closest to the named candidate by cosine distance.
func (s *CatalogStore) NearestCandidates(ctx context.Context, name string, k int) ([]domain.CandidateDistance, error) {
	if k <= 0 {
		k = 5
	}

	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT profile IS NOT NULL FROM candidates WHERE name = $1`, name,
	).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	rows, err := s.db.Query(ctx,
		`SELECT name, profile <=> (SELECT profile FROM candidates WHERE name = $1) AS distance
		 FROM candidates
		 WHERE name <> $1 AND profile IS NOT NULL
		 ORDER BY distance
		 LIMIT $2`,
		name, k,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CandidateDistance
	for rows.Next() {
		var cd domain.CandidateDistance
		if err := rows.Scan(&cd.Name, &cd.Distance); err != nil {
			return nil, err
		}
		out = append(out, cd)
	}
	return out, rows.Err()
}

// buildVocabulary collects every category-qualified attribute name present in
// the catalog, sorted so profile vectors share one dimension order.
func buildVocabulary(candidates []domain.Candidate) []string {
	seen := make(map[string]struct{})
	for _, c := range candidates {
		for attr := range c.Type {
			seen[domain.CategoryType+":"+attr] = struct{}{}
		}
		for attr := range c.Color {
			seen[domain.CategoryColor+":"+attr] = struct{}{}
		}
		for attr := range c.Other {
			seen[domain.CategoryOther+":"+attr] = struct{}{}
		}
	}

	vocab := make([]string, 0, len(seen))
	for key := range seen {
		vocab = append(vocab, key)
	}
	sort.Strings(vocab)
	return vocab
}

func profileVector(c *domain.Candidate, vocab []string) []float32 {
	vec := make([]float32, len(vocab))
	for i, key := range vocab {
		category, attribute, ok := strings.Cut(key, ":")
		if !ok {
			continue
		}
		vec[i] = float32(c.Degree(category, attribute))
	}
	return vec
}
