package domain

import "context"

// CatalogStore persists an extracted catalog and serves it back at startup.
// The runtime never writes through it; sessions only ever read the in-memory
// catalog loaded once at boot.
type CatalogStore interface {
	SaveCatalog(ctx context.Context, candidates []Candidate, questions []Question) error
	LoadCatalog(ctx context.Context) ([]Candidate, []Question, error)
	NearestCandidates(ctx context.Context, name string, k int) ([]CandidateDistance, error)
}
