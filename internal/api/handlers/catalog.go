package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pokedexlabs/pokenator/internal/catalog"
	"github.com/pokedexlabs/pokenator/internal/domain"
	"github.com/pokedexlabs/pokenator/internal/store"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
	store   domain.CatalogStore
}

func NewCatalogHandler(cat *catalog.Catalog, catStore domain.CatalogStore) *CatalogHandler {
	return &CatalogHandler{catalog: cat, store: catStore}
}

type questionListItem struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Questions lists the catalog's question set.
func (h *CatalogHandler) Questions(w http.ResponseWriter, r *http.Request) {
	questions := h.catalog.Questions()
	out := make([]questionListItem, 0, len(questions))
	for _, q := range questions {
		out = append(out, questionListItem{ID: q.ID, Text: q.Text, Category: q.Category})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"questions": out,
		"count":     len(out),
	})
}

// Similar returns the candidates with the closest attribute profiles to the
// named one. Only routed when a catalog database is configured.
func (h *CatalogHandler) Similar(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := h.catalog.Candidate(name); !ok {
		writeError(w, http.StatusNotFound, "candidate not found")
		return
	}

	k := 5
	if kStr := r.URL.Query().Get("k"); kStr != "" {
		if parsed, err := strconv.Atoi(kStr); err == nil && parsed > 0 {
			k = parsed
		}
	}

	nearest, err := h.store.NearestCandidates(r.Context(), name, k)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "candidate has no stored profile")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to query similar candidates")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"name":    name,
		"similar": nearest,
	})
}
