package extract

import (
	"strings"

	"github.com/pokedexlabs/pokenator/internal/domain"
)

// BuildCandidate folds raw PokeAPI records into the catalog's degree-map
// shape. Factual attributes get degree 1.0; everything absent stays at the
// implicit 0.
func BuildCandidate(p *PokemonData, s *SpeciesData) domain.Candidate {
	c := domain.Candidate{
		Name:  p.Name,
		Type:  make(map[string]float64, len(p.Types)),
		Color: make(map[string]float64, 1),
		Other: make(map[string]float64),
	}

	for _, t := range p.Types {
		if t.Type.Name != "" {
			c.Type[t.Type.Name] = 1.0
		}
	}

	if s.Color.Name != "" {
		c.Color[s.Color.Name] = 1.0
	}
	if s.Shape.Name != "" {
		c.Other[s.Shape.Name] = 1.0
	}

	if s.IsLegendary {
		c.Other["legendary"] = 1.0
	}
	if s.IsMythical {
		c.Other["mythical"] = 1.0
	}
	if s.IsBaby {
		c.Other["baby"] = 1.0
	}
	if len(c.Type) == 1 {
		c.Other["monotype"] = 1.0
	}

	for _, v := range s.Varieties {
		if v.IsDefault || v.Pokemon.Name == p.Name {
			continue
		}
		if strings.Contains(v.Pokemon.Name, "-mega") {
			c.Other["mega-evolution"] = 1.0
		}
		if strings.Contains(v.Pokemon.Name, "-gmax") {
			c.Other["gigantamax"] = 1.0
		}
	}

	return c
}
