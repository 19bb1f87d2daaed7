package extract

import (
	"encoding/json"
	"testing"
)

func parsePokemon(t *testing.T, raw string) *PokemonData {
	t.Helper()
	var p PokemonData
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("parse pokemon: %v", err)
	}
	return &p
}

func parseSpecies(t *testing.T, raw string) *SpeciesData {
	t.Helper()
	var s SpeciesData
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("parse species: %v", err)
	}
	return &s
}

func TestBuildCandidate_Charizard(t *testing.T) {
	p := parsePokemon(t, `{
		"id": 6,
		"name": "charizard",
		"types": [
			{"type": {"name": "fire"}},
			{"type": {"name": "flying"}}
		]
	}`)
	s := parseSpecies(t, `{
		"color": {"name": "red"},
		"shape": {"name": "upright"},
		"varieties": [
			{"is_default": true, "pokemon": {"name": "charizard"}},
			{"is_default": false, "pokemon": {"name": "charizard-mega-x"}},
			{"is_default": false, "pokemon": {"name": "charizard-gmax"}}
		]
	}`)

	c := BuildCandidate(p, s)

	if c.Name != "charizard" {
		t.Errorf("name = %q", c.Name)
	}
	if c.Type["fire"] != 1.0 || c.Type["flying"] != 1.0 {
		t.Errorf("types = %v", c.Type)
	}
	if c.Color["red"] != 1.0 {
		t.Errorf("color = %v", c.Color)
	}
	if c.Other["upright"] != 1.0 {
		t.Errorf("shape missing from other: %v", c.Other)
	}
	if c.Other["mega-evolution"] != 1.0 {
		t.Errorf("mega variety not detected: %v", c.Other)
	}
	if c.Other["gigantamax"] != 1.0 {
		t.Errorf("gmax variety not detected: %v", c.Other)
	}
	if _, ok := c.Other["monotype"]; ok {
		t.Error("dual type flagged monotype")
	}
}

func TestBuildCandidate_MonotypeAndFlags(t *testing.T) {
	p := parsePokemon(t, `{
		"id": 151,
		"name": "mew",
		"types": [{"type": {"name": "psychic"}}]
	}`)
	s := parseSpecies(t, `{
		"color": {"name": "pink"},
		"shape": {"name": "upright"},
		"is_mythical": true
	}`)

	c := BuildCandidate(p, s)

	if c.Other["monotype"] != 1.0 {
		t.Errorf("single type not flagged monotype: %v", c.Other)
	}
	if c.Other["mythical"] != 1.0 {
		t.Errorf("mythical flag missing: %v", c.Other)
	}
	if _, ok := c.Other["legendary"]; ok {
		t.Error("legendary flagged without the species bit")
	}
	if _, ok := c.Other["baby"]; ok {
		t.Error("baby flagged without the species bit")
	}
}

func TestBuildCandidate_EmptySpeciesFields(t *testing.T) {
	p := parsePokemon(t, `{"id": 1, "name": "bulbasaur", "types": [{"type": {"name": "grass"}}]}`)
	s := parseSpecies(t, `{}`)

	c := BuildCandidate(p, s)

	if len(c.Color) != 0 {
		t.Errorf("color populated from empty species: %v", c.Color)
	}
	if _, ok := c.Other[""]; ok {
		t.Error("empty shape name stored as an attribute")
	}
}
