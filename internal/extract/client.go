// Package extract builds the candidate catalog from the public PokeAPI. It is
// a one-off batch pipeline, unrelated to runtime inference.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client is a paced PokeAPI reader. Every request waits on the limiter so a
// full catalog pull stays polite to the public API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(baseURL string, interval time.Duration) *Client {
	if interval <= 0 {
		interval = time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
	}
}

// PokemonData carries the fields we read from /pokemon/{id}.
type PokemonData struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
}

// SpeciesData carries the fields we read from /pokemon-species/{id}.
type SpeciesData struct {
	Color struct {
		Name string `json:"name"`
	} `json:"color"`
	Shape struct {
		Name string `json:"name"`
	} `json:"shape"`
	IsLegendary     bool `json:"is_legendary"`
	IsMythical      bool `json:"is_mythical"`
	IsBaby          bool `json:"is_baby"`
	FormsSwitchable bool `json:"forms_switchable"`
	Varieties       []struct {
		IsDefault bool `json:"is_default"`
		Pokemon   struct {
			Name string `json:"name"`
		} `json:"pokemon"`
	} `json:"varieties"`
}

func (c *Client) Pokemon(ctx context.Context, id int) (*PokemonData, error) {
	var p PokemonData
	if err := c.get(ctx, fmt.Sprintf("%s/pokemon/%d", c.baseURL, id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Species(ctx context.Context, id int) (*SpeciesData, error) {
	var s SpeciesData
	if err := c.get(ctx, fmt.Sprintf("%s/pokemon-species/%d", c.baseURL, id), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
