package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pokedexlabs/pokenator/internal/api/handlers"
	mw "github.com/pokedexlabs/pokenator/internal/api/middleware"
	"github.com/pokedexlabs/pokenator/internal/catalog"
	"github.com/pokedexlabs/pokenator/internal/config"
	"github.com/pokedexlabs/pokenator/internal/domain"
	"go.uber.org/zap"
)

// App holds the router and the session sweeper for lifecycle management.
type App struct {
	Router  *chi.Mux
	Sweeper *Sweeper

	catalog      *catalog.Catalog
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// NewApp wires the transport layer: session registry, handlers, middleware
// chain, routes. catStore may be nil; the similarity endpoint is only routed
// when it is present.
func NewApp(cat *catalog.Catalog, catStore domain.CatalogStore, logger *zap.Logger) *App {
	registry := NewRegistry(cat)

	gameHandler := handlers.NewGameHandler(registry, logger)
	catalogHandler := handlers.NewCatalogHandler(cat, catStore)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Sweeper:   NewSweeper(registry, config.SessionTTL(), logger),
		catalog:   cat,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	r.Get("/health", app.healthHandler())
	r.Get("/metrics", app.metricsHandler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/game", gameHandler.Start)

		r.Route("/game/{gameID}", func(r chi.Router) {
			r.Get("/", gameHandler.GetState)
			r.Delete("/", gameHandler.Delete)
			r.Get("/question", gameHandler.GetQuestion)
			r.Post("/answer", gameHandler.SubmitAnswer)
			r.Post("/wrong-guess", gameHandler.WrongGuess)
			r.Post("/result", gameHandler.Result)
		})

		r.Get("/questions", catalogHandler.Questions)

		if catStore != nil {
			r.Get("/candidates/{name}/similar", catalogHandler.Similar)
		}
	})

	return app
}

func (app *App) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":     "ok",
			"candidates": app.catalog.CandidateCount(),
			"questions":  app.catalog.QuestionCount(),
		})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Compile-time wiring checks.
var _ handlers.SessionRegistry = (*Registry)(nil)
