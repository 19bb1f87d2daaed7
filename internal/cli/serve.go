package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pokedexlabs/pokenator/internal/api"
	"github.com/pokedexlabs/pokenator/internal/catalog"
	"github.com/pokedexlabs/pokenator/internal/config"
	"github.com/pokedexlabs/pokenator/internal/domain"
	"github.com/pokedexlabs/pokenator/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveFromDB bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the game HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveFromDB, "from-db", false,
		"load the catalog from Postgres instead of the catalog files")
}

func runServe(ctx context.Context) error {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	// Optional catalog database: enables the similarity endpoint and, with
	// --from-db, replaces the file loader.
	var catalogStore domain.CatalogStore
	var pool *pgxpool.Pool
	if dbURL := config.DatabaseURL(); dbURL != "" {
		var err error
		pool, err = pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("failed to ping database", zap.Error(err))
		}
		logger.Info("connected to catalog database")
		catalogStore = store.NewCatalogStore(pool)
	}

	cat, err := loadCatalog(ctx, catalogStore, logger)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.Int("candidates", cat.CandidateCount()),
		zap.Int("questions", cat.QuestionCount()))

	app := api.NewApp(cat, catalogStore, logger)
	app.Sweeper.Start()

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	app.Sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
	return nil
}

func loadCatalog(ctx context.Context, catalogStore domain.CatalogStore, logger *zap.Logger) (*catalog.Catalog, error) {
	if serveFromDB && catalogStore != nil {
		candidates, questions, err := catalogStore.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}
		logger.Info("catalog source: database")
		return catalog.New(candidates, questions)
	}
	logger.Info("catalog source: files",
		zap.String("candidates", config.CandidatesPath()),
		zap.String("questions", config.QuestionsPath()))
	return catalog.Load(config.CandidatesPath(), config.QuestionsPath())
}
