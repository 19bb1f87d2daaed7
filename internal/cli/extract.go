package cli

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pokedexlabs/pokenator/internal/catalog"
	"github.com/pokedexlabs/pokenator/internal/config"
	"github.com/pokedexlabs/pokenator/internal/extract"
	"github.com/pokedexlabs/pokenator/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	extractFrom      int
	extractTo        int
	extractOut       string
	extractToDB      bool
	extractQuestions string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Build the candidate catalog from PokeAPI",
	Long: "Fetches pokemon and species records for an id range, folds them into\n" +
		"degree maps, and writes the catalog file the server loads at startup.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd)
	},
}

func init() {
	extractCmd.Flags().IntVar(&extractFrom, "from", 1, "first pokemon id (inclusive)")
	extractCmd.Flags().IntVar(&extractTo, "to", 151, "last pokemon id (inclusive)")
	extractCmd.Flags().StringVar(&extractOut, "out", "data/pokemon.json", "output catalog file")
	extractCmd.Flags().BoolVar(&extractToDB, "db", false, "also persist the catalog to Postgres")
	extractCmd.Flags().StringVar(&extractQuestions, "questions", "", "questions file to persist alongside candidates (with --db)")
}

func runExtract(cmd *cobra.Command) error {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()

	opts := extract.Options{
		From:    extractFrom,
		To:      extractTo,
		OutPath: extractOut,
	}

	if extractToDB {
		dbURL := config.DatabaseURL()
		if dbURL == "" {
			return fmt.Errorf("--db requires DATABASE_URL")
		}
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}
		opts.Store = store.NewCatalogStore(pool)

		if extractQuestions != "" {
			questions, err := catalog.LoadQuestions(extractQuestions)
			if err != nil {
				return err
			}
			opts.Questions = questions
		}
	}

	client := extract.NewClient(config.PokeAPIBaseURL(), config.ExtractInterval())
	extractor := extract.NewExtractor(client, logger)

	candidates, err := extractor.Run(ctx, opts)
	if err != nil {
		return err
	}

	logger.Info("extraction complete", zap.Int("candidates", len(candidates)))
	return nil
}
