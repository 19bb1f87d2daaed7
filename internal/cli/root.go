// Package cli wires the pokenator commands: the HTTP server, the catalog
// extraction pipeline, and the local terminal game.
package cli

import (
	"github.com/pokedexlabs/pokenator/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pokenator",
	Short: "20-questions guessing game engine",
	Long: "Pokenator plays 20 questions against a hidden pick from its catalog.\n" +
		"It asks discriminating questions, keeps a belief distribution over the\n" +
		"remaining candidates, and guesses when it is sure.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Load()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(versionCmd)
}
