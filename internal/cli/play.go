package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pokedexlabs/pokenator/internal/catalog"
	"github.com/pokedexlabs/pokenator/internal/config"
	"github.com/pokedexlabs/pokenator/internal/tui"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load(config.CandidatesPath(), config.QuestionsPath())
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		model, err := tui.NewModel(cat)
		if err != nil {
			return err
		}

		_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}
