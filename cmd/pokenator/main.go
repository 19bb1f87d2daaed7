package main

import (
	"os"

	"github.com/pokedexlabs/pokenator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
