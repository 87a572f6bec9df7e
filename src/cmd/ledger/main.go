package main

import (
	"os"

	"github.com/api-sage/bank-ledger/src/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
