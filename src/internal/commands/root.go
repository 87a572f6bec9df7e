package commands

import (
	"github.com/spf13/cobra"

	"github.com/api-sage/bank-ledger/src/internal/config"
	"github.com/api-sage/bank-ledger/src/internal/logger"
)

// Version is set at build time with -ldflags "-X ...commands.Version=...".
var Version = "dev"

// NewRootCommand creates the ledger CLI with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ledger",
		Short:   "Bank ledger service and operator tooling",
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newSettleCommand(),
		newExpireCommand(),
		newTokenCommand(),
		newHashKeyCommand(),
	)

	return rootCmd
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	logger.SetLevel(cfg.LogLevel)
	return cfg, nil
}
