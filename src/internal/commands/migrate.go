package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/api-sage/bank-ledger/src/internal/adapter/repository/postgres"
	"github.com/api-sage/bank-ledger/src/internal/config"
)

func newMigrateCommand() *cobra.Command {
	var dir string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations to the ledger database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Store != config.StorePostgres {
				return fmt.Errorf("migrate requires STORE=%s, got %q", config.StorePostgres, cfg.Store)
			}
			if dir == "" {
				dir = cfg.MigrationsDir
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			db, err := postgres.Open(ctx, cfg.DatabaseDSN, postgres.Pool{MaxOpen: cfg.DBMaxOpenConns, MaxIdle: cfg.DBMaxIdleConns})
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := postgres.RunMigrations(ctx, db, dir)
			if err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				fmt.Fprintln(out, "database is up to date")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintf(out, "applied %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "migrations directory (defaults to MIGRATIONS_DIR)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall migration timeout")

	return cmd
}
