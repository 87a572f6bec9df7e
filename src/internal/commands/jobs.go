package commands

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/api-sage/bank-ledger/src/internal/commons"
)

func newSettleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "settle",
		Short: "Run one settlement pass over pending transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd.Context(), func(ctx context.Context, app *application) error {
				resp, err := app.guarded.RunOnce(ctx)
				return printResponse(cmd.OutOrStdout(), resp, err)
			})
		},
	}
}

func newExpireCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "expire",
		Short: "Mark accounts and cards past their expiry date as expired",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd.Context(), func(ctx context.Context, app *application) error {
				resp, err := app.expiry.Sweep(ctx)
				return printResponse(cmd.OutOrStdout(), resp, err)
			})
		},
	}
}

func withApplication(ctx context.Context, fn func(context.Context, *application) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(ctx, app)
}

// printResponse writes the envelope even on failure so operators see the error code.
func printResponse[T any](out io.Writer, resp commons.Response[T], err error) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(resp); encErr != nil {
		return encErr
	}
	return err
}
