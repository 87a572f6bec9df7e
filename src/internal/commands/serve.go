package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/api-sage/bank-ledger/src/internal/logger"
	"github.com/api-sage/bank-ledger/src/internal/scheduler"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand() *cobra.Command {
	var withoutJobs bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled settlement and expiry jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, withoutJobs)
		},
	}

	cmd.Flags().BoolVar(&withoutJobs, "no-jobs", false, "serve the API without starting the scheduler")

	return cmd
}

func runServe(ctx context.Context, withoutJobs bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("close resources failed", err, nil)
		}
	}()

	var jobs *scheduler.Scheduler
	if !withoutJobs {
		if jobs, err = app.jobScheduler(); err != nil {
			return err
		}
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           app.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", logger.Fields{"addr": cfg.HTTPAddr, "store": cfg.Store})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		logger.Info("http server shutting down", nil)
		return server.Shutdown(shutdownCtx)
	})

	if jobs != nil {
		g.Go(func() error {
			return jobs.Start(gctx)
		})
	}

	return g.Wait()
}
