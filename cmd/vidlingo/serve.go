package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/bnema/vidlingo/internal/adapter/http"
	"github.com/bnema/vidlingo/internal/infrastructure/logger"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	var noWorkers bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the job workers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := openApp(runCtx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			artifacts, local, err := a.artifactStore()
			if err != nil {
				return err
			}

			// Workers keep running until the HTTP server has drained.
			workerCtx, workerCancel := context.WithCancel(context.WithoutCancel(runCtx))
			defer workerCancel()
			if !noWorkers {
				d := a.dispatcher(a.pipeline(artifacts))
				d.Start(workerCtx)
				defer d.Wait()
			}

			var files httpadapter.FileStore
			if local != nil {
				files = local
			}
			server := httpadapter.NewServer(a.jobService(), files, a.events, version, cfg.SubmitRateMax, cfg.BehindProxy)
			go server.SweepLimits(workerCtx)

			addr := fmt.Sprintf(":%d", cfg.Port)
			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server,
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			serveErr := make(chan error, 1)
			go func() {
				logger.Info.Printf("vidlingo %s listening on %s", version, addr)
				serveErr <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-serveErr:
				workerCancel()
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			case <-runCtx.Done():
			}

			logger.Info.Printf("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error.Printf("http shutdown error: %v", err)
			}
			workerCancel()
			return nil
		},
	}

	cmd.Flags().BoolVar(&noWorkers, "no-workers", false, "Serve the API only and leave jobs to separate worker processes")
	return cmd
}

func newWorkerCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run job workers without the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := openApp(runCtx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			artifacts, _, err := a.artifactStore()
			if err != nil {
				return err
			}

			d := a.dispatcher(a.pipeline(artifacts))
			d.Start(runCtx)
			<-runCtx.Done()
			logger.Info.Printf("waiting for in-flight jobs to stop")
			d.Wait()
			return nil
		},
	}
}
