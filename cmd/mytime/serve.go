package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mytime/console/internal/app"
	"github.com/mytime/console/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the console host",
	Long: `Runs the HTTP console host: login, guarded dashboards, the admin entity
API, health probes and /metrics. Usage:

	mytime serve
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment()})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := app.New(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("create app: %w", err)
		}
		defer func() {
			if err := a.Close(context.Background()); err != nil {
				log.Warn().Err(err).Msg("close session store")
			}
		}()

		return a.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
