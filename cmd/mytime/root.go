package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mytime/console/internal/app"
	"github.com/mytime/console/internal/infrastructure/session"
	"github.com/mytime/console/internal/pkg/config"
	"github.com/mytime/console/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "mytime",
	Short: "MyTime HR admin console",
	Long: `Operator console for the MyTime HR backend.

	mytime serve                 run the console host
	mytime login <username>      sign in and keep the session locally
	mytime entities list roles   browse admin data
`,
	SilenceUsage: true,
}

var flagSessionBackend string

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSessionBackend, "session-backend", "",
		"session store: memory, file, redis, mongo or postgres (default from SESSION_BACKEND)")
}

// loadConfig resolves configuration for a command. One-shot commands run in
// a fresh process each time, so an in-memory store is swapped for the file
// store unless the operator asked for memory explicitly.
func loadConfig(oneShot bool) (*config.Config, error) {
	cfg, err := config.Process(context.Background(), nil)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	switch {
	case flagSessionBackend != "":
		cfg.Session.Backend = flagSessionBackend
	case oneShot && (cfg.Session.Backend == "" || cfg.Session.Backend == session.BackendMemory):
		cfg.Session.Backend = session.BackendFile
	}
	return cfg, nil
}

// openApp wires the console for a one-shot command. The caller must Close it.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(true)
	if err != nil {
		return nil, err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr})
	return app.New(cmd.Context(), cfg, log)
}
