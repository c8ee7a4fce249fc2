// Package app assembles the console from configuration: session store,
// backend client, account service and, for the host, the HTTP router.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mytime/console/internal/api"
	"github.com/mytime/console/internal/core/domain"
	"github.com/mytime/console/internal/core/ports"
	"github.com/mytime/console/internal/core/service"
	"github.com/mytime/console/internal/infrastructure/backend"
	"github.com/mytime/console/internal/infrastructure/navigation"
	"github.com/mytime/console/internal/infrastructure/session"
	"github.com/mytime/console/internal/pkg/clock"
	"github.com/mytime/console/internal/pkg/config"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg *config.Config
	log zerolog.Logger

	Store      ports.SessionStore
	closeStore func(context.Context) error
	Clock      clock.Clock
	Navigator  *navigation.Location
	Client     *backend.Client
	Account    *service.AccountService
	Entities   *backend.EntityClient
}

// New wires every collaborator. The account service restores a persisted
// session as part of construction.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	scheme, err := backend.ParseAuthScheme(cfg.Backend.AuthScheme)
	if err != nil {
		return nil, fmt.Errorf("backend config: %w", err)
	}

	store, closeStore, err := session.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	clk := clock.Real()
	nav := navigation.NewLocation(domain.RouteLogin, log)
	client := backend.NewClient(cfg.Backend.URL, backend.NewTransport(store, scheme), cfg.Backend.RequestTimeout, log)
	account := service.NewAccountService(store, backend.NewAuthGateway(client), nav, clk, log, service.AccountOptions{
		Interactive:       cfg.Session.Interactive,
		InactivityTimeout: cfg.Session.InactivityTimeout,
	})

	return &App{
		cfg:        cfg,
		log:        log,
		Store:      store,
		closeStore: closeStore,
		Clock:      clk,
		Navigator:  nav,
		Client:     client,
		Account:    account,
		Entities:   backend.NewEntityClient(client),
	}, nil
}

// Router builds the console host's HTTP surface.
func (a *App) Router() *echo.Echo {
	return api.NewRouter(api.Deps{
		Account:      a.Account,
		Navigator:    a.Navigator,
		Entities:     a.Entities,
		Store:        a.Store,
		StoreBackend: a.cfg.Session.Backend,
		Clock:        a.Clock,
		Log:          a.log,
	})
}

// Serve runs the console host until ctx is cancelled, then drains in-flight
// requests.
func (a *App) Serve(ctx context.Context) error {
	e := a.Router()
	addr := ":" + a.cfg.Port

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", addr).Str("backend", a.cfg.Backend.URL).Msg("console host listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.log.Info().Msg("console host stopped")
	return nil
}

// Close stops the idle timer and releases the session store.
func (a *App) Close(ctx context.Context) error {
	a.Account.Dispose()
	return a.closeStore(ctx)
}
