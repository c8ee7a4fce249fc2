package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mytime/console/internal/api/handler"
	"github.com/mytime/console/internal/api/middleware"
	"github.com/mytime/console/internal/core/domain"
	"github.com/mytime/console/internal/core/ports"
	"github.com/mytime/console/internal/core/service"
	"github.com/mytime/console/internal/infrastructure/backend"
	"github.com/mytime/console/internal/pkg/clock"
)

// Deps are the collaborators the console host routes to.
type Deps struct {
	Account      ports.AccountService
	Navigator    ports.Navigator
	Entities     *backend.EntityClient
	Store        ports.SessionStore
	StoreBackend string
	Clock        clock.Clock
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	e.Use(requestLogger(deps.Log))

	clk := deps.Clock
	if clk == nil {
		clk = clock.Real()
	}

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(deps.Account, deps.Navigator)
	pageHandler := handler.NewPageHandler()
	entityHandler := handler.NewEntityHandler(deps.Entities, func(ctx context.Context) ports.Enricher {
		return service.AuditEnricherFor(ctx, deps.Account, clk)
	})
	session := middleware.Session(deps.Account)

	// --- Session routes ---
	e.GET(domain.RouteLogin, sessionHandler.LoginPage)
	e.POST(domain.RouteLogin, sessionHandler.Login)
	e.POST("/logout", sessionHandler.Logout)
	e.POST("/activity", sessionHandler.Activity)
	e.GET("/session", sessionHandler.Session, session)

	// --- Guarded console areas ---
	admin := e.Group("/admin", session, middleware.Guard(service.NewAdminGuard(deps.Account, deps.Navigator), deps.Navigator))
	admin.GET("/api/entities/:resource", entityHandler.List)
	admin.POST("/api/entities/:resource", entityHandler.Save)
	admin.DELETE("/api/entities/:resource/:id", entityHandler.Delete)
	admin.GET("/*", pageHandler.Show)

	user := e.Group("/user", session, middleware.Guard(service.NewUserGuard(deps.Account, deps.Navigator), deps.Navigator))
	user.GET("/*", pageHandler.Show)

	administrator := e.Group("/administrator", session, middleware.Guard(service.NewAdministratorGuard(deps.Account, deps.Navigator), deps.Navigator))
	administrator.GET("/*", pageHandler.Show)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Store, deps.StoreBackend)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – does the session store answer?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
