package service

import (
	"context"

	"github.com/mytime/console/internal/core/domain"
	"github.com/mytime/console/internal/core/ports"
	"github.com/mytime/console/internal/pkg/metrics"
)

// Guard gates a route subtree on the account's session and role. A denial
// performs exactly one navigation, to the decision's target.
type Guard struct {
	name      string
	navigator ports.Navigator
	evaluate  func(ctx context.Context, url string) ports.GuardDecision
}

// NewAdminGuard admits administrators and admins. Other authenticated users
// are sent to the user dashboard.
func NewAdminGuard(account ports.AccountService, navigator ports.Navigator) *Guard {
	return &Guard{
		name:      "admin",
		navigator: navigator,
		evaluate: func(ctx context.Context, _ string) ports.GuardDecision {
			if !account.IsAuthenticated(ctx) {
				return deny(ports.GuardDenyRedirectLogin, domain.RouteLogin)
			}
			if !account.IsAdmin(ctx) {
				return deny(ports.GuardDenyRedirectOtherDashboard, domain.RouteUserDashboard)
			}
			return ports.GuardDecision{Outcome: ports.GuardPermit}
		},
	}
}

// NewUserGuard admits authenticated non-admin users. An unauthenticated
// visitor's URL is remembered so login can return to it.
func NewUserGuard(account ports.AccountService, navigator ports.Navigator) *Guard {
	return &Guard{
		name:      "user",
		navigator: navigator,
		evaluate: func(ctx context.Context, url string) ports.GuardDecision {
			if !account.IsAuthenticated(ctx) {
				account.SetRedirectURL(url)
				return deny(ports.GuardDenyRedirectLogin, domain.RouteLogin)
			}
			if account.IsAdmin(ctx) {
				return deny(ports.GuardDenyRedirectOtherDashboard, domain.RouteAdminDashboard)
			}
			return ports.GuardDecision{Outcome: ports.GuardPermit}
		},
	}
}

// NewAdministratorGuard admits only the administrator role.
func NewAdministratorGuard(account ports.AccountService, navigator ports.Navigator) *Guard {
	return &Guard{
		name:      "administrator",
		navigator: navigator,
		evaluate: func(ctx context.Context, _ string) ports.GuardDecision {
			switch {
			case !account.IsAuthenticated(ctx):
				return deny(ports.GuardDenyRedirectLogin, domain.RouteLogin)
			case account.IsAdministrator(ctx):
				return ports.GuardDecision{Outcome: ports.GuardPermit}
			case account.IsRegularAdmin(ctx):
				return deny(ports.GuardDenyRedirectOtherDashboard, domain.RouteAdminDashboard)
			default:
				return deny(ports.GuardDenyRedirectOtherDashboard, domain.RouteUserDashboard)
			}
		},
	}
}

func deny(outcome ports.GuardOutcome, target string) ports.GuardDecision {
	return ports.GuardDecision{Outcome: outcome, Target: target}
}

func (g *Guard) Name() string { return g.name }

// Check evaluates the guard for url.
func (g *Guard) Check(ctx context.Context, url string) ports.GuardDecision {
	d := g.evaluate(ctx, url)
	metrics.GuardDecisionsTotal.WithLabelValues(g.name, d.Outcome.String()).Inc()
	if !d.Permitted() {
		g.navigator.Navigate(d.Target)
	}
	return d
}

// CanActivate is the boolean view of Check.
func (g *Guard) CanActivate(ctx context.Context, url string) bool {
	return g.Check(ctx, url).Permitted()
}

var _ ports.RouteGuard = (*Guard)(nil)
