package ports

import (
	"context"

	"github.com/mytime/console/internal/core/domain"
)

// AccountService owns the session state machine.
type AccountService interface {
	Authenticate(ctx context.Context, creds domain.Credentials) domain.LoginResult
	Logout(ctx context.Context)
	IsAuthenticated(ctx context.Context) bool
	CurrentUser(ctx context.Context) *domain.CurrentUser
	AccessToken(ctx context.Context) string

	IsAdministrator(ctx context.Context) bool
	IsRegularAdmin(ctx context.Context) bool
	IsAdmin(ctx context.Context) bool
	UserRoleName(ctx context.Context) string

	RedirectBasedOnRole(ctx context.Context) string
	SetRedirectURL(url string)
	RecordActivity(ctx context.Context, kind domain.ActivityKind)
}

// GuardOutcome is the result of a route guard evaluation.
type GuardOutcome int

const (
	GuardPermit GuardOutcome = iota
	GuardDenyRedirectLogin
	GuardDenyRedirectOtherDashboard
)

func (o GuardOutcome) String() string {
	switch o {
	case GuardPermit:
		return "permit"
	case GuardDenyRedirectLogin:
		return "deny_login"
	case GuardDenyRedirectOtherDashboard:
		return "deny_dashboard"
	default:
		return "unknown"
	}
}

// GuardDecision carries the outcome and, on denial, the single redirect target.
type GuardDecision struct {
	Outcome GuardOutcome
	Target  string
}

func (d GuardDecision) Permitted() bool { return d.Outcome == GuardPermit }

// RouteGuard gates navigation into a route subtree.
type RouteGuard interface {
	Name() string
	Check(ctx context.Context, url string) GuardDecision
}
