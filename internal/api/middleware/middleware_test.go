package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/mytime/console/internal/core/domain"
	"github.com/mytime/console/internal/core/ports"
)

type stubGuard struct {
	decision ports.GuardDecision
	seen     string
}

func (g *stubGuard) Name() string { return "stub" }

func (g *stubGuard) Check(_ context.Context, url string) ports.GuardDecision {
	g.seen = url
	return g.decision
}

type stubNavigator struct{ path string }

func (n *stubNavigator) Navigate(p string)   { n.path = p }
func (n *stubNavigator) CurrentPath() string { return n.path }

func TestGuard_Permits(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/roles?page=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	g := &stubGuard{decision: ports.GuardDecision{Outcome: ports.GuardPermit}}
	nav := &stubNavigator{}
	called := false
	h := Guard(g, nav)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if g.seen != "/admin/roles?page=2" || nav.path != "/admin/roles?page=2" {
		t.Fatalf("unexpected guard url %q / location %q", g.seen, nav.path)
	}
}

func TestGuard_Redirects(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user/reports", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	g := &stubGuard{decision: ports.GuardDecision{Outcome: ports.GuardDenyRedirectLogin, Target: domain.RouteLogin}}
	h := Guard(g, &stubNavigator{})(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	_ = h(c)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != domain.RouteLogin {
		t.Fatalf("expected Location %s, got %s", domain.RouteLogin, loc)
	}
}

type stubAccount struct {
	user  *domain.CurrentUser
	token string
}

func (a *stubAccount) CurrentUser(context.Context) *domain.CurrentUser { return a.user }
func (a *stubAccount) AccessToken(context.Context) string              { return a.token }
func (a *stubAccount) UserRoleName(context.Context) string {
	if a.user == nil {
		return domain.RoleNameUser
	}
	return a.user.RoleName()
}

func TestSession_InjectsClaims(t *testing.T) {
	exp := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": exp.Unix(),
	}).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/session", nil), rec)

	acct := &stubAccount{user: &domain.CurrentUser{ID: "42", RoleID: domain.RoleAdmin}, token: token}
	h := Session(acct)(func(c echo.Context) error { return nil })
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if c.Get(CtxRole) != domain.RoleNameAdmin {
		t.Errorf("role = %v", c.Get(CtxRole))
	}
	if c.Get(CtxTokenSubject) != "42" {
		t.Errorf("subject = %v", c.Get(CtxTokenSubject))
	}
	if c.Get(CtxTokenExpiry) != exp.Format(time.RFC3339) {
		t.Errorf("expiry = %v", c.Get(CtxTokenExpiry))
	}
}

func TestSession_OpaqueToken(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/session", nil), httptest.NewRecorder())

	acct := &stubAccount{user: &domain.CurrentUser{ID: "1"}, token: "not-a-jwt"}
	if err := Session(acct)(func(echo.Context) error { return nil })(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if c.Get(CtxUser) == nil {
		t.Error("user should be set even when the token is opaque")
	}
	if c.Get(CtxTokenSubject) != nil {
		t.Error("opaque token must not yield a subject")
	}
}

func TestSession_Anonymous(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/session", nil), httptest.NewRecorder())

	if err := Session(&stubAccount{})(func(echo.Context) error { return nil })(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if c.Get(CtxUser) != nil {
		t.Error("anonymous request must not carry a user")
	}
}
