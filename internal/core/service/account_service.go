package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/mytime/console/internal/core/domain"
	"github.com/mytime/console/internal/core/ports"
	"github.com/mytime/console/internal/pkg/clock"
	"github.com/mytime/console/internal/pkg/metrics"
)

const (
	logoutReasonUser       = "user"
	logoutReasonInactivity = "inactivity"
)

// AccountOptions tunes an AccountService.
type AccountOptions struct {
	// Interactive is false for headless runs; the session then starts and
	// stays unauthenticated until an explicit login.
	Interactive       bool
	InactivityTimeout time.Duration
}

// AccountService owns the session: login, logout, restoration at startup,
// idle logout, role classification and the post-login redirect.
type AccountService struct {
	store     ports.SessionStore
	gateway   ports.AuthGateway
	navigator ports.Navigator
	clock     clock.Clock
	log       zerolog.Logger

	state   *StateStream
	monitor *InactivityMonitor
	flight  singleflight.Group

	mu          sync.Mutex
	redirectURL string
	disposed    bool
}

// NewAccountService builds the service and restores any persisted session.
func NewAccountService(
	store ports.SessionStore,
	gateway ports.AuthGateway,
	navigator ports.Navigator,
	clk clock.Clock,
	log zerolog.Logger,
	opts AccountOptions,
) *AccountService {
	if clk == nil {
		clk = clock.Real()
	}
	s := &AccountService{
		store:     store,
		gateway:   gateway,
		navigator: navigator,
		clock:     clk,
		log:       log.With().Str("component", "account").Logger(),
		state:     newStateStream(),
	}
	s.monitor = NewInactivityMonitor(clk, opts.InactivityTimeout, func() {
		s.logout(context.Background(), logoutReasonInactivity)
	})
	s.initialize(context.Background(), opts.Interactive)
	return s
}

func (s *AccountService) initialize(ctx context.Context, interactive bool) {
	if !interactive {
		s.publish(false)
		return
	}

	authenticated := s.IsAuthenticated(ctx)
	s.publish(authenticated)
	if !authenticated {
		return
	}
	if s.navigator.CurrentPath() == domain.RouteLogin {
		s.RedirectBasedOnRole(ctx)
	}
	s.monitor.Arm()
	s.log.Info().Msg("session restored")
}

// States exposes the authenticated flag as a subscription.
func (s *AccountService) States() *StateStream { return s.state }

// Monitor exposes the idle timer.
func (s *AccountService) Monitor() *InactivityMonitor { return s.monitor }

// Authenticate runs the two-step login. It never returns an error: failures
// are reported through the result status. A call made while a login with the
// same credentials is in flight joins that attempt and receives its result.
func (s *AccountService) Authenticate(ctx context.Context, creds domain.Credentials) domain.LoginResult {
	v, _, shared := s.flight.Do(flightKey(creds), func() (interface{}, error) {
		res := s.authenticate(ctx, creds)
		metrics.LoginAttemptsTotal.WithLabelValues(res.Status.String()).Inc()
		return res, nil
	})
	if shared {
		metrics.LoginJoinedTotal.Inc()
	}
	return v.(domain.LoginResult)
}

// flightKey identifies a login attempt without holding the password itself.
func flightKey(creds domain.Credentials) string {
	sum := sha256.Sum256([]byte(creds.Username + "\x00" + creds.Password))
	return "authenticate:" + hex.EncodeToString(sum[:])
}

func (s *AccountService) authenticate(ctx context.Context, creds domain.Credentials) domain.LoginResult {
	auth, err := s.gateway.AuthenticateUser(ctx, creds)
	if err != nil {
		return s.loginFailed(creds.Username, "authenticate user", err)
	}
	if auth == nil || !auth.Accepted() {
		s.log.Warn().
			Str("username", creds.Username).
			Str("status_message", statusMessage(auth)).
			Msg("credentials rejected")
		return domain.LoginInvalidCredentials(domain.ErrInvalidCredentials)
	}

	claims, err := s.gateway.GenerateUserClaims(ctx, auth)
	if err != nil {
		return s.loginFailed(creds.Username, "generate user claims", err)
	}
	if claims == nil {
		return s.loginFailed(creds.Username, "generate user claims", fmt.Errorf("empty claims: %w", domain.ErrTransport))
	}

	user := claims.ToCurrentUser()
	if err := s.persist(ctx, auth.JWTToken, user); err != nil {
		s.log.Error().Err(err).Str("username", creds.Username).Msg("persist session failed")
		return domain.LoginTransportError(err)
	}

	s.publish(true)
	s.monitor.Arm()
	target := s.RedirectBasedOnRole(ctx)

	s.log.Info().
		Str("user_id", user.ID).
		Str("role", user.RoleName()).
		Str("redirect", target).
		Msg("login succeeded")
	return domain.LoginOK(user)
}

func (s *AccountService) loginFailed(username, step string, err error) domain.LoginResult {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		s.log.Warn().Err(err).Str("username", username).Str("step", step).Msg("login rejected")
		return domain.LoginInvalidCredentials(err)
	}
	if !errors.Is(err, domain.ErrTransport) {
		err = fmt.Errorf("%s: %w: %v", step, domain.ErrTransport, err)
	}
	s.log.Error().Err(err).Str("username", username).Str("step", step).Msg("login failed")
	return domain.LoginTransportError(err)
}

func statusMessage(auth *domain.AuthResponse) string {
	if auth == nil {
		return ""
	}
	return auth.StatusMessage
}

func (s *AccountService) persist(ctx context.Context, token string, user *domain.CurrentUser) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.store.Set(ctx, domain.KeyAccessToken, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := s.store.Set(ctx, domain.KeyApplicationUser, string(payload)); err != nil {
		_ = s.store.Remove(ctx, domain.KeyAccessToken)
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// Logout ends the session and returns to the login screen.
func (s *AccountService) Logout(ctx context.Context) {
	s.logout(ctx, logoutReasonUser)
}

func (s *AccountService) logout(ctx context.Context, reason string) {
	for _, key := range []string{domain.KeyApplicationUser, domain.KeyAccessToken} {
		if err := s.store.Remove(ctx, key); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
			s.log.Warn().Err(err).Str("key", key).Msg("remove session key failed")
		}
	}
	s.publish(false)
	s.monitor.Stop()
	s.ClearRedirectURL()
	if s.navigator.CurrentPath() != domain.RouteLogin {
		s.navigator.Navigate(domain.RouteLogin)
	}

	metrics.LogoutsTotal.WithLabelValues(reason).Inc()
	s.log.Info().Str("reason", reason).Msg("logged out")
}

// IsAuthenticated is true iff both the token and a parseable user are stored.
func (s *AccountService) IsAuthenticated(ctx context.Context) bool {
	return s.AccessToken(ctx) != "" && s.CurrentUser(ctx) != nil
}

// AccessToken returns the stored token, or "" when there is none.
func (s *AccountService) AccessToken(ctx context.Context) string {
	token, err := s.store.Get(ctx, domain.KeyAccessToken)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.log.Warn().Err(err).Msg("read access token failed")
		}
		return ""
	}
	return token
}

// CurrentUser returns the stored user. A missing or corrupt record reads as nil.
func (s *AccountService) CurrentUser(ctx context.Context) *domain.CurrentUser {
	raw, err := s.store.Get(ctx, domain.KeyApplicationUser)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.log.Warn().Err(err).Msg("read current user failed")
		}
		return nil
	}
	var user *domain.CurrentUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn().Err(err).Msg("stored user is not valid JSON")
		return nil
	}
	return user
}

func (s *AccountService) IsAdministrator(ctx context.Context) bool {
	u := s.CurrentUser(ctx)
	return u != nil && u.IsAdministrator()
}

func (s *AccountService) IsRegularAdmin(ctx context.Context) bool {
	u := s.CurrentUser(ctx)
	return u != nil && u.IsRegularAdmin()
}

func (s *AccountService) IsAdmin(ctx context.Context) bool {
	u := s.CurrentUser(ctx)
	return u != nil && u.IsAdmin()
}

// HasRole reports whether the stored user holds exactly role.
func (s *AccountService) HasRole(ctx context.Context, role domain.RoleID) bool {
	u := s.CurrentUser(ctx)
	return u != nil && u.RoleID == role
}

func (s *AccountService) UserRoleName(ctx context.Context) string {
	u := s.CurrentUser(ctx)
	if u == nil {
		return domain.RoleNameUser
	}
	return u.RoleName()
}

// DefaultDashboard is the landing route for the stored user's role.
func (s *AccountService) DefaultDashboard(ctx context.Context) string {
	if s.IsAdmin(ctx) {
		return domain.RouteAdminDashboard
	}
	return domain.RouteUserDashboard
}

// RedirectBasedOnRole navigates to the post-login destination and returns it.
// A remembered deep link wins once, unless it is a default dashboard.
func (s *AccountService) RedirectBasedOnRole(ctx context.Context) string {
	user := s.CurrentUser(ctx)
	if user == nil {
		s.navigator.Navigate(domain.RouteLogin)
		return domain.RouteLogin
	}

	s.mu.Lock()
	intended := s.redirectURL
	s.redirectURL = ""
	s.mu.Unlock()

	target := domain.RouteUserDashboard
	switch {
	case intended != "" && !domain.IsDefaultDashboard(intended):
		target = intended
	case user.IsAdmin():
		target = domain.RouteAdminDashboard
	}
	s.navigator.Navigate(target)
	return target
}

// SetRedirectURL remembers where the user was headed before being sent to login.
func (s *AccountService) SetRedirectURL(url string) {
	s.mu.Lock()
	s.redirectURL = url
	s.mu.Unlock()
}

func (s *AccountService) RedirectURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redirectURL
}

func (s *AccountService) ClearRedirectURL() {
	s.SetRedirectURL("")
}

// RecordActivity rearms the idle timer for qualifying signals while the
// session is authenticated.
func (s *AccountService) RecordActivity(_ context.Context, kind domain.ActivityKind) {
	if !kind.Qualifies() {
		return
	}
	s.mu.Lock()
	disposed := s.disposed
	s.mu.Unlock()
	if disposed {
		return
	}
	if authenticated, known := s.state.Current(); !known || !authenticated {
		return
	}
	s.monitor.Arm()
}

// Dispose stops the idle timer and drops all state subscribers.
func (s *AccountService) Dispose() {
	s.mu.Lock()
	s.disposed = true
	s.mu.Unlock()

	s.monitor.Stop()
	s.state.close()
}

func (s *AccountService) publish(authenticated bool) {
	if !s.state.publish(authenticated) {
		return
	}
	label := "unauthenticated"
	if authenticated {
		label = "authenticated"
	}
	metrics.AuthStateTransitionsTotal.WithLabelValues(label).Inc()
}

var _ ports.AccountService = (*AccountService)(nil)
