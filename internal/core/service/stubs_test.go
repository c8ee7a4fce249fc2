package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mytime/console/internal/core/domain"
	"github.com/mytime/console/internal/pkg/clock"
)

var epoch = time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)

type stubStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newStubStore() *stubStore {
	return &stubStore{data: make(map[string]string)}
}

func (s *stubStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

func (s *stubStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *stubStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *stubStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}

// seedSession writes a session as a previous login would have.
func (s *stubStore) seedSession(user domain.CurrentUser) {
	b, _ := json.Marshal(user)
	s.data[domain.KeyAccessToken] = "tok-" + user.ID
	s.data[domain.KeyApplicationUser] = string(b)
}

type stubGateway struct {
	mu         sync.Mutex
	auth       *domain.AuthResponse
	authErr    error
	claims     *domain.UserClaims
	claimsErr  error
	authCalls  int
	claimCalls int
	// block, when set, holds AuthenticateUser until it is closed.
	block   chan struct{}
	entered chan struct{}
}

func acceptedAuth() *domain.AuthResponse {
	return &domain.AuthResponse{
		JWTToken:      "jwt-abc",
		ValidUser:     true,
		ValidPassword: true,
		IsActive:      true,
		StatusCode:    "200",
	}
}

func (g *stubGateway) AuthenticateUser(_ context.Context, _ domain.Credentials) (*domain.AuthResponse, error) {
	g.mu.Lock()
	g.authCalls++
	block, entered := g.block, g.entered
	g.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		<-block
	}
	return g.auth, g.authErr
}

func (g *stubGateway) GenerateUserClaims(_ context.Context, _ *domain.AuthResponse) (*domain.UserClaims, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.claimCalls++
	return g.claims, g.claimsErr
}

type recordingNavigator struct {
	mu      sync.Mutex
	current string
	visits  []string
}

func newRecordingNavigator(start string) *recordingNavigator {
	return &recordingNavigator{current: start}
}

func (n *recordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = path
	n.visits = append(n.visits, path)
}

func (n *recordingNavigator) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *recordingNavigator) history() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.visits...)
}

type fixture struct {
	store   *stubStore
	gateway *stubGateway
	nav     *recordingNavigator
	clock   *clock.FakeClock
}

func newFixture() *fixture {
	return &fixture{
		store:   newStubStore(),
		gateway: &stubGateway{},
		nav:     newRecordingNavigator(domain.RouteLogin),
		clock:   clock.Fake(epoch),
	}
}

func (f *fixture) service(interactive bool) *AccountService {
	return NewAccountService(f.store, f.gateway, f.nav, f.clock, zerolog.Nop(), AccountOptions{
		Interactive:       interactive,
		InactivityTimeout: DefaultInactivityTimeout,
	})
}
