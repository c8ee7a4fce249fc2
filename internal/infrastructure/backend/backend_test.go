package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/mytime/console/internal/core/domain"
	"github.com/mytime/console/internal/infrastructure/session"
)

type recordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	ContentType   string
	Body          string
}

type recorder struct {
	mu   sync.Mutex
	reqs []recordedRequest
}

func (r *recorder) add(req *http.Request) {
	b, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, recordedRequest{
		Method:        req.Method,
		Path:          req.URL.Path,
		Query:         req.URL.RawQuery,
		Authorization: req.Header.Get("Authorization"),
		ContentType:   req.Header.Get("Content-Type"),
		Body:          string(b),
	})
}

func (r *recorder) last() recordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reqs[len(r.reqs)-1]
}

func newTestClient(t *testing.T, scheme string, handler http.HandlerFunc) (*Client, *session.MemoryStore, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	transport := NewAuthInterceptor(store, scheme, http.DefaultTransport)
	return NewClient(srv.URL+"/api/", transport, time.Second, zerolog.Nop()), store, rec
}

func TestResolveURL(t *testing.T) {
	cases := []struct{ base, path, want string }{
		{"http://h/api/", "roles/fetchAllRoles", "http://h/api/roles/fetchAllRoles"},
		{"http://h/api/", "///roles/fetchAllRoles", "http://h/api/roles/fetchAllRoles"},
		{"http://h/api", "/roles", "http://h/api/roles"},
		{"http://h/api/", "https://other/x", "https://other/x"},
	}
	for _, tc := range cases {
		if got := ResolveURL(tc.base, tc.path); got != tc.want {
			t.Errorf("ResolveURL(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}

func TestAuthInterceptor_Headers(t *testing.T) {
	cases := []struct {
		name, scheme, token, want string
	}{
		{"bearer", AuthSchemeBearer, "abc", "Bearer abc"},
		{"raw", AuthSchemeRaw, "abc", "abc"},
		{"no token", AuthSchemeBearer, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, store, rec := newTestClient(t, tc.scheme, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
			if tc.token != "" {
				_ = store.Set(context.Background(), domain.KeyAccessToken, tc.token)
			}

			if err := client.Send(context.Background(), http.MethodGet, "/roles/fetchAllRoles", nil, nil); err != nil {
				t.Fatalf("Send() error: %v", err)
			}
			got := rec.last()
			if got.Authorization != tc.want {
				t.Errorf("Authorization = %q, want %q", got.Authorization, tc.want)
			}
			if got.ContentType != "application/json" {
				t.Errorf("Content-Type = %q", got.ContentType)
			}
			if got.Path != "/api/roles/fetchAllRoles" {
				t.Errorf("path = %q", got.Path)
			}
		})
	}
}

func TestParseAuthScheme(t *testing.T) {
	for in, want := range map[string]string{"": AuthSchemeBearer, "Bearer": AuthSchemeBearer, " RAW ": AuthSchemeRaw} {
		got, err := ParseAuthScheme(in)
		if err != nil || got != want {
			t.Errorf("ParseAuthScheme(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseAuthScheme("basic"); err == nil {
		t.Error("expected error for unsupported scheme")
	}
}

func TestClient_StatusError(t *testing.T) {
	client, _, _ := newTestClient(t, AuthSchemeBearer, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	err := client.Send(context.Background(), http.MethodGet, "x", nil, nil)
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadGateway || se.Body != "boom" {
		t.Fatalf("expected StatusError 502, got %v", err)
	}
}

func TestAuthGateway_Login(t *testing.T) {
	client, _, rec := newTestClient(t, AuthSchemeBearer, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/AuthenticateUser":
			_, _ = w.Write([]byte(`{"jwt_token":"tok","valid_user":true,"valid_password":true,"is_active":true,"status_code":200,"status_message":"ok"}`))
		case "/api/auth/GenarateUserClaims":
			_, _ = w.Write([]byte(`{"id":12,"first_name":"Ana","last_name":"Ruiz","email":"a@x","phone":"1","role_id":1000}`))
		default:
			http.NotFound(w, r)
		}
	})
	gw := NewAuthGateway(client)
	ctx := context.Background()

	auth, err := gw.AuthenticateUser(ctx, domain.Credentials{Username: "ana", Password: "pw"})
	if err != nil {
		t.Fatalf("AuthenticateUser() error: %v", err)
	}
	if !auth.Accepted() {
		t.Fatalf("expected accepted response, got %+v", auth)
	}
	var sent map[string]string
	_ = json.Unmarshal([]byte(rec.last().Body), &sent)
	if sent["username"] != "ana" || sent["password"] != "pw" {
		t.Errorf("unexpected login body %s", rec.last().Body)
	}

	claims, err := gw.GenerateUserClaims(ctx, auth)
	if err != nil {
		t.Fatalf("GenerateUserClaims() error: %v", err)
	}
	if claims.ID != "12" || claims.RoleID != domain.RoleAdministrator {
		t.Errorf("unexpected claims %+v", claims)
	}
	if !strings.Contains(rec.last().Body, `"jwt_token":"tok"`) {
		t.Errorf("claims request should carry the auth response, got %s", rec.last().Body)
	}
}

func TestAuthGateway_ErrorClassification(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, domain.ErrInvalidCredentials},
		{http.StatusForbidden, domain.ErrInvalidCredentials},
		{http.StatusBadRequest, domain.ErrInvalidCredentials},
		{http.StatusInternalServerError, domain.ErrTransport},
		{http.StatusNotFound, domain.ErrTransport},
	}
	for _, tc := range cases {
		client, _, _ := newTestClient(t, AuthSchemeBearer, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
		})
		_, err := NewAuthGateway(client).AuthenticateUser(context.Background(), domain.Credentials{Username: "u", Password: "p"})
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: expected %v, got %v", tc.status, tc.want, err)
		}
	}
}

func TestAuthGateway_TransportFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1/", nil, 200*time.Millisecond, zerolog.Nop())
	_, err := NewAuthGateway(client).AuthenticateUser(context.Background(), domain.Credentials{Username: "u", Password: "p"})
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestAuthGateway_MalformedBody(t *testing.T) {
	client, _, _ := newTestClient(t, AuthSchemeBearer, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})
	_, err := NewAuthGateway(client).AuthenticateUser(context.Background(), domain.Credentials{Username: "u", Password: "p"})
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

type markEnricher struct{ calls int }

func (m *markEnricher) Enrich(e domain.Entity) domain.Entity {
	m.calls++
	e["ModifiedBy"] = 9
	return e
}

func TestEntityClient(t *testing.T) {
	client, _, rec := newTestClient(t, AuthSchemeBearer, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`[{"RoleId":1}]`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	entities := NewEntityClient(client)
	ctx := context.Background()

	list, err := entities.List(ctx, "roles")
	if err != nil || string(list) != `[{"RoleId":1}]` {
		t.Fatalf("List() = %s, %v", list, err)
	}
	if rec.last().Path != "/api/roles/fetchAllRoles" {
		t.Errorf("list path = %s", rec.last().Path)
	}

	enricher := &markEnricher{}
	if _, err := entities.Save(ctx, "departments", domain.Entity{"Name": "Ops"}, enricher); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if enricher.calls != 1 {
		t.Error("expected audit enrichment before upsert")
	}
	got := rec.last()
	if got.Method != http.MethodPost || got.Path != "/api/departments/InsertOrUpdateDepartment" || !strings.Contains(got.Body, `"ModifiedBy":9`) {
		t.Errorf("unexpected upsert %+v", got)
	}

	if err := entities.Delete(ctx, "roles", "5"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if got := rec.last(); got.Method != http.MethodDelete || got.Path != "/api/roles/DeleteRole/5" {
		t.Errorf("unexpected delete %+v", got)
	}

	if err := entities.Delete(ctx, "employee-addresses", "11"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if got := rec.last(); got.Path != "/api/employee_address/DeleteEmployeeAddress" || got.Query != "employee_address_id=11" {
		t.Errorf("unexpected sub-record delete %+v", got)
	}

	if _, err := entities.List(ctx, "payroll"); !errors.Is(err, domain.ErrUnknownResource) {
		t.Errorf("expected ErrUnknownResource, got %v", err)
	}
}

func TestInFlightTracker(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "background") {
			entered <- struct{}{}
			<-release
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_in_flight"})
	client := NewClient(srv.URL, NewInFlightTracker(http.DefaultTransport, gauge), time.Second, zerolog.Nop())

	if err := client.Send(context.Background(), http.MethodGet, "background/poll", nil, nil); err != nil {
		t.Fatalf("background Send() error: %v", err)
	}
	if v := testutil.ToFloat64(gauge); v != 0 {
		t.Fatalf("background request counted: %v", v)
	}

	done := make(chan error, 1)
	go func() { done <- client.Send(context.Background(), http.MethodGet, "roles", nil, nil) }()
	<-entered
	if v := testutil.ToFloat64(gauge); v != 1 {
		t.Errorf("expected 1 in flight, got %v", v)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if v := testutil.ToFloat64(gauge); v != 0 {
		t.Errorf("expected 0 in flight after completion, got %v", v)
	}
}
