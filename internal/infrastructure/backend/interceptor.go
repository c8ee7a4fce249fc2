package backend

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mytime/console/internal/core/domain"
	"github.com/mytime/console/internal/core/ports"
	"github.com/mytime/console/internal/pkg/metrics"
)

// Authorization header schemes. The backend validates HTTP bearer tokens, so
// AuthSchemeBearer is the default; AuthSchemeRaw sends the bare token for
// older deployments.
const (
	AuthSchemeBearer = "bearer"
	AuthSchemeRaw    = "raw"
)

// ParseAuthScheme normalises a configured scheme name.
func ParseAuthScheme(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", AuthSchemeBearer:
		return AuthSchemeBearer, nil
	case AuthSchemeRaw:
		return AuthSchemeRaw, nil
	default:
		return "", fmt.Errorf("unknown auth header scheme %q", s)
	}
}

// FormatAuthorization renders the Authorization header value for token.
func FormatAuthorization(scheme, token string) string {
	if scheme == AuthSchemeRaw {
		return token
	}
	return "Bearer " + token
}

// AuthInterceptor attaches the stored access token and the JSON content type
// to every outgoing request.
type AuthInterceptor struct {
	store  ports.SessionStore
	scheme string
	next   http.RoundTripper
}

func NewAuthInterceptor(store ports.SessionStore, scheme string, next http.RoundTripper) *AuthInterceptor {
	if next == nil {
		next = http.DefaultTransport
	}
	return &AuthInterceptor{store: store, scheme: scheme, next: next}
}

func (a *AuthInterceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	if token, err := a.store.Get(req.Context(), domain.KeyAccessToken); err == nil && token != "" {
		out.Header.Set("Authorization", FormatAuthorization(a.scheme, token))
	}
	out.Header.Set("Content-Type", "application/json")
	return a.next.RoundTrip(out)
}

// InFlightTracker counts pending foreground requests. URLs containing
// "background" are polled silently and are not counted.
type InFlightTracker struct {
	gauge prometheus.Gauge
	next  http.RoundTripper
}

func NewInFlightTracker(next http.RoundTripper, gauge prometheus.Gauge) *InFlightTracker {
	if next == nil {
		next = http.DefaultTransport
	}
	if gauge == nil {
		gauge = metrics.BackendRequestsInFlight
	}
	return &InFlightTracker{gauge: gauge, next: next}
}

func (t *InFlightTracker) RoundTrip(req *http.Request) (*http.Response, error) {
	if strings.Contains(req.URL.String(), "background") {
		return t.next.RoundTrip(req)
	}

	t.gauge.Inc()
	defer t.gauge.Dec()

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	metrics.BackendRequestDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	return resp, err
}

// NewTransport chains the tracker and the auth interceptor over the default
// transport.
func NewTransport(store ports.SessionStore, scheme string) http.RoundTripper {
	return NewInFlightTracker(NewAuthInterceptor(store, scheme, http.DefaultTransport), nil)
}
