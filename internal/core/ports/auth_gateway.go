package ports

import (
	"context"

	"github.com/mytime/console/internal/core/domain"
)

// AuthGateway is the backend surface consumed during login. The two calls
// must run in sequence: claims generation needs the auth response.
type AuthGateway interface {
	AuthenticateUser(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error)
	GenerateUserClaims(ctx context.Context, auth *domain.AuthResponse) (*domain.UserClaims, error)
}

// Enricher stamps audit metadata onto an outgoing entity in place.
type Enricher interface {
	Enrich(entity domain.Entity) domain.Entity
}
