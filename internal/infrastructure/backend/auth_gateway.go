package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mytime/console/internal/core/domain"
	"github.com/mytime/console/internal/core/ports"
)

const (
	authenticatePath = "auth/AuthenticateUser"
	// The backend route is spelled this way.
	claimsPath = "auth/GenarateUserClaims"
)

// AuthGateway calls the backend's login endpoints.
type AuthGateway struct {
	client *Client
}

func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

func (g *AuthGateway) AuthenticateUser(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := g.client.Send(ctx, http.MethodPost, authenticatePath, creds, &resp); err != nil {
		return nil, classify(err)
	}
	return &resp, nil
}

func (g *AuthGateway) GenerateUserClaims(ctx context.Context, auth *domain.AuthResponse) (*domain.UserClaims, error) {
	var claims domain.UserClaims
	if err := g.client.Send(ctx, http.MethodPost, claimsPath, auth, &claims); err != nil {
		return nil, classify(err)
	}
	return &claims, nil
}

// classify sorts backend failures into rejected credentials and everything
// else.
func classify(err error) error {
	var se *StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrTransport, err)
}

var _ ports.AuthGateway = (*AuthGateway)(nil)
