package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mytime/console/internal/core/domain"
	"github.com/mytime/console/internal/pkg/token"
)

// Context keys set by Session.
const (
	CtxUser         = "user"
	CtxRole         = "role"
	CtxTokenSubject = "token_subject"
	CtxTokenExpiry  = "token_expires_at"
)

type sessionReader interface {
	CurrentUser(ctx context.Context) *domain.CurrentUser
	AccessToken(ctx context.Context) string
	UserRoleName(ctx context.Context) string
}

// Session injects the stored user and token claims into the echo context.
// Token claims are read without verification.
func Session(account sessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			raw := account.AccessToken(ctx)
			user := account.CurrentUser(ctx)
			if raw == "" || user == nil {
				return next(c)
			}

			c.Set(CtxUser, user)
			c.Set(CtxRole, account.UserRoleName(ctx))

			if info, err := token.Inspect(raw); err == nil {
				if info.Subject != "" {
					c.Set(CtxTokenSubject, info.Subject)
				}
				if !info.ExpiresAt.IsZero() {
					c.Set(CtxTokenExpiry, info.ExpiresAt.Format(time.RFC3339))
				}
			}
			return next(c)
		}
	}
}
