package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mytime/console/internal/api/middleware"
	"github.com/mytime/console/internal/core/domain"
)

// ctxUser extracts the user injected by the Session middleware. Routes behind
// a guard always have one; reaching here without it means the session ended
// between the guard and the handler.
func ctxUser(c echo.Context) (*domain.CurrentUser, error) {
	user, _ := c.Get(middleware.CtxUser).(*domain.CurrentUser)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, domain.ErrNotAuthenticated.Error())
	}
	return user, nil
}

func ctxString(c echo.Context, key string) string {
	s, _ := c.Get(key).(string)
	return s
}
