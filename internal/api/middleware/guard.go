package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mytime/console/internal/core/ports"
)

// Guard consults g before the wrapped route. A denial answers 303 to the
// decision's target; a permit records the operator's new location. Both see
// the request URI, query included.
func Guard(g ports.RouteGuard, nav ports.Navigator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			target := c.Request().URL.RequestURI()
			d := g.Check(c.Request().Context(), target)
			if !d.Permitted() {
				return c.Redirect(http.StatusSeeOther, d.Target)
			}
			nav.Navigate(target)
			return next(c)
		}
	}
}
