package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageHandler answers the guarded console routes. Rendering is the browser
// shell's job; the host only confirms the route and who is viewing it.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

type pageResponse struct {
	Route string `json:"route"`
	User  string `json:"user"`
	Role  string `json:"role"`
}

func (h *PageHandler) Show(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse{
		Route: c.Request().URL.Path,
		User:  user.FullName,
		Role:  user.RoleName(),
	})
}
