package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mytime/console/internal/api/middleware"
	"github.com/mytime/console/internal/core/domain"
	"github.com/mytime/console/internal/core/ports"
)

type SessionHandler struct {
	account   ports.AccountService
	navigator ports.Navigator
}

func NewSessionHandler(account ports.AccountService, navigator ports.Navigator) *SessionHandler {
	return &SessionHandler{account: account, navigator: navigator}
}

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=256"`
	Password string `json:"password" form:"password" validate:"required,max=256"`
}

type activityRequest struct {
	Kind string `json:"kind" validate:"required,activity"`
}

type tokenInfo struct {
	Subject   string `json:"subject,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

type sessionResponse struct {
	Authenticated bool                `json:"authenticated"`
	User          *domain.CurrentUser `json:"user,omitempty"`
	Role          string              `json:"role,omitempty"`
	Token         *tokenInfo          `json:"token,omitempty"`
}

// LoginPage serves GET /login. An operator who is already signed in is sent
// on to their destination.
func (h *SessionHandler) LoginPage(c echo.Context) error {
	if h.account.IsAuthenticated(c.Request().Context()) {
		return c.Redirect(http.StatusSeeOther, h.account.RedirectBasedOnRole(c.Request().Context()))
	}
	h.navigator.Navigate(domain.RouteLogin)
	return c.JSON(http.StatusOK, map[string]string{"route": domain.RouteLogin})
}

// Login authenticates against the backend and redirects to the post-login
// destination.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      303
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	res := h.account.Authenticate(c.Request().Context(), domain.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if !res.OK() {
		// Transport failures deliberately read the same as bad credentials.
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": domain.ErrInvalidCredentials.Error()})
	}
	return c.Redirect(http.StatusSeeOther, h.navigator.CurrentPath())
}

// Logout ends the session.
//
// @Summary      Logout
// @Tags         session
// @Success      303
// @Router       /logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.account.Logout(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, domain.RouteLogin)
}

// Activity reports an operator interaction that keeps the session alive.
//
// @Summary      Record activity
// @Tags         session
// @Accept       json
// @Param        body  body      activityRequest  true  "Activity signal"
// @Success      204
// @Failure      400   {object}  map[string]string
// @Router       /activity [post]
func (h *SessionHandler) Activity(c echo.Context) error {
	var req activityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	h.account.RecordActivity(c.Request().Context(), domain.ActivityKind(req.Kind))
	return c.NoContent(http.StatusNoContent)
}

// Session describes the current session.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200   {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Session(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return c.JSON(http.StatusOK, sessionResponse{Authenticated: false})
	}

	resp := sessionResponse{
		Authenticated: true,
		User:          user,
		Role:          ctxString(c, middleware.CtxRole),
	}
	if sub, exp := ctxString(c, middleware.CtxTokenSubject), ctxString(c, middleware.CtxTokenExpiry); sub != "" || exp != "" {
		resp.Token = &tokenInfo{Subject: sub, ExpiresAt: exp}
	}
	return c.JSON(http.StatusOK, resp)
}
