package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTransport          = errors.New("backend unreachable")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrKeyNotFound        = errors.New("session key not found")
	ErrUnknownResource    = errors.New("unknown resource")
)

// Session store keys shared by the account service and the interceptor.
const (
	KeyApplicationUser = "ApplicationUser"
	KeyAccessToken     = "AccessToken"
)

// Credentials is the login form payload.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the backend's answer to a credential check.
type AuthResponse struct {
	JWTToken      string     `json:"jwt_token"`
	ValidUser     bool       `json:"valid_user"`
	ValidPassword bool       `json:"valid_password"`
	IsActive      bool       `json:"is_active"`
	StatusCode    FlexString `json:"status_code"`
	StatusMessage string     `json:"status_message"`
}

// Accepted reports whether the response carries a usable session.
// An inactive account is treated like a bad password.
func (r AuthResponse) Accepted() bool {
	return r.JWTToken != "" && r.ValidUser && r.ValidPassword && r.IsActive
}

// LoginStatus distinguishes the ways a login attempt can end.
type LoginStatus int

const (
	LoginStatusOK LoginStatus = iota
	LoginStatusInvalidCredentials
	LoginStatusTransportError
)

func (s LoginStatus) String() string {
	switch s {
	case LoginStatusOK:
		return "ok"
	case LoginStatusInvalidCredentials:
		return "invalid_credentials"
	case LoginStatusTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// LoginResult is the outcome of AccountService.Authenticate. Login never
// fails with an error; callers inspect Status instead.
type LoginResult struct {
	Status LoginStatus
	User   *CurrentUser
	Err    error
}

// OK is the boolean success signal the UI layer consumes.
func (r LoginResult) OK() bool { return r.Status == LoginStatusOK }

func LoginOK(u *CurrentUser) LoginResult {
	return LoginResult{Status: LoginStatusOK, User: u}
}

func LoginInvalidCredentials(err error) LoginResult {
	return LoginResult{Status: LoginStatusInvalidCredentials, Err: err}
}

func LoginTransportError(err error) LoginResult {
	return LoginResult{Status: LoginStatusTransportError, Err: err}
}

// ActivityKind is a user-interaction signal that keeps a session alive.
type ActivityKind string

const (
	ActivityPointerMove      ActivityKind = "pointer_move"
	ActivityKeyPress         ActivityKind = "key_press"
	ActivityScroll           ActivityKind = "scroll"
	ActivityClick            ActivityKind = "click"
	ActivityTouch            ActivityKind = "touch"
	ActivityVisibilityActive ActivityKind = "visibility_active"
	ActivityVisibilityHidden ActivityKind = "visibility_hidden"
)

// Known reports whether k is a recognised signal, qualifying or not.
func (k ActivityKind) Known() bool {
	return k.Qualifies() || k == ActivityVisibilityHidden
}

// Qualifies reports whether the signal should rearm the inactivity timer.
func (k ActivityKind) Qualifies() bool {
	switch k {
	case ActivityPointerMove, ActivityKeyPress, ActivityScroll,
		ActivityClick, ActivityTouch, ActivityVisibilityActive:
		return true
	}
	return false
}
