package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// RoleID is the backend's numeric role identifier.
type RoleID int

// Roles are a closed enumeration; the backend never issues other admin ids.
const (
	RoleAdministrator RoleID = 1000
	RoleAdmin         RoleID = 1001
	RoleUser          RoleID = 1002
)

const (
	RoleNameAdministrator = "administrator"
	RoleNameAdmin         = "admin"
	RoleNameUser          = "user"
)

// CurrentUser models the authenticated principal as persisted in the session
// store under KeyApplicationUser.
type CurrentUser struct {
	ID        string `json:"id,omitempty"`
	FullName  string `json:"fullName,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	RoleID    RoleID `json:"roleId,omitempty"`
}

// IsAdministrator reports whether the user holds the top-level role.
func (u CurrentUser) IsAdministrator() bool {
	return u.RoleID == RoleAdministrator
}

// IsRegularAdmin reports whether the user is an admin but not an administrator.
func (u CurrentUser) IsRegularAdmin() bool {
	return u.RoleID == RoleAdmin
}

// IsAdmin is the coarse check used for routing: administrator or admin.
func (u CurrentUser) IsAdmin() bool {
	return u.IsAdministrator() || u.IsRegularAdmin()
}

// RoleName maps the role id to its display name, defaulting to "user".
func (u CurrentUser) RoleName() string {
	switch u.RoleID {
	case RoleAdministrator:
		return RoleNameAdministrator
	case RoleAdmin:
		return RoleNameAdmin
	default:
		return RoleNameUser
	}
}

// UserClaims is the record returned by the claims endpoint. Field names follow
// the backend's snake_case contract.
type UserClaims struct {
	ID        FlexString `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	RoleID    RoleID     `json:"role_id"`
}

// ToCurrentUser converts backend claims into the client-side user shape.
func (c UserClaims) ToCurrentUser() *CurrentUser {
	return &CurrentUser{
		ID:        string(c.ID),
		FullName:  strings.TrimSpace(c.FirstName + " " + c.LastName),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		RoleID:    c.RoleID,
	}
}

// FlexString decodes a JSON string or number into its textual form. The
// backend serialises ids and status codes inconsistently.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}
