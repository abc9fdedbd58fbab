package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role is the marketplace-facing role a caller acts under. A single account
// may host offers and book stays; the role only scopes listing queries and
// token claims, ownership checks always go through the booking itself.
type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
)

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleHost:
		return true
	default:
		return false
	}
}
