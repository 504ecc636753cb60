package domain

import (
	"strings"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Roles lists every role a user may hold.
var Roles = []string{RoleUser, RoleAdmin}

// User is a registered account. PasswordHash never leaves the process.
type User struct {
	ID                string    `json:"id"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Role              string    `json:"role"`
	PasswordChangedAt time.Time `json:"-"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Name is the display name shown on submissions and in the admin views.
func (u *User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ChangedPasswordAfter reports whether the password was changed after a token
// issued at issuedAt. Comparison is done at second granularity, which is the
// precision of the token's iat claim.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt.IsZero() {
		return false
	}
	return issuedAt.Unix() < u.PasswordChangedAt.Unix()
}

// PasswordStamp identifies the current password: the change time in unix
// milliseconds, or 0 when the password was never changed. Tokens carry the
// stamp they were minted under.
func (u *User) PasswordStamp() int64 {
	if u.PasswordChangedAt.IsZero() {
		return 0
	}
	return u.PasswordChangedAt.UnixMilli()
}

// TokenStale reports whether a token predates the current password. Tokens
// carrying a stamp must match it exactly; tokens without one fall back to
// the issued-at comparison.
func (u *User) TokenStale(issuedAt time.Time, stamp *int64) bool {
	if stamp != nil {
		return *stamp != u.PasswordStamp()
	}
	return u.ChangedPasswordAfter(issuedAt)
}

// ValidRole reports whether r is a known role.
func ValidRole(r string) bool {
	for _, role := range Roles {
		if role == r {
			return true
		}
	}
	return false
}
