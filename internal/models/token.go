package models

import "time"

const (
	ScopeSetPassword   = "set_password"
	ScopeTrainerPortal = "trainer_portal"
)

// SessionClaims is the identity carried by a bearer token.
type SessionClaims struct {
	ID    int64
	Email string
	Role  string
	Scope string
}

// IssuedToken is a signed token plus the metadata clients may display.
type IssuedToken struct {
	Token     string    `json:"token"`
	TokenID   string    `json:"-"`
	IssuedAt  time.Time `json:"-"`
	ExpiresAt time.Time `json:"-"`
}
