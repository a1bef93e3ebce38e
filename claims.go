package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set carried by issued tokens. The `user` claim
// holds the username, `name` holds the identifier the login used, and `kid`
// is a fresh identifier per issuance so two tokens for the same principal are
// never correlatable.
type TokenClaims struct {
	jwt.RegisteredClaims
	User        string   `json:"user,omitempty"`
	Name        string   `json:"name,omitempty"`
	DisplayName string   `json:"display_name,omitempty"`
	Email       string   `json:"email,omitempty"`
	System      string   `json:"system,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	KeyID       string   `json:"kid,omitempty"`
}

// Subject returns the subject claim
func (c *TokenClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user id carried as the token subject.
func (c *TokenClaims) UserID() string {
	return c.Subject()
}

// HasRole checks if the token carries a specific role claim
func (c *TokenClaims) HasRole(role string) bool {
	for _, name := range c.Roles {
		if name == role {
			return true
		}
	}
	return false
}

// Expires returns the expiration time
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *TokenClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
