package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of a verified principal. It lives only for
// the duration of token issuance and is never persisted.
type Identity interface {
	ID() string
	Username() string
	Email() string
	FullName() string
	Roles() []string
}

// TokenProvider holds the public operations of the authentication service.
type TokenProvider interface {
	LogIn(ctx context.Context, identifier, password string, field AuthenticationField) (string, error)
	SigIn(ctx context.Context, registration Registration) (bool, error)
	ConfirmAccount(ctx context.Context, identifier string, field AuthenticationField, verifyCode string) (bool, error)
	IsEnabledAccount(ctx context.Context, identifier string, field AuthenticationField) (bool, error)
	ApplyUserRole(ctx context.Context, identifier, roleName string, field AuthenticationField) (bool, error)
	DenyUserRole(ctx context.Context, identifier, roleName string, field AuthenticationField) (bool, error)
}

// Config holds the options consumed at construction time.
type Config interface {
	GetAppName() string
	GetSigningKey() string
	GetIssuer() string
	GetAudience() []string
	GetTokenExpiration() int
}

// IdentityVerifier validates a login pair against the application's user set.
type IdentityVerifier interface {
	VerifyIdentity(ctx context.Context, identifier, password string, field AuthenticationField) (Identity, error)
}

// TokenService mints and validates signed identity tokens.
type TokenService interface {
	Generate(identity Identity, field AuthenticationField) (string, error)
	SignClaims(claims *TokenClaims) (string, error)
	Validate(raw string) (*TokenClaims, error)
}

// UserRegistrar creates users with their initial role set.
type UserRegistrar interface {
	Register(ctx context.Context, registration Registration) (uuid.UUID, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
