package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AuthenticationField selects whether the username or the email column is
// used as the login identifier.
type AuthenticationField string

const (
	FieldUserName AuthenticationField = "username"
	FieldEmail    AuthenticationField = "email"
)

// Column returns the users column backing the field.
func (f AuthenticationField) Column() string {
	return string(f)
}

// Valid reports whether the field is one of the two supported discriminators.
func (f AuthenticationField) Valid() bool {
	return f == FieldUserName || f == FieldEmail
}

// User is the account model. Username and email are optional individually;
// at least one must be populated, decided by the AuthenticationField the
// caller targets.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	FirstName     string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	Username      string     `bun:"username,nullzero" json:"username,omitempty"`
	Email         string     `bun:"email,nullzero" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	IsEnabled     bool       `bun:"is_enabled" json:"is_enabled,omitempty"`
	VerifyCode    string     `bun:"verify_code,nullzero" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// FullName joins first and last name for display claims.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Application scopes roles and user lookups. Rows are owned by external
// administration and read-only to this package.
type Application struct {
	bun.BaseModel `bun:"table:applications,alias:app"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string    `bun:"name,notnull,unique" json:"name,omitempty"`
	IsEnabled     bool      `bun:"is_enabled" json:"is_enabled,omitempty"`
}

// Role belongs to exactly one application; names are unique per application.
// Read-only to this package.
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:role"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string    `bun:"name,notnull" json:"name,omitempty"`
	ApplicationID uuid.UUID `bun:"application_id,notnull,type:uuid" json:"application_id,omitempty"`
	IsEnabled     bool      `bun:"is_enabled" json:"is_enabled,omitempty"`
}

// UserRole is the grant association; row existence is the grant. The pair is
// unique, enforced by the store.
type UserRole struct {
	bun.BaseModel `bun:"table:user_roles,alias:ur"`
	UserID        uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	RoleID        uuid.UUID `bun:"role_id,notnull,type:uuid" json:"role_id,omitempty"`
}
