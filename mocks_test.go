package auth_test

import (
	"context"
	"database/sql"

	auth "github.com/goliatone/go-auth-tokens"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockUsers implements auth.Users
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) GetByField(ctx context.Context, field auth.AuthenticationField, identifier, appName string) (*auth.User, error) {
	args := m.Called(ctx, field, identifier, appName)
	if user, ok := args.Get(0).(*auth.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) GetByFieldTx(ctx context.Context, tx bun.IDB, field auth.AuthenticationField, identifier, appName string) (*auth.User, error) {
	args := m.Called(ctx, tx, field, identifier, appName)
	if user, ok := args.Get(0).(*auth.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) Create(ctx context.Context, record *auth.User) (*auth.User, error) {
	args := m.Called(ctx, record)
	if user, ok := args.Get(0).(*auth.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) CreateTx(ctx context.Context, tx bun.IDB, record *auth.User) (*auth.User, error) {
	args := m.Called(ctx, tx, record)
	if user, ok := args.Get(0).(*auth.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) Activate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUsers) ActivateTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

// MockRoles implements auth.Roles
type MockRoles struct {
	mock.Mock
}

func (m *MockRoles) ResolveIDs(ctx context.Context, appName string, names []string) (map[string]uuid.UUID, error) {
	args := m.Called(ctx, appName, names)
	if resolved, ok := args.Get(0).(map[string]uuid.UUID); ok {
		return resolved, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoles) ResolveIDsTx(ctx context.Context, tx bun.IDB, appName string, names []string) (map[string]uuid.UUID, error) {
	args := m.Called(ctx, tx, appName, names)
	if resolved, ok := args.Get(0).(map[string]uuid.UUID); ok {
		return resolved, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoles) NamesForUser(ctx context.Context, userID uuid.UUID, appName string) ([]string, error) {
	args := m.Called(ctx, userID, appName)
	if names, ok := args.Get(0).([]string); ok {
		return names, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoles) Grant(ctx context.Context, userID, roleID uuid.UUID) error {
	args := m.Called(ctx, userID, roleID)
	return args.Error(0)
}

func (m *MockRoles) GrantTx(ctx context.Context, tx bun.IDB, userID, roleID uuid.UUID) error {
	args := m.Called(ctx, tx, userID, roleID)
	return args.Error(0)
}

func (m *MockRoles) Revoke(ctx context.Context, userID, roleID uuid.UUID) error {
	args := m.Called(ctx, userID, roleID)
	return args.Error(0)
}

func (m *MockRoles) RevokeTx(ctx context.Context, tx bun.IDB, userID, roleID uuid.UUID) error {
	args := m.Called(ctx, tx, userID, roleID)
	return args.Error(0)
}

// MockIdentityVerifier implements auth.IdentityVerifier
type MockIdentityVerifier struct {
	mock.Mock
}

func (m *MockIdentityVerifier) VerifyIdentity(ctx context.Context, identifier, password string, field auth.AuthenticationField) (auth.Identity, error) {
	args := m.Called(ctx, identifier, password, field)
	if identity, ok := args.Get(0).(auth.Identity); ok {
		return identity, args.Error(1)
	}
	return nil, args.Error(1)
}

// TestIdentity is a plain Identity value for claim assertions.
type TestIdentity struct {
	id       string
	username string
	email    string
	fullName string
	roles    []string
}

func (i TestIdentity) ID() string       { return i.id }
func (i TestIdentity) Username() string { return i.username }
func (i TestIdentity) Email() string    { return i.email }
func (i TestIdentity) FullName() string { return i.fullName }
func (i TestIdentity) Roles() []string  { return i.roles }

// stubRepoManager wires mock repositories behind the RepositoryManager
// interface. RunInTx delegates to the db when one is provided.
type stubRepoManager struct {
	db    *bun.DB
	users auth.Users
	roles auth.Roles
}

func (m stubRepoManager) Validate() error { return nil }

func (m stubRepoManager) MustValidate() {}

func (m stubRepoManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return m.db.RunInTx(ctx, opts, f)
}

func (m stubRepoManager) Users() auth.Users { return m.users }

func (m stubRepoManager) Roles() auth.Roles { return m.roles }

type capturingSink struct {
	events []auth.ActivityEvent
}

func (c *capturingSink) Record(ctx context.Context, event auth.ActivityEvent) error {
	c.events = append(c.events, event)
	return nil
}

func newTestConfig() auth.ProviderConfig {
	return auth.ProviderConfig{
		AppName:         "console",
		SigningKey:      "0123456789abcdef0123456789abcdef",
		Issuer:          "https://issuer.test",
		Audience:        []string{"console-clients"},
		TokenExpiration: 30,
	}
}
