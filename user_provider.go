package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
)

// UserProvider verifies login pairs against the configured application's
// user set and produces the transient principal used for token issuance.
type UserProvider struct {
	store   Users
	roles   Roles
	appName string
	logger  Logger
}

var _ IdentityVerifier = (*UserProvider)(nil)

// NewUserProvider will create a new UserProvider
func NewUserProvider(store Users, roles Roles, appName string) *UserProvider {
	return &UserProvider{
		store:   store,
		roles:   roles,
		appName: appName,
		logger:  defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// VerifyIdentity will find the user, compare the password, and return the
// principal with its resolved role names. An unknown identifier and a wrong
// password produce the same error.
func (u *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string, field AuthenticationField) (Identity, error) {
	user, err := u.store.GetByField(ctx, field, identifier, u.appName)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, err
	}

	if !user.IsEnabled {
		return nil, ErrAccountNotActivated
	}

	names, err := u.roles.NamesForUser(ctx, user.ID, u.appName)
	if err != nil {
		u.logger.Error("failed to resolve roles for principal", "error", err)
		return nil, err
	}

	principal := principal{
		id:       user.ID.String(),
		username: user.Username,
		email:    user.Email,
		fullName: user.FullName(),
		roles:    names,
	}

	return principal, nil
}

type principal struct {
	id       string
	username string
	email    string
	fullName string
	roles    []string
}

func (p principal) ID() string {
	return p.id
}

func (p principal) Username() string {
	return p.username
}

func (p principal) Email() string {
	return p.email
}

func (p principal) FullName() string {
	return p.fullName
}

func (p principal) Roles() []string {
	return p.roles
}

var _ Identity = principal{}
