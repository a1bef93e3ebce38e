package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// AccountConfirmation activates pending accounts via their one-time
// verification code and answers account status lookups.
type AccountConfirmation struct {
	users   Users
	appName string
	logger  Logger
}

func NewAccountConfirmation(users Users, appName string) *AccountConfirmation {
	return &AccountConfirmation{
		users:   users,
		appName: appName,
		logger:  defLogger{},
	}
}

func (c *AccountConfirmation) WithLogger(l Logger) *AccountConfirmation {
	if l != nil {
		c.logger = l
	}
	return c
}

// Confirm flips is_enabled from false to true exactly once and returns the
// activated user's id. When the field is EMAIL the match additionally requires
// the verification code; a code mismatch on a pending account is
// indistinguishable from a missing account.
func (c *AccountConfirmation) Confirm(ctx context.Context, identifier string, field AuthenticationField, verifyCode string) (uuid.UUID, error) {
	user, err := c.lookup(ctx, identifier, field)
	if err != nil {
		return uuid.Nil, err
	}

	// activation consumed the code, so the active check must run first
	if user.IsEnabled {
		return uuid.Nil, ErrAccountAlreadyActive
	}

	if field == FieldEmail && user.VerifyCode != verifyCode {
		return uuid.Nil, ErrAccountNotFound
	}

	if err := c.users.Activate(ctx, user.ID); err != nil {
		return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to activate account")
	}

	return user.ID, nil
}

// IsEnabled reports the account's activation status. Pure read.
func (c *AccountConfirmation) IsEnabled(ctx context.Context, identifier string, field AuthenticationField) (bool, error) {
	user, err := c.lookup(ctx, identifier, field)
	if err != nil {
		return false, err
	}

	return user.IsEnabled, nil
}

func (c *AccountConfirmation) lookup(ctx context.Context, identifier string, field AuthenticationField) (*User, error) {
	user, err := c.users.GetByField(ctx, field, identifier, c.appName)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve account")
	}

	return user, nil
}
