package auth

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Registration is the payload for creating a user with its initial role set.
type Registration struct {
	FirstName  string              `json:"first_name"`
	LastName   string              `json:"last_name"`
	Username   string              `json:"username"`
	Email      string              `json:"email"`
	Password   string              `json:"password"`
	IsEnabled  bool                `json:"is_enabled"`
	Field      AuthenticationField `json:"field"`
	Roles      []string            `json:"roles"`
	VerifyCode string              `json:"verify_code"`
}

// Validate checks required fields; the identifier requirement follows the
// authentication field the caller targets.
func (r Registration) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required),
		validation.Field(&r.LastName, validation.Required),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Username, validation.Required.When(r.Field == FieldUserName)),
		validation.Field(&r.Email, validation.Required.When(r.Field == FieldEmail), is.Email),
	)
}

func (r Registration) identifier() string {
	if r.Field == FieldEmail {
		return r.Email
	}
	return r.Username
}

// Registrar creates new users and their initial grants inside a single
// transaction: any failure along the way leaves no user row behind.
type Registrar struct {
	repo    RepositoryManager
	appName string
	logger  Logger
}

var _ UserRegistrar = (*Registrar)(nil)

func NewRegistrar(repo RepositoryManager, appName string) *Registrar {
	return &Registrar{
		repo:    repo,
		appName: appName,
		logger:  defLogger{},
	}
}

func (g *Registrar) WithLogger(l Logger) *Registrar {
	if l != nil {
		g.logger = l
	}
	return g
}

// Register validates the payload, inserts the user, resolves the full role
// set and grants every role, all or nothing. Returns the created user id.
func (g *Registrar) Register(ctx context.Context, r Registration) (uuid.UUID, error) {
	if !r.Field.Valid() {
		return uuid.Nil, goerrors.New("unknown authentication field", goerrors.CategoryBadInput).
			WithMetadata(map[string]any{"field": string(r.Field)})
	}

	if err := r.Validate(); err != nil {
		return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload").
			WithTextCode(TextCodeValidation)
	}

	if len(r.Roles) == 0 {
		return uuid.Nil, ErrNoRolesSpecified
	}

	user := &User{}

	err := g.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := g.repo.Users().GetByFieldTx(ctx, tx, r.Field, r.identifier(), g.appName)
		if err == nil {
			return ErrDuplicateAccount
		}
		if !repository.IsRecordNotFound(err) {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "duplicate account check failed")
		}

		hash, err := HashPassword(r.Password)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return richErr
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		user.FirstName = r.FirstName
		user.LastName = r.LastName
		user.Username = r.Username
		user.Email = r.Email
		user.PasswordHash = hash
		user.IsEnabled = r.IsEnabled
		user.VerifyCode = r.VerifyCode

		if user, err = g.repo.Users().CreateTx(ctx, tx, user); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
		}

		resolved, err := g.repo.Roles().ResolveIDsTx(ctx, tx, g.appName, r.Roles)
		if err != nil {
			return err
		}

		for _, roleID := range resolved {
			if err := g.repo.Roles().GrantTx(ctx, tx, user.ID, roleID); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return uuid.Nil, richErr
		}
		return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryInternal, "user registration transaction failed")
	}

	return user.ID, nil
}
