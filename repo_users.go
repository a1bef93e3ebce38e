package auth

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	repository "github.com/goliatone/go-repository-bun"
)

var activateUserSQL = `UPDATE "users" AS "usr"
SET
	"is_enabled" = TRUE,
	"verify_code" = NULL,
	"updated_at" = CURRENT_TIMESTAMP
WHERE
	("usr"."id" = ?)
RETURNING *;`

// Users is the account store. Every lookup is scoped to the users holding at
// least one role in the given application.
type Users interface {
	GetByField(ctx context.Context, field AuthenticationField, identifier, appName string) (*User, error)
	GetByFieldTx(ctx context.Context, tx bun.IDB, field AuthenticationField, identifier, appName string) (*User, error)

	Create(ctx context.Context, record *User) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)

	Activate(ctx context.Context, id uuid.UUID) error
	ActivateTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
}

type users struct {
	repo repository.Repository[*User]
	db   *bun.DB
}

var _ Users = (*users)(nil)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
	})

	return &users{
		repo: repo,
		db:   db,
	}
}

func (a *users) GetByField(ctx context.Context, field AuthenticationField, identifier, appName string) (*User, error) {
	return a.GetByFieldTx(ctx, a.db, field, identifier, appName)
}

func (a *users) GetByFieldTx(ctx context.Context, tx bun.IDB, field AuthenticationField, identifier, appName string) (*User, error) {
	if !field.Valid() {
		return nil, goerrors.New("unknown authentication field", goerrors.CategoryBadInput).
			WithMetadata(map[string]any{"field": string(field)})
	}

	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where(fmt.Sprintf("?TableAlias.%s = ?", field.Column()), identifier).
		Where(`EXISTS (
			SELECT 1 FROM user_roles AS ur
			JOIN roles AS r ON r.id = ur.role_id
			JOIN applications AS app ON app.id = r.application_id
			WHERE ur.user_id = ?TableAlias.id AND app.name = ?
		)`, appName).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"field":       string(field),
					"identifier":  identifier,
					"application": appName,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) Create(ctx context.Context, record *User) (*User, error) {
	return a.CreateTx(ctx, a.db, record)
}

func (a *users) CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	prepareUserDefaults(record)
	return a.repo.CreateTx(ctx, tx, record)
}

func (a *users) Activate(ctx context.Context, id uuid.UUID) error {
	return a.ActivateTx(ctx, a.db, id)
}

// ActivateTx flips is_enabled exactly once and consumes the verify code in
// the same statement.
func (a *users) ActivateTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	res, err := a.repo.RawTx(ctx, tx, activateUserSQL, id.String())
	if err != nil {
		return err
	}

	if len(res) == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
