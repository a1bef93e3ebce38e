package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// CreateSchema creates the four relations used by the provider. Intended for
// tests and embedders bootstrapping development databases; production schema
// management is the embedding application's concern.
//
// Identifier uniqueness is per application, enforced by the registration
// transaction's duplicate check. That check-then-insert is not safe against
// concurrent registrations of the same identifier; embedders needing a hard
// guarantee must add their own store-level constraint (a users unique index
// when a single application owns the store, or a trigger/partial index when
// several share it).
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*Application)(nil),
		(*Role)(nil),
		(*User)(nil),
		(*UserRole)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create table")
		}
	}

	// user_id+role_id must stay unique under concurrent grants
	if _, err := db.NewCreateIndex().
		Model((*UserRole)(nil)).
		Index("user_roles_user_id_role_id_idx").
		Unique().
		Column("user_id", "role_id").
		IfNotExists().
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create grant index")
	}

	if _, err := db.NewCreateIndex().
		Model((*Role)(nil)).
		Index("roles_application_id_name_idx").
		Unique().
		Column("application_id", "name").
		IfNotExists().
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create role index")
	}

	return nil
}
