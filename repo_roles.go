package auth

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Roles resolves role names to ids within an application and manages user
// grants. Role and application rows themselves are read-only here.
type Roles interface {
	ResolveIDs(ctx context.Context, appName string, names []string) (map[string]uuid.UUID, error)
	ResolveIDsTx(ctx context.Context, tx bun.IDB, appName string, names []string) (map[string]uuid.UUID, error)

	NamesForUser(ctx context.Context, userID uuid.UUID, appName string) ([]string, error)

	Grant(ctx context.Context, userID, roleID uuid.UUID) error
	GrantTx(ctx context.Context, tx bun.IDB, userID, roleID uuid.UUID) error

	Revoke(ctx context.Context, userID, roleID uuid.UUID) error
	RevokeTx(ctx context.Context, tx bun.IDB, userID, roleID uuid.UUID) error
}

type roles struct {
	db *bun.DB
}

var _ Roles = (*roles)(nil)

func NewRolesRepository(db *bun.DB) Roles {
	return &roles{db: db}
}

func (a *roles) ResolveIDs(ctx context.Context, appName string, names []string) (map[string]uuid.UUID, error) {
	return a.ResolveIDsTx(ctx, a.db, appName, names)
}

// ResolveIDsTx resolves every requested name to an enabled role of the
// enabled application, or fails without resolving any of them. An empty name
// can never resolve, so it fails the whole set up front.
func (a *roles) ResolveIDsTx(ctx context.Context, tx bun.IDB, appName string, names []string) (map[string]uuid.UUID, error) {
	for _, name := range names {
		if name == "" {
			return nil, goerrors.Wrap(
				ErrInvalidRoleSet,
				ErrInvalidRoleSet.Category,
				fmt.Sprintf("empty role name requested for application %q", appName),
			)
		}
	}

	unique := uniqueNames(names)
	if len(unique) == 0 {
		return map[string]uuid.UUID{}, nil
	}

	var records []Role
	err := tx.NewSelect().
		Model(&records).
		Join("JOIN applications AS app ON app.id = ?TableAlias.application_id").
		Where("app.name = ?", appName).
		Where("app.is_enabled = TRUE").
		Where("?TableAlias.is_enabled = TRUE").
		Where("?TableAlias.name IN (?)", bun.In(unique)).
		Scan(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to resolve role names")
	}

	if len(records) < len(unique) {
		return nil, goerrors.Wrap(
			ErrInvalidRoleSet,
			ErrInvalidRoleSet.Category,
			fmt.Sprintf("one or more roles are not valid for application %q", appName),
		)
	}

	resolved := make(map[string]uuid.UUID, len(records))
	for _, record := range records {
		resolved[record.Name] = record.ID
	}

	return resolved, nil
}

// NamesForUser returns the user's role names in the application, in store
// order. Claim assembly does not require a sorted sequence.
func (a *roles) NamesForUser(ctx context.Context, userID uuid.UUID, appName string) ([]string, error) {
	var names []string
	err := a.db.NewSelect().
		Model((*UserRole)(nil)).
		ColumnExpr("r.name").
		Join("JOIN roles AS r ON r.id = ?TableAlias.role_id").
		Join("JOIN applications AS app ON app.id = r.application_id").
		Where("?TableAlias.user_id = ?", userID).
		Where("app.name = ?", appName).
		Scan(ctx, &names)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list user roles")
	}

	return names, nil
}

func (a *roles) Grant(ctx context.Context, userID, roleID uuid.UUID) error {
	return a.GrantTx(ctx, a.db, userID, roleID)
}

func (a *roles) GrantTx(ctx context.Context, tx bun.IDB, userID, roleID uuid.UUID) error {
	exists, err := tx.NewSelect().
		Model((*UserRole)(nil)).
		Where("?TableAlias.user_id = ?", userID).
		Where("?TableAlias.role_id = ?", roleID).
		Exists(ctx)

	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check existing grant")
	}

	if exists {
		return ErrRoleAlreadyGranted
	}

	if _, err := tx.NewInsert().
		Model(&UserRole{UserID: userID, RoleID: roleID}).
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert grant")
	}

	return nil
}

func (a *roles) Revoke(ctx context.Context, userID, roleID uuid.UUID) error {
	return a.RevokeTx(ctx, a.db, userID, roleID)
}

// RevokeTx deletes the association. Revoking an absent grant is a no-op.
func (a *roles) RevokeTx(ctx context.Context, tx bun.IDB, userID, roleID uuid.UUID) error {
	if _, err := tx.NewDelete().
		Model((*UserRole)(nil)).
		Where("?TableAlias.user_id = ?", userID).
		Where("?TableAlias.role_id = ?", roleID).
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete grant")
	}

	return nil
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))

	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}

	return unique
}
