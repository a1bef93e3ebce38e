// Package auth issues signed identity tokens backed by a relational
// user/role store and administers per-application role grants.
//
// The Provider composes a credential verifier, a transactional registrar, an
// account confirmation manager, a role repository and a token issuer into the
// public operations LogIn, SigIn, ConfirmAccount, IsEnabledAccount,
// ApplyUserRole and DenyUserRole. Every user and role lookup is scoped to the
// application named in the configuration.
//
// The package owns no connections and spawns no background work: the caller
// supplies a *bun.DB, each public operation runs on one transactional session
// and deadlines are imposed through the context.
package auth
