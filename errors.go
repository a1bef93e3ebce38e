package auth

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes surfaced alongside structured errors so clients can branch
// without string matching messages.
const (
	TextCodeValidation        = "VALIDATION_ERROR"
	TextCodeInvalidCreds      = "INVALID_CREDENTIALS"
	TextCodeAccountNotActive  = "ACCOUNT_NOT_ACTIVATED"
	TextCodeAccountNotFound   = "ACCOUNT_NOT_FOUND"
	TextCodeAlreadyActive     = "ACCOUNT_ALREADY_ACTIVE"
	TextCodeDuplicateAccount  = "DUPLICATE_ACCOUNT"
	TextCodeInvalidRoleSet    = "INVALID_ROLE_SET"
	TextCodeNoRolesSpecified  = "NO_ROLES_SPECIFIED"
	TextCodeAlreadyGranted    = "ROLE_ALREADY_GRANTED"
	TextCodeUserOrRoleInvalid = "USER_OR_ROLE_INVALID"
	TextCodeEmptyPassword     = "EMPTY_PASSWORD"
	TextCodeTokenExpired      = "TOKEN_EXPIRED"
	TextCodeTokenMalformed    = "TOKEN_MALFORMED"
)

// ErrInvalidCredentials covers both an unknown identifier and a wrong
// password; callers must not be able to tell the two apart.
var ErrInvalidCredentials = goerrors.New("the credentials provided are invalid", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(goerrors.CodeUnauthorized)

// ErrAccountNotActivated is returned when the credentials check out but the
// account has not been confirmed yet.
var ErrAccountNotActivated = goerrors.New("account has not been activated", goerrors.CategoryAuth).
	WithTextCode(TextCodeAccountNotActive).
	WithCode(goerrors.CodeForbidden)

// ErrAccountNotFound is returned by confirmation and status lookups when no
// user matches the identifier within the configured application.
var ErrAccountNotFound = goerrors.New("account not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeAccountNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrAccountAlreadyActive is returned when confirming an account that was
// already activated; the stored state is left untouched.
var ErrAccountAlreadyActive = goerrors.New("account is already active", goerrors.CategoryConflict).
	WithTextCode(TextCodeAlreadyActive).
	WithCode(goerrors.CodeConflict)

// ErrDuplicateAccount is returned when a registration collides with an
// existing identifier within the target application.
var ErrDuplicateAccount = goerrors.New("an account with this identifier already exists", goerrors.CategoryConflict).
	WithTextCode(TextCodeDuplicateAccount).
	WithCode(goerrors.CodeConflict)

// ErrInvalidRoleSet is returned when one or more requested role names do not
// resolve to an enabled role of the enabled target application. A role set is
// applied in full or not at all.
var ErrInvalidRoleSet = goerrors.New("one or more roles are not valid for the application", goerrors.CategoryValidation).
	WithTextCode(TextCodeInvalidRoleSet).
	WithCode(goerrors.CodeBadRequest)

// ErrNoRolesSpecified rejects registrations without at least one role. Lookups
// are scoped through role grants; a role-less user would be unreachable.
var ErrNoRolesSpecified = goerrors.New("at least one role must be specified", goerrors.CategoryValidation).
	WithTextCode(TextCodeNoRolesSpecified).
	WithCode(goerrors.CodeBadRequest)

// ErrRoleAlreadyGranted is returned when granting a (user, role) pair that
// already exists; re-granting is an error, not a no-op.
var ErrRoleAlreadyGranted = goerrors.New("role already granted to user", goerrors.CategoryConflict).
	WithTextCode(TextCodeAlreadyGranted).
	WithCode(goerrors.CodeConflict)

// ErrUserOrRoleInvalid is returned by grant and revoke operations when the
// user or the role cannot be resolved within the configured application.
var ErrUserOrRoleInvalid = goerrors.New("user or role could not be resolved", goerrors.CategoryValidation).
	WithTextCode(TextCodeUserOrRoleInvalid).
	WithCode(goerrors.CodeBadRequest)

// ErrNoEmptyString rejects empty credential material before hashing.
var ErrNoEmptyString = goerrors.New("value must not be empty", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(goerrors.CodeBadRequest)

// ErrTokenExpired is returned by Validate for tokens past their expiry.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned by Validate for tokens that fail parsing or
// signature verification.
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
