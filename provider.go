package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// Provider composes the credential verifier, registrar, confirmation manager,
// role repository and token issuer into the public authentication service.
type Provider struct {
	verifier     IdentityVerifier
	registrar    UserRegistrar
	confirmation *AccountConfirmation
	repo         RepositoryManager
	tokenService TokenService
	appName      string
	logger       Logger
	activitySink ActivitySink
}

var _ TokenProvider = (*Provider)(nil)

// NewTokenProvider returns a new Provider wired from the repository manager
// and the supplied configuration.
func NewTokenProvider(repo RepositoryManager, opts Config) *Provider {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		opts.GetAppName(),
		defLogger{},
	)

	return &Provider{
		verifier:     NewUserProvider(repo.Users(), repo.Roles(), opts.GetAppName()),
		registrar:    NewRegistrar(repo, opts.GetAppName()),
		confirmation: NewAccountConfirmation(repo.Users(), opts.GetAppName()),
		repo:         repo,
		tokenService: tokenService,
		appName:      opts.GetAppName(),
		logger:       defLogger{},
		activitySink: noopActivitySink{},
	}
}

func (s *Provider) WithLogger(logger Logger) *Provider {
	if logger == nil {
		return s
	}

	s.logger = logger
	if p, ok := s.verifier.(*UserProvider); ok {
		p.WithLogger(logger)
	}
	if r, ok := s.registrar.(*Registrar); ok {
		r.WithLogger(logger)
	}
	s.confirmation.WithLogger(logger)
	return s
}

// WithActivitySink configures an ActivitySink for emitting auth events.
func (s *Provider) WithActivitySink(sink ActivitySink) *Provider {
	s.activitySink = normalizeActivitySink(sink)
	return s
}

// WithIdentityVerifier sets a custom verifier, replacing the default
// user-store backed one.
func (s *Provider) WithIdentityVerifier(verifier IdentityVerifier) *Provider {
	if verifier != nil {
		s.verifier = verifier
	}
	return s
}

// TokenService returns the TokenService instance used by this Provider
func (s *Provider) TokenService() TokenService {
	return s.tokenService
}

// LogIn verifies the credential pair and returns a signed token carrying the
// principal's claims and role set. A disabled account fails distinctly from a
// rejected credential pair.
func (s *Provider) LogIn(ctx context.Context, identifier, password string, field AuthenticationField) (string, error) {
	identity, err := s.verifier.VerifyIdentity(ctx, identifier, password, field)
	if err != nil {
		s.logger.Error("LogIn verify identity error", "error", err)
		s.emitEvent(ctx, ActivityEventLoginFailure, "", map[string]any{
			"identifier": identifier,
			"field":      string(field),
			"error":      err.Error(),
		})
		return "", err
	}

	token, err := s.tokenService.Generate(identity, field)
	if err != nil {
		s.logger.Error("LogIn token generation error", "error", err)
		s.emitEvent(ctx, ActivityEventLoginFailure, identity.ID(), map[string]any{
			"identifier": identifier,
			"error":      err.Error(),
		})
		return "", err
	}

	s.emitEvent(ctx, ActivityEventLoginSuccess, identity.ID(), map[string]any{
		"identifier": identifier,
		"field":      string(field),
	})

	return token, nil
}

// SigIn registers a new user together with its initial role set in a single
// transaction.
func (s *Provider) SigIn(ctx context.Context, registration Registration) (bool, error) {
	userID, err := s.registrar.Register(ctx, registration)
	if err != nil {
		s.logger.Error("SigIn registration error", "error", err)
		return false, err
	}

	s.emitEvent(ctx, ActivityEventUserRegistered, userID.String(), map[string]any{
		"identifier": registration.identifier(),
		"field":      string(registration.Field),
		"roles":      registration.Roles,
	})

	return true, nil
}

// ConfirmAccount activates a pending account via its identifier and one-time
// verification code.
func (s *Provider) ConfirmAccount(ctx context.Context, identifier string, field AuthenticationField, verifyCode string) (bool, error) {
	userID, err := s.confirmation.Confirm(ctx, identifier, field, verifyCode)
	if err != nil {
		s.logger.Error("ConfirmAccount error", "error", err)
		return false, err
	}

	s.emitEvent(ctx, ActivityEventAccountConfirmed, userID.String(), map[string]any{
		"identifier": identifier,
		"field":      string(field),
	})

	return true, nil
}

// IsEnabledAccount reports whether the account has been activated.
func (s *Provider) IsEnabledAccount(ctx context.Context, identifier string, field AuthenticationField) (bool, error) {
	return s.confirmation.IsEnabled(ctx, identifier, field)
}

// ApplyUserRole grants the named role to the user identified by the
// authentication field.
func (s *Provider) ApplyUserRole(ctx context.Context, identifier, roleName string, field AuthenticationField) (bool, error) {
	userID, roleID, err := s.resolveUserAndRole(ctx, identifier, roleName, field)
	if err != nil {
		return false, err
	}

	if err := s.repo.Roles().Grant(ctx, userID, roleID); err != nil {
		s.logger.Error("ApplyUserRole grant error", "error", err)
		return false, err
	}

	s.emitEvent(ctx, ActivityEventRoleGranted, userID.String(), map[string]any{
		"identifier": identifier,
		"role":       roleName,
	})

	return true, nil
}

// DenyUserRole revokes the named role from the user identified by the
// authentication field. Revoking an absent grant succeeds.
func (s *Provider) DenyUserRole(ctx context.Context, identifier, roleName string, field AuthenticationField) (bool, error) {
	userID, roleID, err := s.resolveUserAndRole(ctx, identifier, roleName, field)
	if err != nil {
		return false, err
	}

	if err := s.repo.Roles().Revoke(ctx, userID, roleID); err != nil {
		s.logger.Error("DenyUserRole revoke error", "error", err)
		return false, err
	}

	s.emitEvent(ctx, ActivityEventRoleRevoked, userID.String(), map[string]any{
		"identifier": identifier,
		"role":       roleName,
	})

	return true, nil
}

func (s *Provider) resolveUserAndRole(ctx context.Context, identifier, roleName string, field AuthenticationField) (uuid.UUID, uuid.UUID, error) {
	user, err := s.repo.Users().GetByField(ctx, field, identifier, s.appName)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return uuid.Nil, uuid.Nil, ErrUserOrRoleInvalid
		}
		return uuid.Nil, uuid.Nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to resolve user")
	}

	resolved, err := s.repo.Roles().ResolveIDs(ctx, s.appName, []string{roleName})
	if err != nil {
		if goerrors.Is(err, ErrInvalidRoleSet) {
			return uuid.Nil, uuid.Nil, ErrUserOrRoleInvalid
		}
		return uuid.Nil, uuid.Nil, err
	}

	return user.ID, resolved[roleName], nil
}

func (s *Provider) emitEvent(ctx context.Context, eventType ActivityEventType, userID string, metadata map[string]any) {
	sink := normalizeActivitySink(s.activitySink)
	event := ActivityEvent{
		EventType:  eventType,
		UserID:     userID,
		Metadata:   metadata,
		OccurredAt: time.Now(),
	}

	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}

	if err := sink.Record(ctx, event); err != nil {
		s.logger.Warn("activity sink record error: %v", err)
	}
}
