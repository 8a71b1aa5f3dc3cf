package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yedidi/warehouse-api/internal/core/domain"
	"github.com/yedidi/warehouse-api/internal/core/ports"
	"github.com/yedidi/warehouse-api/internal/core/validation"
)

// AuthService implements signup, login and permission changes.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// Signup creates a Worker account. Duplicate usernames are rejected before
// anything is written.
func (s *AuthService) Signup(ctx context.Context, in ports.Credentials) (*domain.User, error) {
	if errs := validation.Struct(in); errs != nil {
		return nil, domain.NewValidationError(domain.MsgInvalidCredentials, errs...)
	}

	_, err := s.users.FindByUsername(ctx, in.Username)
	switch {
	case err == nil:
		return nil, domain.NewConflict(domain.MsgExistingUsername)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("signup: %w", err)
	}

	created, err := s.createUser(ctx, in.Username, in.Password, domain.PermissionWorker)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return created, nil
}

// Login verifies credentials and returns a signed bearer token.
func (s *AuthService) Login(ctx context.Context, in ports.Credentials) (string, error) {
	if errs := validation.Struct(in); errs != nil {
		return "", domain.NewValidationError(domain.MsgInvalidCredentials, errs...)
	}

	user, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.NewUnauthorized(domain.MsgUnknownUsername)
		}
		return "", fmt.Errorf("login: %w", err)
	}

	if s.hasher.Compare(user.PasswordHash, in.Password) != nil {
		s.logger.Warn().Str("username", user.Username).Msg("login rejected: password mismatch")
		return "", domain.NewUnauthorized(domain.MsgInvalidPassword)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("login: issue token: %w", err)
	}
	return token, nil
}

// UpdatePermission sets the permission of an existing user to Manager or
// Worker. The caller must already be authorized as Admin.
func (s *AuthService) UpdatePermission(ctx context.Context, in ports.PermissionUpdate) error {
	if errs := validation.Struct(in); errs != nil {
		return domain.NewValidationError(domain.MsgInvalidJSON, errs...)
	}

	target, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewUnauthorized(domain.MsgUnknownUsername)
		}
		return fmt.Errorf("update permission: %w", err)
	}

	permission := domain.Permission(in.Permission)
	if !permission.Grantable() {
		return domain.NewValidationError(domain.MsgInvalidPermission,
			domain.FieldError{Field: "permission", Message: "permission must be one of: M, W"})
	}

	if err := s.users.UpdatePermission(ctx, target.ID, permission); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewUnauthorized(domain.MsgUnknownUsername)
		}
		s.logger.Error().Err(err).Str("user_id", target.ID).Msg("failed to update permission")
		return domain.NewValidationError(domain.MsgInvalidInputValue)
	}

	s.logger.Info().
		Str("user_id", target.ID).
		Str("from", string(target.Permission)).
		Str("to", string(permission)).
		Msg("permission updated")
	return nil
}

// createUser hashes password and inserts the record. Store failures are
// reported as invalid input rather than leaked.
func (s *AuthService) createUser(ctx context.Context, username, password string, permission domain.Permission) (*domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, domain.NewValidationError(domain.MsgInvalidInputValue)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		Permission:   permission,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.NewConflict(domain.MsgExistingUsername)
		}
		s.logger.Error().Err(err).Str("username", username).Msg("failed to create user")
		return nil, domain.NewValidationError(domain.MsgInvalidInputValue)
	}
	return created, nil
}
