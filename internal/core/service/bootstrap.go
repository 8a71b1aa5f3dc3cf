package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yedidi/warehouse-api/internal/core/domain"
)

// EnsureAdmin creates the bootstrap Admin account unless a user with that
// name already exists. It is meant to run once at startup and is safe to
// repeat. Empty credentials disable the bootstrap.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		s.logger.Warn().Msg("admin bootstrap skipped: credentials not configured")
		return nil
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		s.logger.Info().Str("username", username).Str("permission", string(existing.Permission)).Msg("bootstrap admin already present")
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("ensure admin: %w", err)
	}

	created, err := s.createUser(ctx, username, password, domain.PermissionAdmin)
	if err != nil {
		// Another instance won the race to create the same username.
		if errors.Is(err, domain.ErrConflict) {
			return nil
		}
		return fmt.Errorf("ensure admin: %w", err)
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", username).Msg("bootstrap admin created")
	return nil
}
