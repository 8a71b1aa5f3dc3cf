package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yedidi/warehouse-api/internal/core/domain"
	"github.com/yedidi/warehouse-api/internal/core/ports"
)

const bearerScheme = "Bearer"

// AccessGuard turns an Authorization header into a user and checks that user
// against the access policy.
type AccessGuard struct {
	tokens ports.TokenService
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewAccessGuard(tokens ports.TokenService, users ports.UserRepository, logger zerolog.Logger) *AccessGuard {
	return &AccessGuard{tokens: tokens, users: users, logger: logger}
}

// Authenticate accepts exactly "Bearer <token>" and returns the user id
// embedded in a valid, unexpired token. It does not touch the store.
func (g *AccessGuard) Authenticate(authorization string) (string, error) {
	parts := strings.Split(authorization, " ")
	if authorization == "" || len(parts) < 2 || parts[1] == "" {
		return "", domain.NewUnauthorized(domain.MsgNoToken)
	}
	if len(parts) != 2 || parts[0] != bearerScheme {
		return "", domain.NewUnauthorized(domain.MsgBadAuthHeader)
	}

	userID, err := g.tokens.Verify(parts[1])
	if err != nil {
		return "", domain.NewUnauthorized(domain.MsgBadToken)
	}
	return userID, nil
}

// ResolveUser loads the token subject. A subject that has disappeared since
// the token was issued is an authentication failure.
func (g *AccessGuard) ResolveUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := g.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			g.logger.Warn().Str("user_id", userID).Msg("token subject no longer exists")
			return nil, domain.NewUnauthorized(domain.MsgUserGone)
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return user, nil
}

// Authorize fails with a forbidden error when user's permission does not
// allow action.
func (g *AccessGuard) Authorize(user *domain.User, action domain.Action) error {
	if user == nil {
		return domain.NewUnauthorized(domain.MsgUserGone)
	}
	if !action.Allows(user.Permission) {
		g.logger.Warn().
			Str("user_id", user.ID).
			Str("permission", string(user.Permission)).
			Str("action", string(action)).
			Msg("access denied")
		return domain.NewForbidden(domain.MsgForbidden)
	}
	return nil
}
