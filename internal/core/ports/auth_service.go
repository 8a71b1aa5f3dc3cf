package ports

import (
	"context"

	"github.com/yedidi/warehouse-api/internal/core/domain"
)

// Credentials is the signup and login payload.
type Credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// PermissionUpdate asks for username's permission to become Permission.
type PermissionUpdate struct {
	Username   string `validate:"required"`
	Permission string `validate:"required"`
}

// TokenService signs and verifies bearer tokens carrying a user id.
type TokenService interface {
	Issue(userID string) (string, error)
	// Verify returns the embedded user id, or an error when the signature
	// is invalid or the token has expired.
	Verify(token string) (string, error)
}

// PasswordHasher is a one-way salted hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type AuthService interface {
	Signup(ctx context.Context, in Credentials) (*domain.User, error)
	Login(ctx context.Context, in Credentials) (string, error)
	UpdatePermission(ctx context.Context, in PermissionUpdate) error
}

// AccessGuard authenticates bearer tokens and authorizes actions.
type AccessGuard interface {
	Authenticate(authorization string) (string, error)
	ResolveUser(ctx context.Context, userID string) (*domain.User, error)
	Authorize(user *domain.User, action domain.Action) error
}
