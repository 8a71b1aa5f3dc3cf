package ports

import (
	"context"

	"github.com/yedidi/warehouse-api/internal/core/domain"
)

// UserRepository is the credential store.
//
// Lookups that match nothing return an error wrapping domain.ErrNotFound;
// Create returns one wrapping domain.ErrConflict when the username is taken.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePermission(ctx context.Context, id string, permission domain.Permission) error
}
