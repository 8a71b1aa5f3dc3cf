package ports

import (
	"context"

	"github.com/yedidi/warehouse-api/internal/core/domain"
)

// ProductChanges carries the subset of product fields to overwrite.
// Nil fields are left untouched.
type ProductChanges struct {
	Name        *string
	Category    *domain.Category
	Description *string
	Price       *int
	Stock       *int
	Image       *string
}

// Empty reports whether no field is set.
func (c ProductChanges) Empty() bool {
	return c.Name == nil && c.Category == nil && c.Description == nil &&
		c.Price == nil && c.Stock == nil && c.Image == nil
}

// ProductRepository is the catalog store.
//
// FindByID, Update and Delete return an error wrapping domain.ErrNotFound both
// for ids the store cannot parse and for well-formed ids with no document.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// ListByCategory returns products in insertion order.
	ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error)
	Update(ctx context.Context, id string, changes ProductChanges) error
	Delete(ctx context.Context, id string) error
}

// IdempotencyRecord is what an idempotency key remembers: the product it
// produced and a fingerprint of the payload that produced it.
type IdempotencyRecord struct {
	ProductID   string `json:"product_id"`
	Fingerprint string `json:"fingerprint"`
}

// IdempotencyStore remembers which product a client-supplied idempotency key
// produced. Keys are already scoped to the requesting user.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (rec IdempotencyRecord, found bool, err error)
	// Remember stores rec unless the key is already taken.
	Remember(ctx context.Context, key string, rec IdempotencyRecord) error
	Forget(ctx context.Context, key string) error
}
