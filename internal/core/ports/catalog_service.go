package ports

import (
	"context"
	"encoding/json"

	"github.com/yedidi/warehouse-api/internal/core/domain"
)

// ProductPayload is a product request body keyed by field name. Values are
// kept raw so the catalog service can report type errors per field and tell
// absent fields from zero values.
type ProductPayload map[string]json.RawMessage

// CreateProductInput carries a creation request.
type CreateProductInput struct {
	Payload ProductPayload
	// ActorID scopes IdempotencyKey to the requesting user.
	ActorID string
	// IdempotencyKey is optional; repeating a key with the same payload
	// returns the product created by the first request.
	IdempotencyKey string
}

// CatalogLookup is the result of List: either every product of a category
// or exactly one product looked up by id.
type CatalogLookup struct {
	ByCategory bool
	Products   []*domain.Product
}

type CatalogService interface {
	List(ctx context.Context, categoryOrID string) (*CatalogLookup, error)
	Create(ctx context.Context, in CreateProductInput) (string, error)
	Update(ctx context.Context, id string, payload ProductPayload) (string, error)
	Remove(ctx context.Context, id string) error
}
