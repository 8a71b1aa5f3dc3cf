package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yedidi/warehouse-api/internal/core/domain"
	"github.com/yedidi/warehouse-api/internal/core/ports"
	"github.com/yedidi/warehouse-api/internal/core/validation"
)

// CatalogService validates and executes product operations. Callers are
// expected to have authorized the request already.
type CatalogService struct {
	repo   ports.ProductRepository
	idem   ports.IdempotencyStore
	logger zerolog.Logger
}

// NewCatalogService builds the service. idem may be nil, which disables
// idempotency keys.
func NewCatalogService(repo ports.ProductRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, idem: idem, logger: logger}
}

// List returns every product of a category when categoryOrID is a category
// literal, and otherwise the single product with that id.
func (s *CatalogService) List(ctx context.Context, categoryOrID string) (*ports.CatalogLookup, error) {
	if domain.IsCategory(categoryOrID) {
		products, err := s.repo.ListByCategory(ctx, domain.Category(categoryOrID))
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		if products == nil {
			products = []*domain.Product{}
		}
		return &ports.CatalogLookup{ByCategory: true, Products: products}, nil
	}

	p, err := s.find(ctx, categoryOrID)
	if err != nil {
		return nil, err
	}
	return &ports.CatalogLookup{Products: []*domain.Product{p}}, nil
}

// Create validates the payload and inserts a new product, returning its id.
// Nothing is written when validation fails. A repeated idempotency key from the
// same user with the same payload returns the product created first.
func (s *CatalogService) Create(ctx context.Context, in ports.CreateProductInput) (string, error) {
	key := scopedKey(in)
	fp, err := fingerprint(in.Payload)
	if err != nil {
		return "", domain.NewValidationError(domain.MsgInvalidProduct)
	}

	id, ok, err := s.replay(ctx, key, fp)
	if err != nil {
		return "", err
	}
	if ok {
		return id, nil
	}

	p, err := validation.NewProduct(in.Payload)
	if err != nil {
		return "", err
	}

	id, err = s.repo.Create(ctx, p)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return "", domain.NewValidationError(domain.MsgInvalidInputValue)
	}

	if key != "" && s.idem != nil {
		rec := ports.IdempotencyRecord{ProductID: id, Fingerprint: fp}
		if err := s.idem.Remember(ctx, key, rec); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().Str("product_id", id).Str("category", string(p.Category)).Msg("product created")
	return id, nil
}

// Update applies the recognised fields of payload to product id. Unknown
// fields are ignored; a payload with no recognised field is rejected.
func (s *CatalogService) Update(ctx context.Context, id string, payload ports.ProductPayload) (string, error) {
	if _, err := s.find(ctx, id); err != nil {
		return "", err
	}

	changes, err := validation.ProductUpdate(payload)
	if err != nil {
		return "", err
	}

	if err := s.repo.Update(ctx, id, changes); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.NewNotFound(domain.MsgProductNotFound)
		}
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return "", domain.NewValidationError(domain.MsgInvalidInputValue)
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")
	return id, nil
}

// Remove deletes product id.
func (s *CatalogService) Remove(ctx context.Context, id string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewNotFound(domain.MsgProductNotFound)
		}
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return domain.NewValidationError(domain.MsgInvalidInputValue)
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// find resolves a product id. Malformed and unknown ids both yield a
// not-found error.
func (s *CatalogService) find(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFound(domain.MsgProductNotFound)
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return p, nil
}

// replay returns the id stored for key by an earlier successful create.
// Lookup failures are logged and treated as a miss. A key whose product has
// since been deleted is forgotten.
func (s *CatalogService) replay(ctx context.Context, key, fp string) (string, bool, error) {
	if key == "" || s.idem == nil {
		return "", false, nil
	}
	rec, found, err := s.idem.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return "", false, nil
	}
	if !found {
		return "", false, nil
	}

	if rec.Fingerprint != fp {
		return "", false, domain.NewValidationError(domain.MsgIdempotencyReused, domain.FieldError{
			Field:   "idempotency_key",
			Message: "key was already used with a different payload",
		})
	}

	if _, err := s.repo.FindByID(ctx, rec.ProductID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return "", false, fmt.Errorf("find replayed product: %w", err)
		}
		if err := s.idem.Forget(ctx, key); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to drop stale idempotency key")
		}
		return "", false, nil
	}

	s.logger.Info().Str("idempotency_key", key).Str("product_id", rec.ProductID).Msg("idempotent replay")
	return rec.ProductID, true, nil
}

// scopedKey prefixes the client key with the requesting user's id so two
// users never share a key. An empty client key disables idempotency.
func scopedKey(in ports.CreateProductInput) string {
	if in.IdempotencyKey == "" {
		return ""
	}
	return in.ActorID + ":" + in.IdempotencyKey
}

// fingerprint hashes the payload. Marshalling sorts the keys and compacts
// every value, so formatting differences do not change the result.
func fingerprint(payload ports.ProductPayload) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
