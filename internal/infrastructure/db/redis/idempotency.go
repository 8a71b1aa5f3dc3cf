package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yedidi/warehouse-api/internal/core/ports"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour
	idempotencyPrefix     = "idempotency:product:"
)

// IdempotencyStore maps user-scoped idempotency keys to the product the first
// request created and the fingerprint of its payload. Keys expire after ttl.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup returns the record stored for key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (ports.IdempotencyRecord, bool, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.IdempotencyRecord{}, false, nil
	}
	if err != nil {
		return ports.IdempotencyRecord{}, false, fmt.Errorf("idempotency lookup: %w", err)
	}
	rec, err := decodeRecord(raw)
	if err != nil {
		return ports.IdempotencyRecord{}, false, err
	}
	return rec, true, nil
}

// Remember records rec for key unless another request recorded one first.
func (s *IdempotencyStore) Remember(ctx context.Context, key string, rec ports.IdempotencyRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("idempotency encode: %w", err)
	}
	if err := s.client.SetNX(ctx, s.key(key), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

// Forget drops key so the next request with it creates a fresh product.
func (s *IdempotencyStore) Forget(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("idempotency forget: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(key string) string {
	return idempotencyPrefix + key
}

func decodeRecord(raw []byte) (ports.IdempotencyRecord, error) {
	var rec ports.IdempotencyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return rec, fmt.Errorf("idempotency decode: %w", err)
	}
	if rec.ProductID == "" || rec.Fingerprint == "" {
		return rec, errors.New("idempotency decode: incomplete record")
	}
	return rec, nil
}
