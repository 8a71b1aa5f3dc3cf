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

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Credential store
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	findErr   error // if set, every lookup returns this error
	createErr error
	updateErr error
	creates   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) seed(username, hash string, p domain.Permission) *domain.User {
	r.nextID++
	u := &domain.User{ID: fmt.Sprintf("u%d", r.nextID), Username: username, PasswordHash: hash, Permission: p}
	r.byID[u.ID] = u
	return cloneUser(u)
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFound("user not found")
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.NewNotFound("user not found")
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, domain.NewConflict("duplicate username")
		}
	}
	r.creates++
	return r.seed(user.Username, user.PasswordHash, user.Permission), nil
}

func (r *stubUserRepo) UpdatePermission(_ context.Context, id string, p domain.Permission) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	u, ok := r.byID[id]
	if !ok {
		return domain.NewNotFound("user not found")
	}
	u.Permission = p
	return nil
}

// ---------------------------------------------------------------------------
// Catalog store
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	byID      map[string]*domain.Product
	order     []string
	nextID    int
	findErr   error
	createErr error
	updateErr error
	deleteErr error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.Product)}
}

// validID mirrors the 24-hex-digit ObjectID format of the real store.
func validID(id string) bool {
	if len(id) != 24 {
		return false
	}
	return strings.Trim(strings.ToLower(id), "0123456789abcdef") == ""
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	r.nextID++
	id := fmt.Sprintf("%024x", r.nextID)
	clone := *p
	clone.ID = id
	r.byID[id] = &clone
	r.order = append(r.order, id)
	return id, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if !validID(id) {
		return nil, domain.NewNotFound("malformed product id")
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFound("product not found")
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) ListByCategory(_ context.Context, c domain.Category) ([]*domain.Product, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*domain.Product
	for _, id := range r.order {
		if p, ok := r.byID[id]; ok && p.Category == c {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, c ports.ProductChanges) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	p, ok := r.byID[id]
	if !ok {
		return domain.NewNotFound("product not found")
	}
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.Category != nil {
		p.Category = *c.Category
	}
	if c.Description != nil {
		p.Description = *c.Description
	}
	if c.Price != nil {
		p.Price = *c.Price
	}
	if c.Stock != nil {
		p.Stock = *c.Stock
	}
	if c.Image != nil {
		p.Image = *c.Image
	}
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.byID[id]; !ok {
		return domain.NewNotFound("product not found")
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Idempotency, tokens, hashing
// ---------------------------------------------------------------------------

type stubIdem struct {
	keys      map[string]ports.IdempotencyRecord
	lookupErr error
	forgotten []string
}

func newStubIdem() *stubIdem {
	return &stubIdem{keys: make(map[string]ports.IdempotencyRecord)}
}

func (s *stubIdem) Lookup(_ context.Context, key string) (ports.IdempotencyRecord, bool, error) {
	if s.lookupErr != nil {
		return ports.IdempotencyRecord{}, false, s.lookupErr
	}
	rec, ok := s.keys[key]
	return rec, ok, nil
}

func (s *stubIdem) Remember(_ context.Context, key string, rec ports.IdempotencyRecord) error {
	if _, ok := s.keys[key]; !ok {
		s.keys[key] = rec
	}
	return nil
}

func (s *stubIdem) Forget(_ context.Context, key string) error {
	delete(s.keys, key)
	s.forgotten = append(s.forgotten, key)
	return nil
}

// stubTokens issues "token:<id>" and accepts only tokens it issued and has
// not expired.
type stubTokens struct {
	expired map[string]bool
}

func (s *stubTokens) Issue(userID string) (string, error) {
	return "token:" + userID, nil
}

func (s *stubTokens) Verify(token string) (string, error) {
	id, ok := strings.CutPrefix(token, "token:")
	if !ok || id == "" || s.expired[token] {
		return "", errors.New("invalid token")
	}
	return id, nil
}

type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}
