// Package password hashes user passwords with bcrypt.
package password

import "golang.org/x/crypto/bcrypt"

// DefaultCost matches the ten salt rounds used for existing records.
const DefaultCost = 10

// Hasher is a bcrypt-backed ports.PasswordHasher. Each hash embeds its own
// random salt.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *Hasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
