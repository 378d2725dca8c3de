package auth

import "golang.org/x/crypto/bcrypt"

// Hasher is the password-hashing capability. Keeping it behind an interface
// lets the services swap the algorithm without touching business logic.
type Hasher interface {
	Hash(password string) ([]byte, error)
	// Compare returns nil when password matches hash.
	Compare(hash []byte, password string) error
}

// BcryptHasher hashes with bcrypt at a configurable cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher constructs a hasher. A cost outside bcrypt's supported
// range falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), h.cost)
}

func (h *BcryptHasher) Compare(hash []byte, password string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}
