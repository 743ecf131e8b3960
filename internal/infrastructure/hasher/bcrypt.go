package hasher

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the fixed bcrypt work factor used for every stored password.
const DefaultCost = 10

type Bcrypt struct {
	cost int

	// dummy is compared against when no account matches, so that a lookup
	// miss costs as much as a wrong password.
	dummyOnce sync.Once
	dummy     []byte
}

func New() *Bcrypt { return &Bcrypt{cost: DefaultCost} }

// NewWithCost is meant for tests that need a cheaper work factor.
func NewWithCost(cost int) *Bcrypt { return &Bcrypt{cost: cost} }

// Hash returns a bcrypt string; salt and cost are embedded in it.
func (b *Bcrypt) Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b *Bcrypt) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Burn performs a comparison that always fails.
func (b *Bcrypt) Burn(plain string) {
	b.dummyOnce.Do(func() {
		b.dummy, _ = bcrypt.GenerateFromPassword([]byte("burn"), b.cost)
	})
	_ = bcrypt.CompareHashAndPassword(b.dummy, []byte(plain))
}
