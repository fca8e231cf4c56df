package auth

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/folio/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// Passwords hashes and checks passwords with bcrypt. Each hash embeds its
// own random salt.
type Passwords struct {
	cost int

	once  sync.Once
	dummy []byte
}

func NewPasswords(cost int) *Passwords {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Passwords{cost: cost}
}

func (p *Passwords) Hash(password string) ([]byte, error) {
	if len(password) > MaxPasswordBytes {
		return nil, common.ErrValidation
	}
	return bcrypt.GenerateFromPassword([]byte(password), p.cost)
}

// Compare returns nil when password matches hash and ErrInvalidCredentials
// otherwise.
func (p *Passwords) Compare(hash []byte, password string) error {
	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return common.ErrInvalidCredentials
	}
	return err
}

// generateHash is swapped in tests.
var generateHash = bcrypt.GenerateFromPassword

// CompareDummy burns the same bcrypt work as Compare against a hash nobody
// owns. Used when the account does not exist.
func (p *Passwords) CompareDummy(password string) {
	p.once.Do(func() {
		h, err := generateHash(common.GenerateRandByteArray(32), p.cost)
		if err != nil {
			h = fallbackDummyHash(p.cost)
		}
		p.dummy = h
	})
	_ = bcrypt.CompareHashAndPassword(p.dummy, []byte(password))
}

// fallbackDummyHash is a well-formed bcrypt hash at cost that matches no
// password. bcrypt runs the full key schedule before comparing digests.
func fallbackDummyHash(cost int) []byte {
	return []byte(fmt.Sprintf("$2a$%02d$%s%s", cost,
		"Zm9saW8tZHVtbXktc2FsdO",
		"ZvbGlvLWR1bW15LWRpZ2VzdC1wYWRkZ"))
}
