// Package hash provides the one-way secret hashing the repository applies to
// sensitive fields before they are bound into a statement.
package hash

import "golang.org/x/crypto/bcrypt"

// Hasher computes a one-way, salted hash of a plaintext secret. The cost
// factor tunes the work required per hash.
type Hasher interface {
	Hash(plain string, cost int) (string, error)
}

// Bcrypt hashes with golang.org/x/crypto/bcrypt. The zero value is usable.
type Bcrypt struct{}

// Hash returns the bcrypt hash of plain. A cost outside bcrypt's supported
// range falls back to the library default.
func (Bcrypt) Hash(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	out, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
