// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyPlaintext is hashed once per hasher to give unknown-account logins
// something to compare against.
const dummyPlaintext = "go-user-accounts:no-such-account"

// bcryptHasher is the private implementation of [PasswordHasher].
type bcryptHasher struct {
	// cost is the bcrypt work factor applied to every new hash.
	cost int

	// dummyHash has the same cost as real hashes so a lookup miss spends
	// the same time in Verify as a wrong password.
	dummyHash []byte
}

// NewPasswordHasher constructs a bcrypt [PasswordHasher] with the given work
// factor. Costs outside [bcrypt.MinCost, bcrypt.MaxCost] are rejected.
func NewPasswordHasher(cost int) (PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: invalid bcrypt cost %d", ErrHashingFailure, cost)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte(dummyPlaintext), cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHashingFailure, err)
	}

	return &bcryptHasher{cost: cost, dummyHash: dummy}, nil
}

// Hash implements [PasswordHasher]. bcrypt draws a fresh 16-byte salt from
// crypto/rand on every call and embeds it, together with the cost, in the
// returned string.
func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingFailure, err)
	}

	return string(hash), nil
}

// Verify implements [PasswordHasher].
func (h *bcryptHasher) Verify(plaintext, hash string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(plaintext))
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
