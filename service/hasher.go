package service

import (
	"golang.org/x/crypto/bcrypt"
)

// CredentialHasher hashes passwords and recovery keys with bcrypt. The digest
// carries its own salt and cost, so digests written with an older cost keep
// verifying after the configured cost changes.
type CredentialHasher struct {
	cost int
}

func NewCredentialHasher(cost int) *CredentialHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &CredentialHasher{cost: cost}
}

func (h *CredentialHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. Malformed digests never
// match.
func (h *CredentialHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
