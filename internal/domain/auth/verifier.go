package auth

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Verifier checks raw API keys against a fixed set of stored hashes.
// The hash set is read-only after construction; the only mutable state is
// a cache of keys that already verified, keyed by xxhash fingerprint, so
// the Argon2id work runs once per distinct key instead of once per request.
type Verifier struct {
	hashes []string

	mu       sync.RWMutex
	verified map[uint64]struct{}
}

// NewVerifier creates a Verifier over the given stored hashes.
// An empty hash set verifies nothing.
func NewVerifier(hashes []string) *Verifier {
	return &Verifier{
		hashes:   hashes,
		verified: make(map[uint64]struct{}),
	}
}

// Enabled reports whether any keys are configured.
func (v *Verifier) Enabled() bool {
	return len(v.hashes) > 0
}

// Verify reports whether rawKey matches any configured hash.
// Hashes with unrecognized formats are skipped, not treated as errors;
// config validation rejects them before a Verifier is ever built.
func (v *Verifier) Verify(rawKey string) bool {
	fp := Fingerprint(rawKey)

	v.mu.RLock()
	_, ok := v.verified[fp]
	v.mu.RUnlock()
	if ok {
		return true
	}

	for _, h := range v.hashes {
		match, err := VerifyKey(rawKey, h)
		if err != nil || !match {
			continue
		}
		v.mu.Lock()
		v.verified[fp] = struct{}{}
		v.mu.Unlock()
		return true
	}
	return false
}

// Fingerprint returns a cheap non-cryptographic fingerprint of a raw key,
// suitable as a cache key or log correlation value. Never log the raw key.
func Fingerprint(rawKey string) uint64 {
	return xxhash.Sum64String(rawKey)
}
