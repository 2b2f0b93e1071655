// Package memory implements driven ports with process-lifetime, in-memory state.
package memory

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ericfisherdev/crmclient/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TokenStore = (*TokenStore)(nil)

// TokenStore holds at most one bearer credential behind a RWMutex so a
// request never reads a credential that is half-way through being replaced.
// Nothing is written to disk.
type TokenStore struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time // Zero when the token carries no readable exp claim.
}

// NewTokenStore creates an empty TokenStore.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Set replaces any existing credential. If the token is a JWT with an exp
// claim, the expiry is remembered for Expired. The signature is not checked;
// only the server can do that.
func (s *TokenStore) Set(token string) {
	expiresAt := tokenExpiry(token)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = expiresAt
}

// Clear removes the credential.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
}

// Has returns true iff a non-empty credential is set.
func (s *TokenStore) Has() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the current credential, or "".
func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ExpiresAt returns the exp claim of the current token, if it had one.
func (s *TokenStore) ExpiresAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt, !s.expiresAt.IsZero()
}

// Expired returns true when the current token has a known expiry that is
// not after now.
func (s *TokenStore) Expired(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && !s.expiresAt.IsZero() && !now.Before(s.expiresAt)
}

// tokenExpiry reads the exp claim without verifying the signature.
// Opaque (non-JWT) tokens yield the zero time.
func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
