package driven

import "time"

// TokenStore defines the driven port for the in-memory bearer credential.
// Implementations must be safe for concurrent use: a request reads the token
// once while another goroutine may Set or Clear it.
type TokenStore interface {
	// Set replaces any existing credential.
	Set(token string)

	// Clear removes the credential. Subsequent requests carry no auth header.
	Clear()

	// Has returns true iff a non-empty credential is currently set.
	Has() bool

	// Token returns the current credential, or "" if none is set.
	Token() string

	// Expired returns true when the credential carries an expiry that is not
	// after now. Opaque tokens without a readable expiry never expire here.
	Expired(now time.Time) bool
}
