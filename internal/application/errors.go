package application

import "errors"

var (
	// ErrMissingCredentials is returned by Login when username or password is blank.
	ErrMissingCredentials = errors.New("username and password are required")

	// ErrLoginRejected is returned when the server answered without a usable session.
	ErrLoginRejected = errors.New("login rejected")

	// ErrReauthRequired means there is no usable credential: none was set, it
	// expired, or the server answered 401/403. The token store has been cleared
	// and the caller should send the user back to login.
	ErrReauthRequired = errors.New("re-authentication required")
)

// ErrInvalidCustomer is returned when a customer operation has no Oid.
var ErrInvalidCustomer = errors.New("invalid customer id")
