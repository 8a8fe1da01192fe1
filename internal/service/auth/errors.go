package auth

import "errors"

// Authentication errors. The api package maps all of them to 401.
var (
	// ErrInvalidCredentials indicates the username is unknown or the password
	// does not match. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken covers malformed tokens, bad signatures and unexpected
	// signing methods.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken is returned once exp has passed (after leeway).
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid is returned while nbf is still in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken is returned when no bearer token was sent.
	ErrMissingToken = errors.New("authentication token is missing")
)
