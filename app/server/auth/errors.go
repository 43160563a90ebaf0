package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrRegistrationFailed = errors.New("registration failed")

	// ErrTokenIssuance marks a login that passed the credential check but
	// could not produce a token. It is always joined with
	// ErrInvalidCredentials so callers answer it the same way.
	ErrTokenIssuance = errors.New("token issuance failed")
)
