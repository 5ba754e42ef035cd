package auth

import "errors"

var (
	// ErrMissingCredential means the request carried no Authorization header.
	ErrMissingCredential = errors.New("missing credential")
	// ErrInvalidCredential covers malformed, badly signed, expired and
	// revoked tokens.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrForbidden means the caller is known but not permitted.
	ErrForbidden = errors.New("forbidden")
)
