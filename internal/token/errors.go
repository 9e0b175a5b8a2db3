package token

import "errors"

var (
	// ErrMissingSecret indicates the issuer was constructed without a signing secret.
	ErrMissingSecret = errors.New("token: missing signing secret")

	// ErrInvalidToken indicates the token failed signature, issuer, audience,
	// or expiry validation.
	ErrInvalidToken = errors.New("token: invalid token")
)
