package auth

import "errors"

// Access token failures. The auth middleware turns all of these into 401.
var (
	ErrMissingToken     = errors.New("authentication token is missing")
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrExpiredToken     = errors.New("authentication token has expired")
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrWrongTokenType means an access token was presented where a refresh
	// token belongs, or the reverse.
	ErrWrongTokenType = errors.New("wrong token type")
)

// Refresh token failures returned by ValidateRefreshToken.
var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrExpiredRefreshToken = errors.New("refresh token has expired")
)

// ErrWeakSecret is returned by NewJWTService when the signing secret is
// shorter than MinSecretLength.
var ErrWeakSecret = errors.New("jwt secret must be at least 32 characters")
