package auth

import (
	"github.com/goliatone/go-errors"
)

// Text codes attached to auth failures. They are logged for diagnostics;
// external responses collapse token failures to a single unauthorized
// outcome and login failures to a single generic message.
const (
	TextCodeInvalidCredentials    = "INVALID_CREDENTIALS"
	TextCodePasswordRequired      = "PASSWORD_REQUIRED"
	TextCodeInvalidHashLength     = "INVALID_HASH_LENGTH"
	TextCodeInvalidSaltLength     = "INVALID_SALT_LENGTH"
	TextCodeUsernameTaken         = "USERNAME_TAKEN"
	TextCodeTokenMalformed        = "TOKEN_MALFORMED"
	TextCodeTokenSignatureInvalid = "TOKEN_SIGNATURE_INVALID"
	TextCodeTokenExpired          = "TOKEN_EXPIRED"
	TextCodeSubjectGone           = "SUBJECT_GONE"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords.
// The two cases are never distinguished so login cannot be used to probe
// which usernames exist.
var ErrInvalidCredentials = errors.New("incorrect username or password", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeBadRequest)

// ErrPasswordRequired rejects nil, empty, and whitespace-only passwords.
var ErrPasswordRequired = errors.New("password is required", errors.CategoryValidation).
	WithTextCode(TextCodePasswordRequired).
	WithCode(errors.CodeBadRequest)

// ErrTokenMalformed is returned when a token cannot be decoded at all.
var ErrTokenMalformed = errors.New("session token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrTokenSignatureInvalid is returned when the claims decode but the
// signature does not verify under the process key.
var ErrTokenSignatureInvalid = errors.New("session token signature is invalid", errors.CategoryAuth).
	WithTextCode(TextCodeTokenSignatureInvalid).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when the embedded expiry claim is at or past
// the validation instant.
var ErrTokenExpired = errors.New("session token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrSubjectGone is returned when a cryptographically valid token names a
// subject that no longer exists in the credential store.
var ErrSubjectGone = errors.New("token subject no longer exists", errors.CategoryAuth).
	WithTextCode(TextCodeSubjectGone).
	WithCode(errors.CodeUnauthorized)

// TextCode extracts the diagnostic text code from a rich error, or ""
// for plain errors.
func TextCode(err error) string {
	var rich *errors.Error
	if errors.As(err, &rich) {
		return rich.TextCode
	}
	return ""
}

// IsAuthFailure reports whether the error belongs to the authentication
// category, regardless of which gate step produced it.
func IsAuthFailure(err error) bool {
	var rich *errors.Error
	if errors.As(err, &rich) {
		return rich.Category == errors.CategoryAuth
	}
	return false
}

// IsTokenExpired checks for the expired-token failure.
func IsTokenExpired(err error) bool {
	return TextCode(err) == TextCodeTokenExpired
}

// IsSubjectGone checks for the existence-gate failure.
func IsSubjectGone(err error) bool {
	return TextCode(err) == TextCodeSubjectGone
}
