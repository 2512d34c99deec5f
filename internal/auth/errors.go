package auth

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes reported to clients. They are part of the HTTP contract and
// must not change.
const (
	CodeHeaderMissing   = "authorization_header_missing"
	CodeInvalidHeader   = "invalid_header"
	CodeTokenExpired    = "token_expired"
	CodeInvalidClaims   = "invalid_claims"
	CodeUnauthorized    = "unauthorized"
	CodeJWKSUnavailable = "jwks_unavailable"
)

// Error is the single failure type produced by the guard. Status is the HTTP
// status the caller should answer with.
type Error struct {
	Code        string
	Description string
	Status      int
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Description, e.Err)
	}
	return e.Code + ": " + e.Description
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code string, status int, description string, cause error) *Error {
	return &Error{
		Code:        code,
		Description: description,
		Status:      status,
		Err:         cause,
	}
}

// AsError extracts an *Error from err. Errors that did not originate in this
// package are reported as a generic 401 so callers never leak a 500 for an
// authentication failure.
func AsError(err error) *Error {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr
	}
	return newError(CodeInvalidHeader, http.StatusUnauthorized, "Unable to authenticate request.", err)
}

// KeyFetchError reports a failure to retrieve or parse the remote key set.
type KeyFetchError struct {
	URL string
	Err error
}

func (e *KeyFetchError) Error() string {
	return fmt.Sprintf("fetch jwks from %s: %v", e.URL, e.Err)
}

func (e *KeyFetchError) Unwrap() error {
	return e.Err
}
