package auth

import "context"

// Authenticator turns the raw Authorization header value into a Principal.
type Authenticator interface {
	Authenticate(ctx context.Context, authHeader string) (Principal, error)
}

// AuthenticatorFunc adapts a plain function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, authHeader string) (Principal, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, authHeader string) (Principal, error) {
	return f(ctx, authHeader)
}
