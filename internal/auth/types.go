package auth

import (
	"context"
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authenticated caller. Claims is the decoded token payload,
// passed through untouched.
type Principal struct {
	Issuer      string
	Subject     string
	Audience    any
	Permissions []string
	Claims      jwt.MapClaims
}

func (p Principal) HasPermission(permission string) bool {
	return slices.Contains(p.Permissions, permission)
}

func newPrincipal(claims jwt.MapClaims) Principal {
	permissions, _ := permissionsClaim(claims)
	return Principal{
		Issuer:      stringClaim(claims, "iss"),
		Subject:     stringClaim(claims, "sub"),
		Audience:    claims["aud"],
		Permissions: permissions,
		Claims:      claims,
	}
}

func stringClaim(claims jwt.MapClaims, key string) string {
	value, ok := claims[key].(string)
	if !ok {
		return ""
	}
	return value
}

type principalContextKey struct{}

func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(Principal)
	return principal, ok
}
