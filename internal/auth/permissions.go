package auth

import (
	"net/http"
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

const permissionsClaimName = "permissions"

// CheckPermission reports whether claims grant the required permission.
func CheckPermission(required string, claims jwt.MapClaims) error {
	granted, ok := permissionsClaim(claims)
	if !ok {
		return newError(CodeInvalidClaims, http.StatusBadRequest, "Permissions not included in JWT.", nil)
	}
	if !slices.Contains(granted, required) {
		return newError(CodeUnauthorized, http.StatusForbidden, "Permission not found.", nil)
	}
	return nil
}

// permissionsClaim reads the permissions claim. A claim that is present but
// not a list of strings is treated as absent.
func permissionsClaim(claims jwt.MapClaims) ([]string, bool) {
	raw, ok := claims[permissionsClaimName]
	if !ok {
		return nil, false
	}

	switch values := raw.(type) {
	case []string:
		return values, true
	case []any:
		out := make([]string, 0, len(values))
		for _, value := range values {
			permission, ok := value.(string)
			if !ok {
				return nil, false
			}
			out = append(out, permission)
		}
		return out, true
	default:
		return nil, false
	}
}
