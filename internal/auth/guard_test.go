package auth

import (
	"context"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func principalWith(claims jwt.MapClaims) Authenticator {
	return AuthenticatorFunc(func(context.Context, string) (Principal, error) {
		return newPrincipal(claims), nil
	})
}

func recordingErrorHandler(got *error) ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		*got = err
		authErr := AsError(err)
		w.WriteHeader(authErr.Status)
	}
}

func TestGuardPassesPrincipalAndRouteParams(t *testing.T) {
	key := generateKey(t)
	srv := newJWKSServer(t, map[string]*rsa.PrivateKey{testKID: key})
	validator := newTestValidator(t, NewHTTPKeyProvider(srv.URL, nil))
	claims := validClaims("patch:drinks")
	token := signRS256(t, key, testKID, claims)

	var (
		gotID        string
		gotPrincipal Principal
		fromContext  Principal
	)
	guard := NewGuard(validator, nil)
	mux := http.NewServeMux()
	mux.Handle("PATCH /drinks/{id}", guard.Require("patch:drinks", func(w http.ResponseWriter, r *http.Request, p Principal) {
		gotID = r.PathValue("id")
		gotPrincipal = p
		fromContext, _ = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPatch, "/drinks/7", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", gotID)
	assert.Equal(t, decoded(t, claims), gotPrincipal.Claims)
	assert.Equal(t, gotPrincipal, fromContext)
}

func TestGuardRejectsBeforeCallingHandler(t *testing.T) {
	tests := []struct {
		name          string
		authenticator Authenticator
		code          string
		status        int
	}{
		{
			name: "authentication failure",
			authenticator: AuthenticatorFunc(func(context.Context, string) (Principal, error) {
				return Principal{}, newError(CodeTokenExpired, http.StatusUnauthorized, "Token expired.", nil)
			}),
			code:   CodeTokenExpired,
			status: http.StatusUnauthorized,
		},
		{
			name:          "permissions claim missing",
			authenticator: principalWith(jwt.MapClaims{"sub": "auth0|barista"}),
			code:          CodeInvalidClaims,
			status:        http.StatusBadRequest,
		},
		{
			name:          "permission not granted",
			authenticator: principalWith(jwt.MapClaims{"permissions": []any{"get:drinks"}}),
			code:          CodeUnauthorized,
			status:        http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotErr error
			called := false
			guard := NewGuard(tt.authenticator, recordingErrorHandler(&gotErr))
			handler := guard.Require("delete:drinks", func(http.ResponseWriter, *http.Request, Principal) {
				called = true
			})

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/drinks/1", nil))

			assert.False(t, called)
			assert.Equal(t, tt.status, rec.Code)
			requireAuthError(t, gotErr, tt.code, tt.status)
		})
	}
}

func TestGuardForwardsAuthorizationHeader(t *testing.T) {
	var seen string
	guard := NewGuard(AuthenticatorFunc(func(_ context.Context, header string) (Principal, error) {
		seen = header
		return newPrincipal(jwt.MapClaims{"permissions": []any{"get:drinks"}}), nil
	}), nil)

	req := httptest.NewRequest(http.MethodGet, "/drinks", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	guard.Require("get:drinks", func(w http.ResponseWriter, _ *http.Request, _ Principal) {
		w.WriteHeader(http.StatusNoContent)
	}).ServeHTTP(rec, req)

	assert.Equal(t, "Bearer abc", seen)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGuardDefaultErrorHandler(t *testing.T) {
	guard := NewGuard(principalWith(jwt.MapClaims{}), nil)

	rec := httptest.NewRecorder()
	guard.Require("get:drinks", func(http.ResponseWriter, *http.Request, Principal) {
		t.Fatal("handler must not run")
	}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/drinks", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), CodeInvalidClaims)
}
