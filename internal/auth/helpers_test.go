package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testDomain   = "coffee.example.auth0.com"
	testAudience = "coffee"
	testKID      = "signing-key-1"
)

type jwksServer struct {
	*httptest.Server
	hits atomic.Int32
}

func generateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

// newJWKSServer publishes the public halves of keys, indexed by kid.
func newJWKSServer(t *testing.T, keys map[string]*rsa.PrivateKey) *jwksServer {
	t.Helper()

	storage := jwkset.NewMemoryStorage()
	for kid, key := range keys {
		jwk, err := jwkset.NewJWKFromKey(&key.PublicKey, jwkset.JWKOptions{
			Metadata: jwkset.JWKMetadataOptions{
				ALG: jwkset.AlgRS256,
				KID: kid,
				USE: jwkset.UseSig,
			},
		})
		require.NoError(t, err)
		require.NoError(t, storage.KeyWrite(context.Background(), jwk))
	}

	body, err := storage.JSONPublic(context.Background())
	require.NoError(t, err)

	srv := &jwksServer{}
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv.hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newTestValidator(t *testing.T, keys KeyProvider) *TokenValidator {
	t.Helper()

	validator, err := NewTokenValidator(keys, ValidatorConfig{
		Issuer:   IssuerFromDomain(testDomain),
		Audience: testAudience,
	})
	require.NoError(t, err)
	return validator
}

func validClaims(permissions ...string) jwt.MapClaims {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": IssuerFromDomain(testDomain),
		"sub": "auth0|barista",
		"aud": testAudience,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
	if permissions != nil {
		claims["permissions"] = permissions
	}
	return claims
}

func signRS256(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

// decoded mirrors what a JSON round trip does to claims: numbers become
// float64 and slices become []any.
func decoded(t *testing.T, claims jwt.MapClaims) jwt.MapClaims {
	t.Helper()

	raw, err := json.Marshal(claims)
	require.NoError(t, err)
	out := jwt.MapClaims{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func requireAuthError(t *testing.T, err error, code string, status int) *Error {
	t.Helper()

	require.Error(t, err)
	var authErr *Error
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, code, authErr.Code)
	require.Equal(t, status, authErr.Status)
	return authErr
}

type stubKeyProvider struct {
	calls atomic.Int32
	fn    func(context.Context) (jwkset.Storage, error)
}

func (s *stubKeyProvider) Keys(ctx context.Context) (jwkset.Storage, error) {
	s.calls.Add(1)
	if s.fn == nil {
		return jwkset.NewMemoryStorage(), nil
	}
	return s.fn(ctx)
}
