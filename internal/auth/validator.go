package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

var defaultAlgorithms = []string{"RS256"}

type ValidatorConfig struct {
	Issuer     string
	Audience   string
	Algorithms []string
	Leeway     time.Duration
}

// IssuerFromDomain returns the issuer claim value expected for tokens minted
// by the given domain.
func IssuerFromDomain(domain string) string {
	return "https://" + strings.Trim(domain, "/") + "/"
}

// TokenValidator verifies bearer tokens against a remote key set.
type TokenValidator struct {
	keys       KeyProvider
	issuer     string
	audience   string
	algorithms []string
	leeway     time.Duration
}

func NewTokenValidator(keys KeyProvider, cfg ValidatorConfig) (*TokenValidator, error) {
	if keys == nil {
		return nil, errors.New("key provider is nil")
	}
	if cfg.Issuer == "" {
		return nil, errors.New("issuer is empty")
	}
	if cfg.Audience == "" {
		return nil, errors.New("audience is empty")
	}

	algorithms := cfg.Algorithms
	if len(algorithms) == 0 {
		algorithms = defaultAlgorithms
	}

	return &TokenValidator{
		keys:       keys,
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		algorithms: algorithms,
		leeway:     cfg.Leeway,
	}, nil
}

// Validate checks the Authorization header value and returns the decoded
// claims. Every failure is an *Error.
func (v *TokenValidator) Validate(ctx context.Context, authHeader string) (jwt.MapClaims, error) {
	token, err := bearerToken(authHeader)
	if err != nil {
		return nil, err
	}

	unverified, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, newError(CodeInvalidHeader, http.StatusBadRequest, "Unable to parse authentication token.", err)
	}
	kid, _ := unverified.Header["kid"].(string)
	if kid == "" {
		return nil, newError(CodeInvalidHeader, http.StatusUnauthorized, "Authorization malformed.", nil)
	}

	keys, err := v.keys.Keys(ctx)
	if err != nil {
		return nil, newError(CodeJWKSUnavailable, http.StatusUnauthorized, "Unable to fetch signing keys.", err)
	}
	if _, err := keys.KeyRead(ctx, kid); err != nil {
		return nil, newError(CodeInvalidHeader, http.StatusUnauthorized, "Unable to find the appropriate key.", err)
	}

	kf, err := keyfunc.New(keyfunc.Options{Ctx: ctx, Storage: keys})
	if err != nil {
		return nil, newError(CodeInvalidHeader, http.StatusBadRequest, "Unable to parse authentication token.", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, kf.KeyfuncCtx(ctx), v.parserOptions()...); err != nil {
		return nil, classifyParseError(err)
	}

	return claims, nil
}

func (v *TokenValidator) Authenticate(ctx context.Context, authHeader string) (Principal, error) {
	claims, err := v.Validate(ctx, authHeader)
	if err != nil {
		return Principal{}, err
	}
	return newPrincipal(claims), nil
}

func (v *TokenValidator) parserOptions() []jwt.ParserOption {
	return []jwt.ParserOption{
		jwt.WithValidMethods(v.algorithms),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", newError(CodeHeaderMissing, http.StatusUnauthorized, "Authorization header is expected.", nil)
	}

	parts := strings.Split(header, " ")
	switch {
	case !strings.EqualFold(parts[0], "bearer"):
		return "", newError(CodeInvalidHeader, http.StatusUnauthorized, `Authorization header must start with "Bearer".`, nil)
	case len(parts) == 1 || parts[1] == "":
		return "", newError(CodeInvalidHeader, http.StatusUnauthorized, "Token not found.", nil)
	case len(parts) > 2:
		return "", newError(CodeInvalidHeader, http.StatusUnauthorized, "Authorization header must be bearer token.", nil)
	}

	return parts[1], nil
}

func classifyParseError(err error) *Error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return newError(CodeTokenExpired, http.StatusUnauthorized, "Token expired.", err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing),
		errors.Is(err, jwt.ErrTokenNotValidYet),
		errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return newError(CodeInvalidClaims, http.StatusUnauthorized, "Incorrect claims. Please, check the audience and issuer.", err)
	default:
		return newError(CodeInvalidHeader, http.StatusBadRequest, "Unable to parse authentication token.", fmt.Errorf("verify token: %w", err))
	}
}
