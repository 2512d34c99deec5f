package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MicahParks/jwkset"
	"golang.org/x/sync/singleflight"
)

const maxJWKSBytes = 1 << 20

// KeyProvider supplies the signing keys used to verify tokens.
type KeyProvider interface {
	Keys(ctx context.Context) (jwkset.Storage, error)
}

// JWKSURLFromDomain returns the well-known key set location of an issuer domain.
func JWKSURLFromDomain(domain string) string {
	return "https://" + strings.Trim(domain, "/") + "/.well-known/jwks.json"
}

// HTTPKeyProvider downloads the key set on every call. Nothing is retained
// between calls.
type HTTPKeyProvider struct {
	url    string
	client *http.Client
}

func NewHTTPKeyProvider(jwksURL string, client *http.Client) *HTTPKeyProvider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPKeyProvider{
		url:    jwksURL,
		client: client,
	}
}

func (p *HTTPKeyProvider) URL() string {
	return p.url
}

func (p *HTTPKeyProvider) Keys(ctx context.Context) (jwkset.Storage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, &KeyFetchError{URL: p.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &KeyFetchError{URL: p.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxJWKSBytes))
		return nil, &KeyFetchError{URL: p.url, Err: fmt.Errorf("jwks endpoint returned %d", resp.StatusCode)}
	}

	var raw jwkset.JWKSMarshal
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJWKSBytes)).Decode(&raw); err != nil {
		return nil, &KeyFetchError{URL: p.url, Err: fmt.Errorf("decode jwks: %w", err)}
	}

	// Keys this library cannot represent are skipped; a token naming one fails
	// the kid lookup instead of the whole set.
	usable := make([]jwkset.JWK, 0, len(raw.Keys))
	for _, marshal := range raw.Keys {
		jwk, err := jwkset.NewJWKFromMarshal(marshal, jwkset.JWKMarshalOptions{}, jwkset.JWKValidateOptions{})
		switch {
		case errors.Is(err, jwkset.ErrUnsupportedKey):
			continue
		case err != nil:
			return nil, &KeyFetchError{URL: p.url, Err: fmt.Errorf("parse jwk %q: %w", marshal.KID, err)}
		}
		usable = append(usable, jwk)
	}

	keys := jwkset.NewMemoryStorage()
	if err := keys.KeyReplaceAll(ctx, usable); err != nil {
		return nil, &KeyFetchError{URL: p.url, Err: fmt.Errorf("store jwks: %w", err)}
	}
	return keys, nil
}

// CachingKeyProvider keeps the last successfully fetched key set for ttl.
// The cached storage is replaced wholesale and never written to after it is
// published, so readers only need the read lock to grab the pointer.
type CachingKeyProvider struct {
	next  KeyProvider
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu      sync.RWMutex
	keys    jwkset.Storage
	expires time.Time
}

// NewCachingKeyProvider wraps next with a time-bounded cache. A non-positive
// ttl disables caching and returns next unchanged.
func NewCachingKeyProvider(next KeyProvider, ttl time.Duration) KeyProvider {
	if ttl <= 0 {
		return next
	}
	return &CachingKeyProvider{
		next: next,
		ttl:  ttl,
		now:  time.Now,
	}
}

func (c *CachingKeyProvider) Keys(ctx context.Context) (jwkset.Storage, error) {
	c.mu.RLock()
	keys, expires := c.keys, c.expires
	c.mu.RUnlock()
	if keys != nil && c.now().Before(expires) {
		return keys, nil
	}

	// The shared fetch outlives any single caller; each caller still stops
	// waiting as soon as its own context is done.
	ch := c.group.DoChan("jwks", func() (any, error) {
		c.mu.RLock()
		keys, expires := c.keys, c.expires
		c.mu.RUnlock()
		if keys != nil && c.now().Before(expires) {
			return keys, nil
		}

		fresh, err := c.next.Keys(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.keys = fresh
		c.expires = c.now().Add(c.ttl)
		c.mu.Unlock()
		return fresh, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("wait for jwks refresh: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(jwkset.Storage), nil
	}
}

// Invalidate drops the cached key set so the next call fetches again.
func (c *CachingKeyProvider) Invalidate() {
	c.mu.Lock()
	c.keys = nil
	c.expires = time.Time{}
	c.mu.Unlock()
}
