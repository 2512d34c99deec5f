package http

import (
	"context"
	"net/http"
	"net/netip"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id assigned by the request ID middleware.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}

// requestID reuses a well-formed incoming X-Request-ID or mints a new one.
func (a *API) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}

func (a *API) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		a.Metrics.observe(route, m.Code, m.Duration)
		a.Logger.DebugContext(r.Context(), "request served",
			"route", route,
			"status", m.Code,
			"duration", m.Duration,
			"bytes", m.Written,
		)
	})
}

// internalOnly rejects clients outside the configured internal networks.
// Without a configured set every client is allowed.
func (a *API) internalOnly(next http.Handler) http.Handler {
	if a.internal == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addrPort, err := netip.ParseAddrPort(r.RemoteAddr)
		if err != nil || !a.internal.Contains(addrPort.Addr().Unmap()) {
			a.Logger.InfoContext(r.Context(), "internal endpoint denied", "remote", r.RemoteAddr, "path", r.URL.Path)
			a.writeError(w, r, http.StatusForbidden, msgForbidden, "")
			return
		}
		next.ServeHTTP(w, r)
	})
}
