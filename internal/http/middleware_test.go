package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestIDIsAssignedAndReused(t *testing.T) {
	api := newHandlerTestAPI(stubService{}, nil, allow())

	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if _, err := uuid.Parse(rec.Header().Get("X-Request-ID")); err != nil {
		t.Fatalf("expected generated uuid, got %q", rec.Header().Get("X-Request-ID"))
	}

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", incoming)
	rec = httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") != incoming {
		t.Fatalf("expected incoming id %q to be reused, got %q", incoming, rec.Header().Get("X-Request-ID"))
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "not a uuid\n")
	rec = httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") == "not a uuid\n" {
		t.Fatal("malformed request ids must be replaced")
	}
}

func TestInternalEndpointsHonorAllowlist(t *testing.T) {
	set, err := ParseInternalNetworks([]string{"10.0.0.0/8", "127.0.0.1"})
	if err != nil {
		t.Fatalf("parse networks: %v", err)
	}
	api := newHandlerTestAPI(stubService{}, nil, allow(), WithInternalNetworks(set))
	router := api.Router()

	tests := []struct {
		remote string
		status int
	}{
		{remote: "10.1.2.3:40000", status: http.StatusOK},
		{remote: "127.0.0.1:40000", status: http.StatusOK},
		{remote: "192.0.2.1:40000", status: http.StatusForbidden},
		{remote: "garbage", status: http.StatusForbidden},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		req.RemoteAddr = tt.remote
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != tt.status {
			t.Fatalf("remote %s: expected %d, got %d", tt.remote, tt.status, rec.Code)
		}
	}
}

func TestMetricsEndpointOpenWithoutAllowlist(t *testing.T) {
	api := newHandlerTestAPI(stubService{}, nil, allow())
	router := api.Router()

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `coffeeshop_http_requests_total{code="200",route="GET /healthz"} 1`) {
		t.Fatalf("expected request counter in exposition, got:\n%s", rec.Body.String())
	}
}

func TestInstrumentCountsByRoutePattern(t *testing.T) {
	api := newHandlerTestAPI(stubService{}, nil, allow("delete:drinks"))
	router := api.Router()

	for _, id := range []string{"1", "2"} {
		req := httptest.NewRequest(http.MethodDelete, "/drinks/"+id, nil)
		req.Header.Set("Authorization", "Bearer test")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := testutil.ToFloat64(api.Metrics.requests.WithLabelValues("DELETE /drinks/{id}", "200"))
	if got != 2 {
		t.Fatalf("expected 2 requests recorded under the route pattern, got %v", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	api := newHandlerTestAPI(stubService{}, nil, allow(), WithAllowedOrigins([]string{"http://localhost:8100"}))

	req := httptest.NewRequest(http.MethodOptions, "/drinks", nil)
	req.Header.Set("Origin", "http://localhost:8100")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:8100" {
		t.Fatalf("unexpected allow origin %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPatch) {
		t.Fatalf("unexpected allow methods %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/drinks", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow origin for foreign site %q", got)
	}
}

func TestParseInternalNetworks(t *testing.T) {
	set, err := ParseInternalNetworks(nil)
	if err != nil || set != nil {
		t.Fatalf("expected nil set for empty input, got %v, %v", set, err)
	}

	set, err = ParseInternalNetworks([]string{" ", ""})
	if err != nil || set != nil {
		t.Fatalf("expected nil set for blank input, got %v, %v", set, err)
	}

	if _, err := ParseInternalNetworks([]string{"10.0.0.0/33"}); err == nil {
		t.Fatal("expected error for invalid prefix")
	}
	if _, err := ParseInternalNetworks([]string{"not-an-ip"}); err == nil {
		t.Fatal("expected error for invalid address")
	}
}
