package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Flarenzy/coffee-shop/internal/auth"
	"github.com/Flarenzy/coffee-shop/internal/domain"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go4.org/netipx"
)

// HealthChecker reports whether a dependency can serve traffic.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type API struct {
	Logger  *slog.Logger
	Health  HealthChecker
	Drinks  domain.DrinkService
	Metrics *Metrics

	guard          *auth.Guard
	allowedOrigins []string
	internal       *netipx.IPSet
}

type Option func(*API)

// WithAllowedOrigins sets the CORS origins. Without it every origin is allowed.
func WithAllowedOrigins(origins []string) Option {
	return func(a *API) {
		a.allowedOrigins = origins
	}
}

// WithInternalNetworks restricts /metrics and /swagger/ to clients in set.
func WithInternalNetworks(set *netipx.IPSet) Option {
	return func(a *API) {
		a.internal = set
	}
}

func WithMetrics(m *Metrics) Option {
	return func(a *API) {
		a.Metrics = m
	}
}

func NewAPI(logger *slog.Logger, health HealthChecker, drinks domain.DrinkService, authenticator auth.Authenticator, opts ...Option) *API {
	a := &API{
		Logger: logger,
		Health: health,
		Drinks: drinks,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.Metrics == nil {
		a.Metrics = NewMetrics()
	}
	a.guard = auth.NewGuard(authenticator, a.renderAuthError)
	return a
}

func (a *API) Router() http.Handler {
	mux := http.NewServeMux()

	a.handle(mux, "GET /healthz", http.HandlerFunc(a.handleHealthz))
	a.handle(mux, "GET /readyz", http.HandlerFunc(a.handleReadyz))
	a.handle(mux, "GET /metrics", a.internalOnly(a.Metrics.Handler()))
	a.handle(mux, "GET /swagger/", a.internalOnly(httpSwagger.WrapHandler))

	a.handle(mux, "GET /drinks", a.guard.Require("get:drinks", a.handleListDrinks))
	a.handle(mux, "GET /drinks-detail", a.guard.Require("get:drinks-detail", a.handleListDrinkDetails))
	a.handle(mux, "POST /drinks", a.guard.Require("post:drinks", a.handleCreateDrink))
	a.handle(mux, "PATCH /drinks/{id}", a.guard.Require("patch:drinks", a.handleUpdateDrink))
	a.handle(mux, "DELETE /drinks/{id}", a.guard.Require("delete:drinks", a.handleDeleteDrink))

	mux.HandleFunc("/", a.handleNotFound)

	var handler http.Handler = mux
	handler = cors.Handler(a.corsOptions())(handler)
	handler = a.requestID(handler)
	return handler
}

func (a *API) handle(mux *http.ServeMux, pattern string, h http.Handler) {
	mux.Handle(pattern, a.instrument(pattern, h))
}

func (a *API) corsOptions() cors.Options {
	origins := a.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}
}
