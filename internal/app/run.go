package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/Flarenzy/coffee-shop/internal/auth"
	appdb "github.com/Flarenzy/coffee-shop/internal/db"
	"github.com/Flarenzy/coffee-shop/internal/domain"
	apihttp "github.com/Flarenzy/coffee-shop/internal/http"
)

func newAuthenticator(cfg AuthConfig) (*auth.TokenValidator, error) {
	issuer := cfg.Issuer
	if issuer == "" && cfg.Domain != "" {
		issuer = auth.IssuerFromDomain(cfg.Domain)
	}
	jwksURL := cfg.JWKSURL
	if jwksURL == "" && cfg.Domain != "" {
		jwksURL = auth.JWKSURLFromDomain(cfg.Domain)
	}
	if issuer == "" || jwksURL == "" {
		return nil, errors.New("auth domain or explicit issuer and jwks url are required")
	}

	timeout := cfg.JWKSTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	fetcher := auth.NewHTTPKeyProvider(jwksURL, &http.Client{Timeout: timeout})
	keys := auth.NewCachingKeyProvider(fetcher, cfg.JWKSCacheTTL)

	return auth.NewTokenValidator(keys, auth.ValidatorConfig{
		Issuer:     issuer,
		Audience:   cfg.Audience,
		Algorithms: cfg.Algorithms,
		Leeway:     cfg.Leeway,
	})
}

// Run listens on the configured port and serves until ctx is done. The
// listener is closed when Run returns, including on startup failures.
func Run(ctx context.Context, cfg Config) error {
	listener, err := net.Listen("tcp", cfg.Server.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Server.Addr(), err)
	}
	defer listener.Close()

	return Serve(ctx, cfg, listener)
}

// Serve wires the application and serves on listener until ctx is done. The
// listener is left open if startup fails before serving begins.
func Serve(ctx context.Context, cfg Config, listener net.Listener) error {
	logger, err := newLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}

	authenticator, err := newAuthenticator(cfg.Auth)
	if err != nil {
		return fmt.Errorf("configure auth: %w", err)
	}

	internal, err := apihttp.ParseInternalNetworks(cfg.HTTP.InternalCIDRs)
	if err != nil {
		return err
	}

	pool, err := appdb.NewPool(ctx, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := appdb.Migrate(ctx, pool); err != nil {
		return err
	}

	drinks := domain.NewLoggingDrinkService(logger, domain.NewDrinkService(appdb.NewDrinkRepository(pool)))
	api := apihttp.NewAPI(logger, pool, drinks, authenticator,
		apihttp.WithAllowedOrigins(cfg.CORS.AllowedOrigins),
		apihttp.WithInternalNetworks(internal),
	)

	server := &http.Server{
		Handler:      api.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving", "addr", listener.Addr().String(), "audience", cfg.Auth.Audience)
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// Seed prepares the schema and inserts the sample drink. With reset the
// drinks table is dropped first.
func Seed(ctx context.Context, cfg Config, reset bool) error {
	pool, err := appdb.NewPool(ctx, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if reset {
		return appdb.Reset(ctx, pool)
	}
	if err := appdb.Migrate(ctx, pool); err != nil {
		return err
	}
	return appdb.Seed(ctx, pool)
}
