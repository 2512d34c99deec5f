package auth

import (
	"net/http"
)

// HandlerFunc is a handler that runs after the caller has been authorized.
// Route parameters remain available on r.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, principal Principal)

// ErrorHandler answers a request the guard rejected.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Guard gates handlers behind a valid token carrying a required permission.
type Guard struct {
	authenticator Authenticator
	onError       ErrorHandler
}

func NewGuard(authenticator Authenticator, onError ErrorHandler) *Guard {
	if onError == nil {
		onError = plainErrorHandler
	}
	return &Guard{
		authenticator: authenticator,
		onError:       onError,
	}
}

func (g *Guard) Require(permission string, next HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := g.authenticator.Authenticate(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			g.onError(w, r, err)
			return
		}

		if err := CheckPermission(permission, principal.Claims); err != nil {
			g.onError(w, r, err)
			return
		}

		next(w, r.WithContext(WithPrincipal(r.Context(), principal)), principal)
	})
}

func plainErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	authErr := AsError(err)
	http.Error(w, authErr.Code, authErr.Status)
}
