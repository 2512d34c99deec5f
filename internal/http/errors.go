package http

import (
	"errors"
	"net/http"

	"github.com/Flarenzy/coffee-shop/internal/auth"
	"github.com/Flarenzy/coffee-shop/internal/domain"
)

const (
	msgBadRequest       = "bad request"
	msgForbidden        = "forbidden"
	msgNotFound         = "resource not found"
	msgUnprocessable    = "unprocessable"
	msgInternal         = "internal server error"
	msgServiceUnhealthy = "service unavailable"
)

// writeError answers with the error envelope shared by every endpoint.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, status int, message string, description string) {
	err := encode(w, r, status, ErrorResponse{
		Success:     false,
		Error:       status,
		Message:     message,
		Description: description,
	})
	if err != nil {
		a.Logger.ErrorContext(r.Context(), "responding to client", "err", err.Error())
	}
}

func (a *API) renderAuthError(w http.ResponseWriter, r *http.Request, err error) {
	authErr := auth.AsError(err)

	attrs := []any{"code", authErr.Code, "status", authErr.Status, "path", r.URL.Path}
	if authErr.Err != nil {
		attrs = append(attrs, "err", authErr.Err.Error())
	}
	if authErr.Code == auth.CodeJWKSUnavailable {
		a.Logger.ErrorContext(r.Context(), "signing keys unavailable", attrs...)
	} else {
		a.Logger.InfoContext(r.Context(), "request rejected", attrs...)
	}
	a.Metrics.authFailures.WithLabelValues(authErr.Code).Inc()

	a.writeError(w, r, authErr.Status, authErr.Code, authErr.Description)
}

// renderDomainError maps service errors onto statuses. Invalid input and
// conflicts are both unprocessable.
func (a *API) renderDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.writeError(w, r, http.StatusNotFound, msgNotFound, "")
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrConflict):
		a.writeError(w, r, http.StatusUnprocessableEntity, msgUnprocessable, err.Error())
	default:
		a.Logger.ErrorContext(r.Context(), "unexpected service error", "err", err.Error())
		a.writeError(w, r, http.StatusInternalServerError, msgInternal, "")
	}
}
