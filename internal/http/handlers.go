package http

import (
	"net/http"
	"strconv"

	"github.com/Flarenzy/coffee-shop/internal/auth"
	"github.com/Flarenzy/coffee-shop/internal/domain"
)

// @Summary Health check
// @Tags health
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// @Summary Readiness check
// @Tags health
// @Success 200 {string} string "ready"
// @Failure 503 {object} ErrorResponse
// @Router /readyz [get]
func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := a.Health.Ping(ctx); err != nil {
		a.Logger.ErrorContext(ctx, "db ping failed", "err", err.Error())
		a.writeError(w, r, http.StatusServiceUnavailable, msgServiceUnhealthy, "database unavailable")
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// @Summary List drinks
// @Description Public menu view: each ingredient carries only color and parts.
// @Tags drinks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DrinksShortResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /drinks [get]
func (a *API) handleListDrinks(w http.ResponseWriter, r *http.Request, _ auth.Principal) {
	drinks, ok := a.listDrinks(w, r)
	if !ok {
		return
	}

	err := encode(w, r, http.StatusOK, DrinksShortResponse{Success: true, Drinks: drinksToShort(drinks)})
	if err != nil {
		a.Logger.ErrorContext(r.Context(), "responding to client with drink list", "err", err.Error())
	}
}

// @Summary List drinks with full recipes
// @Tags drinks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DrinksLongResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /drinks-detail [get]
func (a *API) handleListDrinkDetails(w http.ResponseWriter, r *http.Request, _ auth.Principal) {
	drinks, ok := a.listDrinks(w, r)
	if !ok {
		return
	}

	err := encode(w, r, http.StatusOK, DrinksLongResponse{Success: true, Drinks: drinksToLong(drinks)})
	if err != nil {
		a.Logger.ErrorContext(r.Context(), "responding to client with drink details", "err", err.Error())
	}
}

// listDrinks writes the error response itself. An empty menu is reported as
// not found.
func (a *API) listDrinks(w http.ResponseWriter, r *http.Request) ([]domain.Drink, bool) {
	drinks, err := a.Drinks.ListDrinks(r.Context())
	if err != nil {
		a.renderDomainError(w, r, err)
		return nil, false
	}
	if len(drinks) == 0 {
		a.writeError(w, r, http.StatusNotFound, msgNotFound, "no drinks on the menu")
		return nil, false
	}
	return drinks, true
}

// @Summary Create drink
// @Tags drinks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param drink body CreateDrinkRequest true "Drink payload"
// @Success 200 {object} DrinksLongResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /drinks [post]
func (a *API) handleCreateDrink(w http.ResponseWriter, r *http.Request, principal auth.Principal) {
	ctx := r.Context()
	req, err := decode[*CreateDrinkRequest](r)
	defer r.Body.Close()
	if err != nil || req == nil {
		if err != nil {
			a.Logger.DebugContext(ctx, "unmarshaling drink from request", "err", err.Error())
		}
		a.writeError(w, r, http.StatusBadRequest, msgBadRequest, "request body must be a drink object")
		return
	}

	drink, err := a.Drinks.CreateDrink(ctx, req.toInput())
	if err != nil {
		a.renderDomainError(w, r, err)
		return
	}
	a.Logger.DebugContext(ctx, "drink created by caller", "sub", principal.Subject, "id", drink.ID)

	err = encode(w, r, http.StatusOK, DrinksLongResponse{Success: true, Drinks: []DrinkLong{drinkToLong(drink)}})
	if err != nil {
		a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
	}
}

// @Summary Update drink
// @Tags drinks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drink ID"
// @Param drink body UpdateDrinkRequest true "Fields to change"
// @Success 200 {object} DrinksLongResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /drinks/{id} [patch]
func (a *API) handleUpdateDrink(w http.ResponseWriter, r *http.Request, _ auth.Principal) {
	ctx := r.Context()
	id, err := parseDrinkID(r)
	if err != nil {
		a.Logger.DebugContext(ctx, "invalid drink id", "id", r.PathValue("id"), "err", err.Error())
		a.writeError(w, r, http.StatusNotFound, msgNotFound, "")
		return
	}

	req, err := decode[*UpdateDrinkRequest](r)
	defer r.Body.Close()
	if err != nil || req == nil {
		if err != nil {
			a.Logger.DebugContext(ctx, "unmarshaling drink update from request", "err", err.Error())
		}
		a.writeError(w, r, http.StatusBadRequest, msgBadRequest, "request body must be a drink object")
		return
	}

	drink, err := a.Drinks.UpdateDrink(ctx, id, req.toInput())
	if err != nil {
		a.renderDomainError(w, r, err)
		return
	}

	err = encode(w, r, http.StatusOK, DrinksLongResponse{Success: true, Drinks: []DrinkLong{drinkToLong(drink)}})
	if err != nil {
		a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
	}
}

// @Summary Delete drink
// @Tags drinks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drink ID"
// @Success 200 {object} DeleteDrinkResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /drinks/{id} [delete]
func (a *API) handleDeleteDrink(w http.ResponseWriter, r *http.Request, _ auth.Principal) {
	ctx := r.Context()
	id, err := parseDrinkID(r)
	if err != nil {
		a.Logger.DebugContext(ctx, "invalid drink id", "id", r.PathValue("id"), "err", err.Error())
		a.writeError(w, r, http.StatusNotFound, msgNotFound, "")
		return
	}

	if err := a.Drinks.DeleteDrink(ctx, id); err != nil {
		a.renderDomainError(w, r, err)
		return
	}

	err = encode(w, r, http.StatusOK, DeleteDrinkResponse{Success: true, Delete: int64(id)})
	if err != nil {
		a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
	}
}

func (a *API) handleNotFound(w http.ResponseWriter, r *http.Request) {
	a.writeError(w, r, http.StatusNotFound, msgNotFound, "")
}

func parseDrinkID(r *http.Request) (domain.DrinkID, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return domain.DrinkID(id), nil
}
