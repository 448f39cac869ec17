package handler

import (
	"context"
	"net/http"

	"machikado_backend/internal/discovery/service"
	"machikado_backend/internal/discovery/transport"
	"machikado_backend/internal/places/client"
	"machikado_backend/platform/httpkit"
	"machikado_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// CenterResolver resolves the search center for a user: the coordinate of
// their selected delivery address, or the fixed default when none is set.
type CenterResolver interface {
	ResolveSearchCenter(ctx context.Context, userID uuid.UUID) (client.Coordinate, error)
}

// Handler exposes the discovery endpoints.
type Handler struct {
	svc      *service.Service
	resolver CenterResolver
	val      *validator.Validator
}

// New creates the discovery handler.
func New(svc *service.Service, resolver CenterResolver, val *validator.Validator) *Handler {
	return &Handler{svc: svc, resolver: resolver, val: val}
}

// Home returns the composed landing-page view: nearby restaurants plus the
// specialty section, fetched concurrently.
func (h *Handler) Home(c *gin.Context) {
	center, ok := h.searchCenter(c)
	if !ok {
		return
	}

	view, err := h.svc.Home(c.Request.Context(), center)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Data(c, view)
}

// Nearby returns restaurants of the broad cuisine set around the user.
func (h *Handler) Nearby(c *gin.Context) {
	center, ok := h.searchCenter(c)
	if !ok {
		return
	}

	restaurants, err := h.svc.NearbyRestaurants(c.Request.Context(), center)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Data(c, restaurants)
}

// Specialty returns nearby ramen restaurants ranked by distance.
func (h *Handler) Specialty(c *gin.Context) {
	center, ok := h.searchCenter(c)
	if !ok {
		return
	}

	restaurants, err := h.svc.NearbySpecialty(c.Request.Context(), center)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Data(c, restaurants)
}

// Search returns restaurants matching a free-text query.
func (h *Handler) Search(c *gin.Context) {
	var query transport.KeywordQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	center, ok := h.searchCenter(c)
	if !ok {
		return
	}

	restaurants, err := h.svc.ByKeyword(c.Request.Context(), query.Query, center)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Data(c, restaurants)
}

// Category returns restaurants of a single primary type around the user.
func (h *Handler) Category(c *gin.Context) {
	category := c.Param("category")

	center, ok := h.searchCenter(c)
	if !ok {
		return
	}

	restaurants, err := h.svc.ByCategory(c.Request.Context(), category, center)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Data(c, restaurants)
}

// Autocomplete returns restaurant search predictions. Both input and
// sessionToken are required; validation failures return 400 before any
// outbound call is made.
func (h *Handler) Autocomplete(c *gin.Context) {
	var query transport.AutocompleteQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	center, ok := h.searchCenter(c)
	if !ok {
		return
	}

	suggestions, err := h.svc.Autocomplete(c.Request.Context(), query.Input, query.SessionToken, center)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, suggestions)
}

// searchCenter resolves the caller's search center. A missing selected
// address is a normal state (the default coordinate comes back); a
// persistence failure aborts the request.
func (h *Handler) searchCenter(c *gin.Context) (client.Coordinate, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return client.Coordinate{}, false
	}

	center, err := h.resolver.ResolveSearchCenter(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return client.Coordinate{}, false
	}
	return center, true
}
