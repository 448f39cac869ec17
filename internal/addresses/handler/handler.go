package handler

import (
	"net/http"
	"strconv"

	"machikado_backend/internal/addresses/service"
	"machikado_backend/internal/addresses/transport"
	"machikado_backend/platform/httpkit"
	"machikado_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidAddressID = "invalid address id"
)

// Handler exposes the address book endpoints.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates the addresses handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List returns the user's saved addresses and current selection. The payload
// is flat, not data-wrapped: {addressList, selectedAddress}.
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	resp, err := h.svc.List(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// Autocomplete suggests places for the typed input. Input and sessionToken
// are required; lat and lng optionally recenter the bias circle.
func (h *Handler) Autocomplete(c *gin.Context) {
	var q transport.AutocompleteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	suggestions, err := h.svc.Autocomplete(c.Request.Context(), q)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Data(c, suggestions)
}

// Create saves a picked suggestion as a new address and selects it.
func (h *Handler) Create(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	address, err := h.svc.Create(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, httpkit.DataResponse{Data: address})
}

// Select makes an existing address the current selection.
func (h *Handler) Select(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	addressID, ok := h.addressID(c)
	if !ok {
		return
	}

	if err := h.svc.Select(c.Request.Context(), identity.UserID(), addressID); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes an address from the user's address book.
func (h *Handler) Delete(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	addressID, ok := h.addressID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), identity.UserID(), addressID); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) addressID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidAddressID, nil)
		return 0, false
	}
	return id, true
}
