// Package discovery provides the restaurant discovery bounded context:
// nearby and specialty restaurant search, keyword and category search, and
// restaurant autocomplete, all centered on the user's selected address.
package discovery

import (
	"machikado_backend/internal/discovery/handler"
	"machikado_backend/internal/discovery/service"
	apphttp "machikado_backend/internal/http"
	"machikado_backend/platform/logger"
	"machikado_backend/platform/validator"
)

// Module is the discovery bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the discovery module.
func NewModule(gateway service.Gateway, resolver handler.CenterResolver, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(gateway, log)
	h := handler.New(svc, resolver, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "discovery"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts discovery routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/restaurants")
	group.GET("/home", m.handler.Home)
	group.GET("/nearby", m.handler.Nearby)
	group.GET("/specialty", m.handler.Specialty)
	group.GET("/search", m.handler.Search)
	group.GET("/categories/:category", m.handler.Category)
	group.GET("/autocomplete", m.handler.Autocomplete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
