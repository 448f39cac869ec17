// Package addresses provides the address book bounded context: saved
// delivery addresses, place autocomplete for adding new ones, and the
// selected search center the discovery endpoints resolve against.
package addresses

import (
	"machikado_backend/internal/addresses/handler"
	"machikado_backend/internal/addresses/repository"
	"machikado_backend/internal/addresses/service"
	apphttp "machikado_backend/internal/http"
	"machikado_backend/platform/config"
	"machikado_backend/platform/logger"
	"machikado_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the addresses bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the addresses module.
func NewModule(pool *pgxpool.Pool, gateway service.Gateway, cfg config.LocationConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, gateway, cfg, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "addresses"
}

// Service returns the service layer for external use. The discovery module
// uses it to resolve the search center.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts address routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/addresses")
	group.GET("", m.handler.List)
	group.GET("/autocomplete", m.handler.Autocomplete)
	group.POST("", m.handler.Create)
	group.PUT("/:id/select", m.handler.Select)
	group.DELETE("/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
