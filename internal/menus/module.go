// Package menus provides the restaurant menu bounded context: menu rows
// stored in Postgres, grouped per category with a featured section and
// image URLs resolved through object storage.
package menus

import (
	"machikado_backend/internal/adapters/storage"
	apphttp "machikado_backend/internal/http"
	"machikado_backend/internal/menus/handler"
	"machikado_backend/internal/menus/repository"
	"machikado_backend/internal/menus/service"
	"machikado_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the menus bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the menus module.
func NewModule(pool *pgxpool.Pool, store storage.Service, bucket string, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, store, bucket, log)
	h := handler.New(svc)

	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "menus"
}

// RegisterRoutes mounts menu routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/menus")
	group.GET("/:genre", m.handler.ByGenre)
	group.POST("/:genre/images", m.handler.UploadImage)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
