// Package catalog provides the shared resource catalog module: units of
// measure, machines, materials, and service types referenced by contracts
// and quotes.
package catalog

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"usinagem_backend/internal/catalog/handler"
	"usinagem_backend/internal/catalog/repository"
	"usinagem_backend/internal/catalog/service"
	apphttp "usinagem_backend/internal/http"
	"usinagem_backend/platform/logger"
	"usinagem_backend/platform/validator"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module with all its dependencies.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	units := ctx.Protected.Group("/units")
	units.GET("", m.handler.ListUnits)
	units.POST("", m.handler.CreateUnit)
	units.GET("/:id", m.handler.GetUnit)
	units.PATCH("/:id", m.handler.UpdateUnit)
	units.DELETE("/:id", m.handler.DeleteUnit)

	machines := ctx.Protected.Group("/machines")
	machines.GET("", m.handler.ListMachines)
	machines.POST("", m.handler.CreateMachine)
	machines.GET("/:id", m.handler.GetMachine)
	machines.PATCH("/:id", m.handler.UpdateMachine)
	machines.DELETE("/:id", m.handler.DeleteMachine)

	materials := ctx.Protected.Group("/materials")
	materials.GET("", m.handler.ListMaterials)
	materials.POST("", m.handler.CreateMaterial)
	materials.GET("/:id", m.handler.GetMaterial)
	materials.PATCH("/:id", m.handler.UpdateMaterial)
	materials.DELETE("/:id", m.handler.DeleteMaterial)

	serviceTypes := ctx.Protected.Group("/service-types")
	serviceTypes.GET("", m.handler.ListServiceTypes)
	serviceTypes.POST("", m.handler.CreateServiceType)
	serviceTypes.GET("/:id", m.handler.GetServiceType)
	serviceTypes.PATCH("/:id", m.handler.UpdateServiceType)
	serviceTypes.DELETE("/:id", m.handler.DeleteServiceType)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
