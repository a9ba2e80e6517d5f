// Package contracts provides the contracts bounded context module: client
// pricing agreements, their machine-hour and material overrides, and the
// price resolver consulted when quote items are priced.
package contracts

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"usinagem_backend/internal/contracts/handler"
	"usinagem_backend/internal/contracts/repository"
	"usinagem_backend/internal/contracts/service"
	apphttp "usinagem_backend/internal/http"
	"usinagem_backend/platform/logger"
	"usinagem_backend/platform/validator"
)

// Module is the contracts bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the contracts module with all its dependencies.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger, defaultCurrency string) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log, defaultCurrency)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "contracts"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts contract routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/contracts")
	group.GET("", m.handler.List)
	group.POST("", m.handler.Create)
	group.GET("/:id", m.handler.GetByID)
	group.PATCH("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)

	group.GET("/:id/hour-prices", m.handler.ListHourPrices)
	group.POST("/:id/hour-prices", m.handler.CreateHourPrice)
	group.PATCH("/:id/hour-prices/:priceId", m.handler.UpdateHourPrice)
	group.DELETE("/:id/hour-prices/:priceId", m.handler.DeleteHourPrice)

	group.GET("/:id/material-prices", m.handler.ListMaterialPrices)
	group.POST("/:id/material-prices", m.handler.CreateMaterialPrice)
	group.PATCH("/:id/material-prices/:priceId", m.handler.UpdateMaterialPrice)
	group.DELETE("/:id/material-prices/:priceId", m.handler.DeleteMaterialPrice)

	group.GET("/:id/prices/hh", m.handler.ResolveHourPrice)
	group.GET("/:id/prices/material", m.handler.ResolveMaterialPrice)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
