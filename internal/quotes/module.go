// Package quotes provides the quotes (orçamentos) bounded context module:
// quote headers, the line item ledger, and aggregate totals.
package quotes

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "usinagem_backend/internal/http"
	"usinagem_backend/internal/quotes/handler"
	"usinagem_backend/internal/quotes/repository"
	"usinagem_backend/internal/quotes/service"
	"usinagem_backend/platform/logger"
	"usinagem_backend/platform/validator"
)

// Module is the quotes bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the quotes module with all its
// dependencies. The resolver comes from the contracts context via an adapter.
func NewModule(pool *pgxpool.Pool, resolver service.PriceResolver, val *validator.Validator, log *logger.Logger, defaultCurrency string) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, resolver, log, defaultCurrency)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "quotes"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts quote routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/quotes")
	group.GET("", m.handler.List)
	group.POST("", m.handler.Create)
	group.GET("/:id", m.handler.GetByID)
	group.PATCH("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)

	group.GET("/:id/items", m.handler.ListItems)
	group.POST("/:id/items", m.handler.AddItem)
	group.GET("/:id/items/:itemId", m.handler.GetItem)
	group.PATCH("/:id/items/:itemId", m.handler.UpdateItem)
	group.DELETE("/:id/items/:itemId", m.handler.RemoveItem)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
