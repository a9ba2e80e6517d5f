// Package clients provides the party registry module: the clients the
// business quotes for and the suppliers it buys material from.
package clients

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"usinagem_backend/internal/clients/handler"
	"usinagem_backend/internal/clients/repository"
	"usinagem_backend/internal/clients/service"
	apphttp "usinagem_backend/internal/http"
	"usinagem_backend/platform/logger"
	"usinagem_backend/platform/validator"
)

// Module is the clients bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the clients module with all its dependencies.
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
	return "clients"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts client and supplier routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	cl := ctx.Protected.Group("/clients")
	cl.GET("", m.handler.ListClients)
	cl.POST("", m.handler.CreateClient)
	cl.GET("/:id", m.handler.GetClient)
	cl.PATCH("/:id", m.handler.UpdateClient)
	cl.DELETE("/:id", m.handler.DeleteClient)

	sup := ctx.Protected.Group("/suppliers")
	sup.GET("", m.handler.ListSuppliers)
	sup.POST("", m.handler.CreateSupplier)
	sup.GET("/:id", m.handler.GetSupplier)
	sup.PATCH("/:id", m.handler.UpdateSupplier)
	sup.DELETE("/:id", m.handler.DeleteSupplier)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
