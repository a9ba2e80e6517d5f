package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"usinagem_backend/internal/clients/service"
	"usinagem_backend/internal/clients/transport"
	"usinagem_backend/platform/httpkit"
	"usinagem_backend/platform/validator"
)

// Handler handles HTTP requests for clients and suppliers.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid ID"
)

// New creates a new clients handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}

// ── Clients ──────────────────────────────────────────────────────────────────

// ListClients lists clients with optional search and active filter.
// GET /api/v1/clients
func (h *Handler) ListClients(c *gin.Context) {
	var req transport.ListPartiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	result, err := h.svc.ListClients(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateClient creates a client.
// POST /api/v1/clients
func (h *Handler) CreateClient(c *gin.Context) {
	var req transport.PartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	result, err := h.svc.CreateClient(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// GetClient retrieves a client by ID.
// GET /api/v1/clients/:id
func (h *Handler) GetClient(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	result, err := h.svc.GetClient(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateClient partially updates a client.
// PATCH /api/v1/clients/:id
func (h *Handler) UpdateClient(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req transport.PartyPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	result, err := h.svc.UpdateClient(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteClient removes a client.
// DELETE /api/v1/clients/:id
func (h *Handler) DeleteClient(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteClient(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.NoContent(c)
}

// ── Suppliers ────────────────────────────────────────────────────────────────

// ListSuppliers lists suppliers with optional search and active filter.
// GET /api/v1/suppliers
func (h *Handler) ListSuppliers(c *gin.Context) {
	var req transport.ListPartiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	result, err := h.svc.ListSuppliers(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateSupplier creates a supplier.
// POST /api/v1/suppliers
func (h *Handler) CreateSupplier(c *gin.Context) {
	var req transport.PartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	result, err := h.svc.CreateSupplier(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// GetSupplier retrieves a supplier by ID.
// GET /api/v1/suppliers/:id
func (h *Handler) GetSupplier(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	result, err := h.svc.GetSupplier(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateSupplier partially updates a supplier.
// PATCH /api/v1/suppliers/:id
func (h *Handler) UpdateSupplier(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req transport.PartyPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	result, err := h.svc.UpdateSupplier(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteSupplier removes a supplier.
// DELETE /api/v1/suppliers/:id
func (h *Handler) DeleteSupplier(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteSupplier(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.NoContent(c)
}
