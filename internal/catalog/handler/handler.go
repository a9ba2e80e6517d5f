package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"usinagem_backend/internal/catalog/service"
	"usinagem_backend/internal/catalog/transport"
	"usinagem_backend/platform/httpkit"
	"usinagem_backend/platform/validator"
)

// Handler handles HTTP requests for the resource catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid ID"
)

// New creates a new catalog handler.
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

// ── Units of measure ─────────────────────────────────────────────────────────

// ListUnits lists all units of measure.
// GET /api/v1/units
func (h *Handler) ListUnits(c *gin.Context) {
	result, err := h.svc.ListUnits(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateUnit creates a unit of measure.
// POST /api/v1/units
func (h *Handler) CreateUnit(c *gin.Context) {
	var req transport.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	result, err := h.svc.CreateUnit(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// GetUnit retrieves a unit of measure by ID.
// GET /api/v1/units/:id
func (h *Handler) GetUnit(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	result, err := h.svc.GetUnit(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateUnit updates a unit of measure.
// PATCH /api/v1/units/:id
func (h *Handler) UpdateUnit(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req transport.UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	result, err := h.svc.UpdateUnit(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteUnit removes a unit of measure.
// DELETE /api/v1/units/:id
func (h *Handler) DeleteUnit(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.svc.DeleteUnit(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// ── Machines ─────────────────────────────────────────────────────────────────

// ListMachines lists machines, optionally only active ones.
// GET /api/v1/machines
func (h *Handler) ListMachines(c *gin.Context) {
	var req transport.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	result, err := h.svc.ListMachines(c.Request.Context(), req.ActiveOnly)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateMachine creates a machine.
// POST /api/v1/machines
func (h *Handler) CreateMachine(c *gin.Context) {
	var req transport.CreateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	result, err := h.svc.CreateMachine(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// GetMachine retrieves a machine by ID.
// GET /api/v1/machines/:id
func (h *Handler) GetMachine(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	result, err := h.svc.GetMachine(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateMachine updates a machine.
// PATCH /api/v1/machines/:id
func (h *Handler) UpdateMachine(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req transport.UpdateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	result, err := h.svc.UpdateMachine(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteMachine removes a machine.
// DELETE /api/v1/machines/:id
func (h *Handler) DeleteMachine(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.svc.DeleteMachine(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// ── Materials ────────────────────────────────────────────────────────────────

// ListMaterials lists materials, optionally only active ones.
// GET /api/v1/materials
func (h *Handler) ListMaterials(c *gin.Context) {
	var req transport.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	result, err := h.svc.ListMaterials(c.Request.Context(), req.ActiveOnly)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateMaterial creates a material.
// POST /api/v1/materials
func (h *Handler) CreateMaterial(c *gin.Context) {
	var req transport.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	result, err := h.svc.CreateMaterial(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// GetMaterial retrieves a material by ID.
// GET /api/v1/materials/:id
func (h *Handler) GetMaterial(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	result, err := h.svc.GetMaterial(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateMaterial updates a material.
// PATCH /api/v1/materials/:id
func (h *Handler) UpdateMaterial(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req transport.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	result, err := h.svc.UpdateMaterial(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteMaterial removes a material.
// DELETE /api/v1/materials/:id
func (h *Handler) DeleteMaterial(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.svc.DeleteMaterial(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// ── Service types ────────────────────────────────────────────────────────────

// ListServiceTypes lists service types, optionally only active ones.
// GET /api/v1/service-types
func (h *Handler) ListServiceTypes(c *gin.Context) {
	var req transport.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	result, err := h.svc.ListServiceTypes(c.Request.Context(), req.ActiveOnly)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateServiceType creates a service type.
// POST /api/v1/service-types
func (h *Handler) CreateServiceType(c *gin.Context) {
	var req transport.CreateServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	result, err := h.svc.CreateServiceType(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// GetServiceType retrieves a service type by ID.
// GET /api/v1/service-types/:id
func (h *Handler) GetServiceType(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	result, err := h.svc.GetServiceType(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateServiceType updates a service type.
// PATCH /api/v1/service-types/:id
func (h *Handler) UpdateServiceType(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req transport.UpdateServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	result, err := h.svc.UpdateServiceType(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteServiceType removes a service type.
// DELETE /api/v1/service-types/:id
func (h *Handler) DeleteServiceType(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.svc.DeleteServiceType(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}
