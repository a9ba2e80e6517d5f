package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"usinagem_backend/internal/contracts/service"
	"usinagem_backend/internal/contracts/transport"
	"usinagem_backend/platform/httpkit"
	"usinagem_backend/platform/validator"
)

// Handler handles HTTP requests for contracts and their price catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid contract ID"
	msgInvalidPriceID   = "invalid price ID"
)

// New creates a new contracts handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List retrieves contracts with filters and pagination.
// GET /api/v1/contracts
func (h *Handler) List(c *gin.Context) {
	var req transport.ListContractsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create creates a new contract.
// POST /api/v1/contracts
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// GetByID retrieves a contract by ID.
// GET /api/v1/contracts/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Update applies a partial update to a contract.
// PATCH /api/v1/contracts/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a contract.
// DELETE /api/v1/contracts/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// ListHourPrices lists all machine-hour overrides of a contract.
// GET /api/v1/contracts/:id/hour-prices
func (h *Handler) ListHourPrices(c *gin.Context) {
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.ListHourPrices(c.Request.Context(), contractID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateHourPrice adds a machine-hour override to a contract.
// POST /api/v1/contracts/:id/hour-prices
func (h *Handler) CreateHourPrice(c *gin.Context) {
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.CreateHourPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateHourPrice(c.Request.Context(), contractID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// UpdateHourPrice updates a machine-hour override.
// PATCH /api/v1/contracts/:id/hour-prices/:priceId
func (h *Handler) UpdateHourPrice(c *gin.Context) {
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	priceID, err := uuid.Parse(c.Param("priceId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPriceID, nil)
		return
	}

	var req transport.UpdateHourPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.UpdateHourPrice(c.Request.Context(), contractID, priceID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteHourPrice removes a machine-hour override.
// DELETE /api/v1/contracts/:id/hour-prices/:priceId
func (h *Handler) DeleteHourPrice(c *gin.Context) {
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	priceID, err := uuid.Parse(c.Param("priceId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPriceID, nil)
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteHourPrice(c.Request.Context(), contractID, priceID)) {
		return
	}
	httpkit.NoContent(c)
}

// ListMaterialPrices lists all material overrides of a contract.
// GET /api/v1/contracts/:id/material-prices
func (h *Handler) ListMaterialPrices(c *gin.Context) {
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.ListMaterialPrices(c.Request.Context(), contractID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateMaterialPrice adds a material override to a contract.
// POST /api/v1/contracts/:id/material-prices
func (h *Handler) CreateMaterialPrice(c *gin.Context) {
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.CreateMaterialPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateMaterialPrice(c.Request.Context(), contractID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// UpdateMaterialPrice updates a material override.
// PATCH /api/v1/contracts/:id/material-prices/:priceId
func (h *Handler) UpdateMaterialPrice(c *gin.Context) {
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	priceID, err := uuid.Parse(c.Param("priceId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPriceID, nil)
		return
	}

	var req transport.UpdateMaterialPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.UpdateMaterialPrice(c.Request.Context(), contractID, priceID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteMaterialPrice removes a material override.
// DELETE /api/v1/contracts/:id/material-prices/:priceId
func (h *Handler) DeleteMaterialPrice(c *gin.Context) {
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	priceID, err := uuid.Parse(c.Param("priceId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPriceID, nil)
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteMaterialPrice(c.Request.Context(), contractID, priceID)) {
		return
	}
	httpkit.NoContent(c)
}

// ResolveHourPrice resolves the effective machine-hour price under a contract.
// GET /api/v1/contracts/:id/prices/hh?machineId=...&hourVariant=...
func (h *Handler) ResolveHourPrice(c *gin.Context) {
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.ResolveHourPriceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resolved, err := h.svc.ResolveHourPrice(c.Request.Context(), contractID, req.MachineID, req.Variant)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ResolvedPriceResponse{
		Price:  resolved.Price,
		Source: resolved.Source,
		UnitID: resolved.UnitID,
	})
}

// ResolveMaterialPrice resolves the effective material price under a contract.
// GET /api/v1/contracts/:id/prices/material?materialId=...
func (h *Handler) ResolveMaterialPrice(c *gin.Context) {
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.ResolveMaterialPriceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resolved, err := h.svc.ResolveMaterialPrice(c.Request.Context(), contractID, req.MaterialID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ResolvedPriceResponse{
		Price:  resolved.Price,
		Source: resolved.Source,
		UnitID: resolved.UnitID,
	})
}
