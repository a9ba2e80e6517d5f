package transport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateContractRequest contains data for creating a new contract.
type CreateContractRequest struct {
	ClientID           uuid.UUID        `json:"clientId" validate:"required"`
	Currency           *string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	Active             *bool            `json:"active,omitempty"`
	StartDate          *string          `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate            *string          `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes              *string          `json:"notes,omitempty" validate:"omitempty,max=2000"`
	HourRegularDefault *decimal.Decimal `json:"hourRegularDefault,omitempty"`
	HourExtraDefault   *decimal.Decimal `json:"hourExtraDefault,omitempty"`
	HourHolidayDefault *decimal.Decimal `json:"hourHolidayDefault,omitempty"`
	MaterialKgDefault  *decimal.Decimal `json:"materialKgDefault,omitempty"`
}

// UpdateContractRequest contains data for updating an existing contract.
// Absent fields are left untouched.
type UpdateContractRequest struct {
	Currency           *string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	Active             *bool            `json:"active,omitempty"`
	StartDate          *string          `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate            *string          `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes              *string          `json:"notes,omitempty" validate:"omitempty,max=2000"`
	HourRegularDefault *decimal.Decimal `json:"hourRegularDefault,omitempty"`
	HourExtraDefault   *decimal.Decimal `json:"hourExtraDefault,omitempty"`
	HourHolidayDefault *decimal.Decimal `json:"hourHolidayDefault,omitempty"`
	MaterialKgDefault  *decimal.Decimal `json:"materialKgDefault,omitempty"`
}

// ListContractsRequest contains query parameters for listing contracts.
type ListContractsRequest struct {
	ClientID *uuid.UUID `form:"clientId"`
	Active   *bool      `form:"active"`
	Page     int        `form:"page"`
	PageSize int        `form:"pageSize"`
}

// ContractResponse represents a contract in API responses.
type ContractResponse struct {
	ID                 uuid.UUID        `json:"id"`
	ClientID           uuid.UUID        `json:"clientId"`
	Currency           string           `json:"currency"`
	Active             bool             `json:"active"`
	StartDate          *string          `json:"startDate,omitempty"`
	EndDate            *string          `json:"endDate,omitempty"`
	Notes              *string          `json:"notes,omitempty"`
	HourRegularDefault *decimal.Decimal `json:"hourRegularDefault,omitempty"`
	HourExtraDefault   *decimal.Decimal `json:"hourExtraDefault,omitempty"`
	HourHolidayDefault *decimal.Decimal `json:"hourHolidayDefault,omitempty"`
	MaterialKgDefault  *decimal.Decimal `json:"materialKgDefault,omitempty"`
	CreatedAt          string           `json:"createdAt"`
	UpdatedAt          string           `json:"updatedAt"`
}

// ContractListResponse wraps a paginated list of contracts.
type ContractListResponse struct {
	Items      []ContractResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}

// CreateHourPriceRequest contains data for creating a machine-hour override.
type CreateHourPriceRequest struct {
	MachineID uuid.UUID       `json:"machineId" validate:"required"`
	Variant   string          `json:"hourVariant" validate:"required,oneof=REGULAR EXTRA FERIADO"`
	HourPrice decimal.Decimal `json:"hourPrice" validate:"required"`
	UnitID    uuid.UUID       `json:"unitId" validate:"required"`
}

// UpdateHourPriceRequest contains data for updating a machine-hour override.
type UpdateHourPriceRequest struct {
	HourPrice *decimal.Decimal `json:"hourPrice,omitempty"`
	UnitID    *uuid.UUID       `json:"unitId,omitempty"`
}

// HourPriceResponse represents a machine-hour override in API responses.
type HourPriceResponse struct {
	ID         uuid.UUID       `json:"id"`
	ContractID uuid.UUID       `json:"contractId"`
	MachineID  uuid.UUID       `json:"machineId"`
	Variant    string          `json:"hourVariant"`
	HourPrice  decimal.Decimal `json:"hourPrice"`
	UnitID     uuid.UUID       `json:"unitId"`
	CreatedAt  string          `json:"createdAt"`
	UpdatedAt  string          `json:"updatedAt"`
}

// CreateMaterialPriceRequest contains data for creating a material override.
type CreateMaterialPriceRequest struct {
	MaterialID uuid.UUID       `json:"materialId" validate:"required"`
	UnitPrice  decimal.Decimal `json:"unitPrice" validate:"required"`
	UnitID     uuid.UUID       `json:"unitId" validate:"required"`
}

// UpdateMaterialPriceRequest contains data for updating a material override.
type UpdateMaterialPriceRequest struct {
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
	UnitID    *uuid.UUID       `json:"unitId,omitempty"`
}

// MaterialPriceResponse represents a material override in API responses.
type MaterialPriceResponse struct {
	ID         uuid.UUID       `json:"id"`
	ContractID uuid.UUID       `json:"contractId"`
	MaterialID uuid.UUID       `json:"materialId"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	UnitID     uuid.UUID       `json:"unitId"`
	CreatedAt  string          `json:"createdAt"`
	UpdatedAt  string          `json:"updatedAt"`
}

// ResolveHourPriceRequest contains query parameters for resolving a
// machine-hour price under a contract.
type ResolveHourPriceRequest struct {
	MachineID uuid.UUID `form:"machineId" validate:"required"`
	Variant   string    `form:"hourVariant" validate:"required"`
}

// ResolveMaterialPriceRequest contains query parameters for resolving a
// material price under a contract.
type ResolveMaterialPriceRequest struct {
	MaterialID uuid.UUID `form:"materialId" validate:"required"`
}

// ResolvedPriceResponse is the outcome of a successful price resolution.
// Source is "specific" when an override matched, "default" when the
// contract-wide fallback was used. UnitID is only set for specific prices.
type ResolvedPriceResponse struct {
	Price  decimal.Decimal `json:"price"`
	Source string          `json:"source"`
	UnitID *uuid.UUID      `json:"unitId,omitempty"`
}
