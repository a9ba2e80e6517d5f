package transport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateQuoteRequest contains data for creating a new quote.
type CreateQuoteRequest struct {
	ClientID   uuid.UUID        `json:"clientId" validate:"required"`
	Kind       string           `json:"kind" validate:"required,oneof=CONTRACT SPOT"`
	ContractID *uuid.UUID       `json:"contractId,omitempty"`
	Currency   *string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	Discount   *decimal.Decimal `json:"discount,omitempty"`
	Surcharge  *decimal.Decimal `json:"surcharge,omitempty"`
	ValidUntil *string          `json:"validUntil,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes      *string          `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateQuoteRequest contains data for updating a quote header. Kind and
// contract binding are fixed at creation and cannot be patched.
type UpdateQuoteRequest struct {
	Status     *string          `json:"status,omitempty" validate:"omitempty,oneof=DRAFT SENT ACCEPTED CANCELED"`
	Currency   *string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	Discount   *decimal.Decimal `json:"discount,omitempty"`
	Surcharge  *decimal.Decimal `json:"surcharge,omitempty"`
	ValidUntil *string          `json:"validUntil,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes      *string          `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ListQuotesRequest contains query parameters for listing quotes.
type ListQuotesRequest struct {
	ClientID   *uuid.UUID `form:"clientId"`
	ContractID *uuid.UUID `form:"contractId"`
	Kind       *string    `form:"kind"`
	Status     *string    `form:"status"`
	Page       int        `form:"page"`
	PageSize   int        `form:"pageSize"`
}

// QuoteResponse represents a quote in API responses.
type QuoteResponse struct {
	ID         uuid.UUID       `json:"id"`
	ClientID   uuid.UUID       `json:"clientId"`
	ContractID *uuid.UUID      `json:"contractId,omitempty"`
	Kind       string          `json:"kind"`
	Status     string          `json:"status"`
	Currency   string          `json:"currency"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	Surcharge  decimal.Decimal `json:"surcharge"`
	Total      decimal.Decimal `json:"total"`
	ValidUntil *string         `json:"validUntil,omitempty"`
	Notes      *string         `json:"notes,omitempty"`
	CreatedAt  string          `json:"createdAt"`
	UpdatedAt  string          `json:"updatedAt"`
}

// QuoteListResponse wraps a paginated list of quotes.
type QuoteListResponse struct {
	Items      []QuoteResponse `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}

// ItemSpec describes a line item to be added to a quote. Which fields are
// mandatory depends on the item kind and on the owning quote's kind; that
// validation happens in the ledger, not here.
type ItemSpec struct {
	Kind        string           `json:"kind" validate:"required,oneof=HOUR MATERIAL FREEFORM"`
	MachineID   *uuid.UUID       `json:"machineId,omitempty"`
	HourVariant *string          `json:"hourVariant,omitempty"`
	MaterialID  *uuid.UUID       `json:"materialId,omitempty"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=500"`
	UnitID      *uuid.UUID       `json:"unitId,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unitPrice,omitempty"`
}

// ItemPatch describes a partial update to an existing line item. Nil fields
// are left untouched; a kind change requires the full set of fields the new
// kind depends on.
type ItemPatch struct {
	Kind        *string          `json:"kind,omitempty" validate:"omitempty,oneof=HOUR MATERIAL FREEFORM"`
	MachineID   *uuid.UUID       `json:"machineId,omitempty"`
	HourVariant *string          `json:"hourVariant,omitempty"`
	MaterialID  *uuid.UUID       `json:"materialId,omitempty"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=500"`
	UnitID      *uuid.UUID       `json:"unitId,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unitPrice,omitempty"`
}

// QuoteItemResponse represents a line item in API responses.
type QuoteItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	QuoteID     uuid.UUID       `json:"quoteId"`
	Kind        string          `json:"kind"`
	MachineID   *uuid.UUID      `json:"machineId,omitempty"`
	HourVariant *string         `json:"hourVariant,omitempty"`
	MaterialID  *uuid.UUID      `json:"materialId,omitempty"`
	Description *string         `json:"description,omitempty"`
	UnitID      *uuid.UUID      `json:"unitId,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	PriceSource *string         `json:"priceSource,omitempty"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

// QuoteItemListResponse wraps the items of one quote.
type QuoteItemListResponse struct {
	Items []QuoteItemResponse `json:"items"`
	Total int                 `json:"total"`
}
