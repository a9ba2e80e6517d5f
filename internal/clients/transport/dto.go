package transport

import "github.com/google/uuid"

// PartyRequest contains data for creating a client or supplier.
type PartyRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=150"`
	TaxID   *string `json:"taxId,omitempty" validate:"omitempty,max=20"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=300"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Active  *bool   `json:"active,omitempty"`
}

// PartyPatch contains a partial update for a client or supplier.
type PartyPatch struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	TaxID   *string `json:"taxId,omitempty" validate:"omitempty,max=20"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=300"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Active  *bool   `json:"active,omitempty"`
}

// ListPartiesRequest contains query parameters for listing clients or suppliers.
type ListPartiesRequest struct {
	Search   *string `form:"search"`
	Active   *bool   `form:"active"`
	Page     int     `form:"page"`
	PageSize int     `form:"pageSize"`
}

// PartyResponse represents a client or supplier in API responses.
type PartyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	TaxID     *string   `json:"taxId,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// PartyListResponse wraps a paginated list of clients or suppliers.
type PartyListResponse struct {
	Items      []PartyResponse `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}
