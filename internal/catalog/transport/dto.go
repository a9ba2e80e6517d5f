package transport

import "github.com/google/uuid"

// CreateUnitRequest contains data for creating a unit of measure.
type CreateUnitRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=50"`
	Symbol   string  `json:"symbol" validate:"required,min=1,max=10"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=60"`
}

// UpdateUnitRequest contains data for updating a unit of measure.
type UpdateUnitRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Symbol   *string `json:"symbol,omitempty" validate:"omitempty,min=1,max=10"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=60"`
}

// UnitResponse represents a unit of measure in API responses.
type UnitResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol"`
	Category  *string   `json:"category,omitempty"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// CreateMachineRequest contains data for creating a machine.
type CreateMachineRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Code        string  `json:"code" validate:"required,min=1,max=30"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Active      *bool   `json:"active,omitempty"`
}

// UpdateMachineRequest contains data for updating a machine.
type UpdateMachineRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Code        *string `json:"code,omitempty" validate:"omitempty,min=1,max=30"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Active      *bool   `json:"active,omitempty"`
}

// MachineResponse represents a machine in API responses.
type MachineResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description *string   `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

// CreateMaterialRequest contains data for creating a material.
type CreateMaterialRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=100"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=500"`
	UnitID      *uuid.UUID `json:"unitId,omitempty"`
	Active      *bool      `json:"active,omitempty"`
}

// UpdateMaterialRequest contains data for updating a material.
type UpdateMaterialRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=500"`
	UnitID      *uuid.UUID `json:"unitId,omitempty"`
	Active      *bool      `json:"active,omitempty"`
}

// MaterialResponse represents a material in API responses.
type MaterialResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	UnitID      *uuid.UUID `json:"unitId,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

// CreateServiceTypeRequest contains data for creating a service type.
type CreateServiceTypeRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Active      *bool   `json:"active,omitempty"`
}

// UpdateServiceTypeRequest contains data for updating a service type.
type UpdateServiceTypeRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Active      *bool   `json:"active,omitempty"`
}

// ServiceTypeResponse represents a service type in API responses.
type ServiceTypeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

// ListRequest contains the shared query flag for catalog listings.
type ListRequest struct {
	ActiveOnly bool `form:"activeOnly"`
}
