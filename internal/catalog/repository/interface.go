package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UnitOfMeasure is an opaque unit reference (hour, kg, piece) attached to
// prices and quote items.
type UnitOfMeasure struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Symbol    string    `db:"symbol"`
	Category  *string   `db:"category"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Machine is a production machine whose hours are sold.
type Machine struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Code        string    `db:"code"`
	Description *string   `db:"description"`
	Active      bool      `db:"active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Material is a raw material sold by weight.
type Material struct {
	ID          uuid.UUID  `db:"id"`
	Name        string     `db:"name"`
	Description *string    `db:"description"`
	UnitID      *uuid.UUID `db:"unit_id"`
	Active      bool       `db:"active"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// ServiceType is a category of machining service offered to clients.
type ServiceType struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	Active      bool      `db:"active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Repository provides catalog persistence. Get methods return
// apperr.NotFound when the record is absent.
type Repository interface {
	CreateUnit(ctx context.Context, u *UnitOfMeasure) error
	GetUnit(ctx context.Context, id uuid.UUID) (*UnitOfMeasure, error)
	UpdateUnit(ctx context.Context, u *UnitOfMeasure) error
	DeleteUnit(ctx context.Context, id uuid.UUID) error
	ListUnits(ctx context.Context) ([]UnitOfMeasure, error)

	CreateMachine(ctx context.Context, m *Machine) error
	GetMachine(ctx context.Context, id uuid.UUID) (*Machine, error)
	UpdateMachine(ctx context.Context, m *Machine) error
	DeleteMachine(ctx context.Context, id uuid.UUID) error
	ListMachines(ctx context.Context, activeOnly bool) ([]Machine, error)

	CreateMaterial(ctx context.Context, m *Material) error
	GetMaterial(ctx context.Context, id uuid.UUID) (*Material, error)
	UpdateMaterial(ctx context.Context, m *Material) error
	DeleteMaterial(ctx context.Context, id uuid.UUID) error
	ListMaterials(ctx context.Context, activeOnly bool) ([]Material, error)

	CreateServiceType(ctx context.Context, st *ServiceType) error
	GetServiceType(ctx context.Context, id uuid.UUID) (*ServiceType, error)
	UpdateServiceType(ctx context.Context, st *ServiceType) error
	DeleteServiceType(ctx context.Context, id uuid.UUID) error
	ListServiceTypes(ctx context.Context, activeOnly bool) ([]ServiceType, error)
}
