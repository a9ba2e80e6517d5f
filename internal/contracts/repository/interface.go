package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contract is a client pricing agreement. The four default prices are the
// contract-wide fallbacks consulted when no specific override matches.
type Contract struct {
	ID                 uuid.UUID        `db:"id"`
	ClientID           uuid.UUID        `db:"client_id"`
	Currency           string           `db:"currency"`
	Active             bool             `db:"active"`
	StartDate          *time.Time       `db:"start_date"`
	EndDate            *time.Time       `db:"end_date"`
	Notes              *string          `db:"notes"`
	HourRegularDefault *decimal.Decimal `db:"hour_regular_default"`
	HourExtraDefault   *decimal.Decimal `db:"hour_extra_default"`
	HourHolidayDefault *decimal.Decimal `db:"hour_holiday_default"`
	MaterialKgDefault  *decimal.Decimal `db:"material_kg_default"`
	CreatedAt          time.Time        `db:"created_at"`
	UpdatedAt          time.Time        `db:"updated_at"`
}

// MachineHourPrice is a specific override for one (contract, machine,
// variant) combination.
type MachineHourPrice struct {
	ID         uuid.UUID       `db:"id"`
	ContractID uuid.UUID       `db:"contract_id"`
	MachineID  uuid.UUID       `db:"machine_id"`
	Variant    string          `db:"hour_variant"`
	HourPrice  decimal.Decimal `db:"hour_price"`
	UnitID     uuid.UUID       `db:"unit_id"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

// MaterialPrice is a specific override for one (contract, material) pair.
type MaterialPrice struct {
	ID         uuid.UUID       `db:"id"`
	ContractID uuid.UUID       `db:"contract_id"`
	MaterialID uuid.UUID       `db:"material_id"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	UnitID     uuid.UUID       `db:"unit_id"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

// ListParams contains parameters for listing contracts.
type ListParams struct {
	ClientID *uuid.UUID
	Active   *bool
	Page     int
	PageSize int
}

// ListResult contains the paginated result of listing contracts.
type ListResult struct {
	Items      []Contract
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// ContractStore provides contract header operations.
type ContractStore interface {
	CreateContract(ctx context.Context, c *Contract) error
	GetContract(ctx context.Context, id uuid.UUID) (*Contract, error)
	UpdateContract(ctx context.Context, c *Contract) error
	DeleteContract(ctx context.Context, id uuid.UUID) error
	ListContracts(ctx context.Context, params ListParams) (*ListResult, error)
}

// HourPriceStore provides machine-hour override operations.
// FindHourPrice returns apperr.NotFound when no override matches.
type HourPriceStore interface {
	CreateHourPrice(ctx context.Context, p *MachineHourPrice) error
	UpdateHourPrice(ctx context.Context, p *MachineHourPrice) error
	DeleteHourPrice(ctx context.Context, contractID, id uuid.UUID) error
	ListHourPrices(ctx context.Context, contractID uuid.UUID) ([]MachineHourPrice, error)
	FindHourPrice(ctx context.Context, contractID, machineID uuid.UUID, variant string) (*MachineHourPrice, error)
}

// MaterialPriceStore provides material override operations.
// FindMaterialPrice returns apperr.NotFound when no override matches.
type MaterialPriceStore interface {
	CreateMaterialPrice(ctx context.Context, p *MaterialPrice) error
	UpdateMaterialPrice(ctx context.Context, p *MaterialPrice) error
	DeleteMaterialPrice(ctx context.Context, contractID, id uuid.UUID) error
	ListMaterialPrices(ctx context.Context, contractID uuid.UUID) ([]MaterialPrice, error)
	FindMaterialPrice(ctx context.Context, contractID, materialID uuid.UUID) (*MaterialPrice, error)
}

// Repository combines all contract repository operations.
type Repository interface {
	ContractStore
	HourPriceStore
	MaterialPriceStore
}
