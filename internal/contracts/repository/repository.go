package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"usinagem_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	contractNotFoundMsg      = "contract not found"
	hourPriceNotFoundMsg     = "machine hour price not found"
	materialPriceNotFoundMsg = "material price not found"

	uniqueViolationCode = "23505"
)

// PgRepository provides pgx-backed contract persistence.
type PgRepository struct {
	pool *pgxpool.Pool
}

// New creates a contracts repository.
func New(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

var _ Repository = (*PgRepository)(nil)

// ── Contracts ────────────────────────────────────────────────────────────────

const contractColumns = `id, client_id, currency, active, start_date, end_date, notes,
	hour_regular_default, hour_extra_default, hour_holiday_default, material_kg_default,
	created_at, updated_at`

func scanContract(row pgx.Row) (*Contract, error) {
	var c Contract
	err := row.Scan(
		&c.ID, &c.ClientID, &c.Currency, &c.Active, &c.StartDate, &c.EndDate, &c.Notes,
		&c.HourRegularDefault, &c.HourExtraDefault, &c.HourHolidayDefault, &c.MaterialKgDefault,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgRepository) CreateContract(ctx context.Context, c *Contract) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `
		INSERT INTO contracts (` + contractColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.ClientID, c.Currency, c.Active, c.StartDate, c.EndDate, c.Notes,
		c.HourRegularDefault, c.HourExtraDefault, c.HourHolidayDefault, c.MaterialKgDefault,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert contract: %w", err)
	}
	return nil
}

func (r *PgRepository) GetContract(ctx context.Context, id uuid.UUID) (*Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	c, err := scanContract(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(contractNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	return c, nil
}

func (r *PgRepository) UpdateContract(ctx context.Context, c *Contract) error {
	query := `
		UPDATE contracts SET
			client_id = $2, currency = $3, active = $4, start_date = $5, end_date = $6,
			notes = $7, hour_regular_default = $8, hour_extra_default = $9,
			hour_holiday_default = $10, material_kg_default = $11, updated_at = $12
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		c.ID, c.ClientID, c.Currency, c.Active, c.StartDate, c.EndDate,
		c.Notes, c.HourRegularDefault, c.HourExtraDefault,
		c.HourHolidayDefault, c.MaterialKgDefault, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update contract: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(contractNotFoundMsg)
	}
	return nil
}

func (r *PgRepository) DeleteContract(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(contractNotFoundMsg)
	}
	return nil
}

func (r *PgRepository) ListContracts(ctx context.Context, params ListParams) (*ListResult, error) {
	var clientParam any
	if params.ClientID != nil {
		clientParam = *params.ClientID
	}
	var activeParam any
	if params.Active != nil {
		activeParam = *params.Active
	}

	baseQuery := `
		FROM contracts
		WHERE ($1::uuid IS NULL OR client_id = $1)
			AND ($2::boolean IS NULL OR active = $2)`
	args := []any{clientParam, activeParam}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count contracts: %w", err)
	}

	totalPages := (total + params.PageSize - 1) / params.PageSize
	offset := (params.Page - 1) * params.PageSize

	query := `SELECT ` + contractColumns + ` ` + baseQuery + `
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(ctx, query, append(args, params.PageSize, offset)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var items []Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contracts: %w", err)
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

// ── Machine hour prices ──────────────────────────────────────────────────────

const hourPriceColumns = `id, contract_id, machine_id, hour_variant, hour_price, unit_id, created_at, updated_at`

func scanHourPrice(row pgx.Row) (*MachineHourPrice, error) {
	var p MachineHourPrice
	err := row.Scan(&p.ID, &p.ContractID, &p.MachineID, &p.Variant, &p.HourPrice, &p.UnitID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgRepository) CreateHourPrice(ctx context.Context, p *MachineHourPrice) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO contract_hour_prices (` + hourPriceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.ContractID, p.MachineID, p.Variant, p.HourPrice, p.UnitID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("an hour price for this contract, machine and variant already exists")
		}
		return fmt.Errorf("failed to insert hour price: %w", err)
	}
	return nil
}

func (r *PgRepository) UpdateHourPrice(ctx context.Context, p *MachineHourPrice) error {
	query := `
		UPDATE contract_hour_prices
		SET hour_price = $3, unit_id = $4, updated_at = $5
		WHERE id = $1 AND contract_id = $2`

	result, err := r.pool.Exec(ctx, query, p.ID, p.ContractID, p.HourPrice, p.UnitID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update hour price: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(hourPriceNotFoundMsg)
	}
	return nil
}

func (r *PgRepository) DeleteHourPrice(ctx context.Context, contractID, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM contract_hour_prices WHERE id = $1 AND contract_id = $2`, id, contractID)
	if err != nil {
		return fmt.Errorf("failed to delete hour price: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(hourPriceNotFoundMsg)
	}
	return nil
}

func (r *PgRepository) ListHourPrices(ctx context.Context, contractID uuid.UUID) ([]MachineHourPrice, error) {
	query := `SELECT ` + hourPriceColumns + `
		FROM contract_hour_prices WHERE contract_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hour prices: %w", err)
	}
	defer rows.Close()

	var items []MachineHourPrice
	for rows.Next() {
		p, err := scanHourPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hour price: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hour prices: %w", err)
	}
	return items, nil
}

func (r *PgRepository) FindHourPrice(ctx context.Context, contractID, machineID uuid.UUID, variant string) (*MachineHourPrice, error) {
	query := `SELECT ` + hourPriceColumns + `
		FROM contract_hour_prices
		WHERE contract_id = $1 AND machine_id = $2 AND hour_variant = $3
		LIMIT 1`

	p, err := scanHourPrice(r.pool.QueryRow(ctx, query, contractID, machineID, variant))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(hourPriceNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to find hour price: %w", err)
	}
	return p, nil
}

// ── Material prices ──────────────────────────────────────────────────────────

const materialPriceColumns = `id, contract_id, material_id, unit_price, unit_id, created_at, updated_at`

func scanMaterialPrice(row pgx.Row) (*MaterialPrice, error) {
	var p MaterialPrice
	err := row.Scan(&p.ID, &p.ContractID, &p.MaterialID, &p.UnitPrice, &p.UnitID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgRepository) CreateMaterialPrice(ctx context.Context, p *MaterialPrice) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO contract_material_prices (` + materialPriceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.ContractID, p.MaterialID, p.UnitPrice, p.UnitID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("a material price for this contract and material already exists")
		}
		return fmt.Errorf("failed to insert material price: %w", err)
	}
	return nil
}

func (r *PgRepository) UpdateMaterialPrice(ctx context.Context, p *MaterialPrice) error {
	query := `
		UPDATE contract_material_prices
		SET unit_price = $3, unit_id = $4, updated_at = $5
		WHERE id = $1 AND contract_id = $2`

	result, err := r.pool.Exec(ctx, query, p.ID, p.ContractID, p.UnitPrice, p.UnitID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update material price: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(materialPriceNotFoundMsg)
	}
	return nil
}

func (r *PgRepository) DeleteMaterialPrice(ctx context.Context, contractID, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM contract_material_prices WHERE id = $1 AND contract_id = $2`, id, contractID)
	if err != nil {
		return fmt.Errorf("failed to delete material price: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(materialPriceNotFoundMsg)
	}
	return nil
}

func (r *PgRepository) ListMaterialPrices(ctx context.Context, contractID uuid.UUID) ([]MaterialPrice, error) {
	query := `SELECT ` + materialPriceColumns + `
		FROM contract_material_prices WHERE contract_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list material prices: %w", err)
	}
	defer rows.Close()

	var items []MaterialPrice
	for rows.Next() {
		p, err := scanMaterialPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan material price: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate material prices: %w", err)
	}
	return items, nil
}

func (r *PgRepository) FindMaterialPrice(ctx context.Context, contractID, materialID uuid.UUID) (*MaterialPrice, error) {
	query := `SELECT ` + materialPriceColumns + `
		FROM contract_material_prices
		WHERE contract_id = $1 AND material_id = $2
		LIMIT 1`

	p, err := scanMaterialPrice(r.pool.QueryRow(ctx, query, contractID, materialID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(materialPriceNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to find material price: %w", err)
	}
	return p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
