package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"usinagem_backend/platform/apperr"
)

const uniqueViolationCode = "23505"

// PgRepository provides pgx-backed catalog persistence.
type PgRepository struct {
	pool *pgxpool.Pool
}

// New creates a catalog repository.
func New(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

var _ Repository = (*PgRepository)(nil)

// ── Units of measure ─────────────────────────────────────────────────────────

func (r *PgRepository) CreateUnit(ctx context.Context, u *UnitOfMeasure) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	query := `
		INSERT INTO units_of_measure (id, name, symbol, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, u.ID, u.Name, u.Symbol, u.Category, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("a unit with this symbol already exists")
		}
		return fmt.Errorf("failed to insert unit: %w", err)
	}
	return nil
}

func (r *PgRepository) GetUnit(ctx context.Context, id uuid.UUID) (*UnitOfMeasure, error) {
	var u UnitOfMeasure
	query := `SELECT id, name, symbol, category, created_at, updated_at FROM units_of_measure WHERE id = $1`
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Symbol, &u.Category, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("unit not found")
		}
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	return &u, nil
}

func (r *PgRepository) UpdateUnit(ctx context.Context, u *UnitOfMeasure) error {
	query := `UPDATE units_of_measure SET name = $1, symbol = $2, category = $3, updated_at = now() WHERE id = $4`
	tag, err := r.pool.Exec(ctx, query, u.Name, u.Symbol, u.Category, u.ID)
	if err != nil {
		return fmt.Errorf("failed to update unit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("unit not found")
	}
	return nil
}

func (r *PgRepository) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM units_of_measure WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("unit not found")
	}
	return nil
}

func (r *PgRepository) ListUnits(ctx context.Context) ([]UnitOfMeasure, error) {
	query := `SELECT id, name, symbol, category, created_at, updated_at FROM units_of_measure ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	defer rows.Close()

	var units []UnitOfMeasure
	for rows.Next() {
		var u UnitOfMeasure
		if err := rows.Scan(&u.ID, &u.Name, &u.Symbol, &u.Category, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

// ── Machines ─────────────────────────────────────────────────────────────────

func (r *PgRepository) CreateMachine(ctx context.Context, m *Machine) error {
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `
		INSERT INTO machines (id, name, code, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query, m.ID, m.Name, m.Code, m.Description, m.Active, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("a machine with this code already exists")
		}
		return fmt.Errorf("failed to insert machine: %w", err)
	}
	return nil
}

func (r *PgRepository) GetMachine(ctx context.Context, id uuid.UUID) (*Machine, error) {
	var m Machine
	query := `SELECT id, name, code, description, active, created_at, updated_at FROM machines WHERE id = $1`
	err := r.pool.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Code, &m.Description, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("machine not found")
		}
		return nil, fmt.Errorf("failed to get machine: %w", err)
	}
	return &m, nil
}

func (r *PgRepository) UpdateMachine(ctx context.Context, m *Machine) error {
	query := `
		UPDATE machines SET name = $1, code = $2, description = $3, active = $4, updated_at = now()
		WHERE id = $5`
	tag, err := r.pool.Exec(ctx, query, m.Name, m.Code, m.Description, m.Active, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update machine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("machine not found")
	}
	return nil
}

func (r *PgRepository) DeleteMachine(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM machines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete machine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("machine not found")
	}
	return nil
}

func (r *PgRepository) ListMachines(ctx context.Context, activeOnly bool) ([]Machine, error) {
	query := `
		SELECT id, name, code, description, active, created_at, updated_at
		FROM machines
		WHERE ($1 = false OR active = true)
		ORDER BY name`
	rows, err := r.pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	defer rows.Close()

	var machines []Machine
	for rows.Next() {
		var m Machine
		if err := rows.Scan(&m.ID, &m.Name, &m.Code, &m.Description, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan machine: %w", err)
		}
		machines = append(machines, m)
	}
	return machines, rows.Err()
}

// ── Materials ────────────────────────────────────────────────────────────────

func (r *PgRepository) CreateMaterial(ctx context.Context, m *Material) error {
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `
		INSERT INTO materials (id, name, description, unit_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query, m.ID, m.Name, m.Description, m.UnitID, m.Active, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert material: %w", err)
	}
	return nil
}

func (r *PgRepository) GetMaterial(ctx context.Context, id uuid.UUID) (*Material, error) {
	var m Material
	query := `SELECT id, name, description, unit_id, active, created_at, updated_at FROM materials WHERE id = $1`
	err := r.pool.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Description, &m.UnitID, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("material not found")
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return &m, nil
}

func (r *PgRepository) UpdateMaterial(ctx context.Context, m *Material) error {
	query := `
		UPDATE materials SET name = $1, description = $2, unit_id = $3, active = $4, updated_at = now()
		WHERE id = $5`
	tag, err := r.pool.Exec(ctx, query, m.Name, m.Description, m.UnitID, m.Active, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("material not found")
	}
	return nil
}

func (r *PgRepository) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("material not found")
	}
	return nil
}

func (r *PgRepository) ListMaterials(ctx context.Context, activeOnly bool) ([]Material, error) {
	query := `
		SELECT id, name, description, unit_id, active, created_at, updated_at
		FROM materials
		WHERE ($1 = false OR active = true)
		ORDER BY name`
	rows, err := r.pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	defer rows.Close()

	var materials []Material
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.UnitID, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// ── Service types ────────────────────────────────────────────────────────────

func (r *PgRepository) CreateServiceType(ctx context.Context, st *ServiceType) error {
	now := time.Now()
	st.CreatedAt = now
	st.UpdatedAt = now

	query := `
		INSERT INTO service_types (id, name, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, st.ID, st.Name, st.Description, st.Active, st.CreatedAt, st.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("a service type with this name already exists")
		}
		return fmt.Errorf("failed to insert service type: %w", err)
	}
	return nil
}

func (r *PgRepository) GetServiceType(ctx context.Context, id uuid.UUID) (*ServiceType, error) {
	var st ServiceType
	query := `SELECT id, name, description, active, created_at, updated_at FROM service_types WHERE id = $1`
	err := r.pool.QueryRow(ctx, query, id).Scan(&st.ID, &st.Name, &st.Description, &st.Active, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("service type not found")
		}
		return nil, fmt.Errorf("failed to get service type: %w", err)
	}
	return &st, nil
}

func (r *PgRepository) UpdateServiceType(ctx context.Context, st *ServiceType) error {
	query := `
		UPDATE service_types SET name = $1, description = $2, active = $3, updated_at = now()
		WHERE id = $4`
	tag, err := r.pool.Exec(ctx, query, st.Name, st.Description, st.Active, st.ID)
	if err != nil {
		return fmt.Errorf("failed to update service type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("service type not found")
	}
	return nil
}

func (r *PgRepository) DeleteServiceType(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM service_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("service type not found")
	}
	return nil
}

func (r *PgRepository) ListServiceTypes(ctx context.Context, activeOnly bool) ([]ServiceType, error) {
	query := `
		SELECT id, name, description, active, created_at, updated_at
		FROM service_types
		WHERE ($1 = false OR active = true)
		ORDER BY name`
	rows, err := r.pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list service types: %w", err)
	}
	defer rows.Close()

	var types []ServiceType
	for rows.Next() {
		var st ServiceType
		if err := rows.Scan(&st.ID, &st.Name, &st.Description, &st.Active, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan service type: %w", err)
		}
		types = append(types, st)
	}
	return types, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
