package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"usinagem_backend/platform/apperr"
)

// PgRepository provides pgx-backed client and supplier persistence.
type PgRepository struct {
	pool *pgxpool.Pool
}

// New creates a clients repository.
func New(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

var _ Repository = (*PgRepository)(nil)

const clientColumns = `id, name, tax_id, email, phone, address, notes, active, created_at, updated_at`

func (r *PgRepository) CreateClient(ctx context.Context, c *Client) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		c.ID, c.Name, c.TaxID, c.Email, c.Phone, c.Address, c.Notes, c.Active, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}
	return nil
}

func (r *PgRepository) GetClient(ctx context.Context, id uuid.UUID) (*Client, error) {
	var c Client
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.Address, &c.Notes, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("client not found")
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &c, nil
}

func (r *PgRepository) UpdateClient(ctx context.Context, c *Client) error {
	query := `
		UPDATE clients
		SET name = $1, tax_id = $2, email = $3, phone = $4, address = $5, notes = $6, active = $7, updated_at = now()
		WHERE id = $8`
	tag, err := r.pool.Exec(ctx, query, c.Name, c.TaxID, c.Email, c.Phone, c.Address, c.Notes, c.Active, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("client not found")
	}
	return nil
}

func (r *PgRepository) DeleteClient(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("client not found")
	}
	return nil
}

func (r *PgRepository) ListClients(ctx context.Context, params ListParams) (*ClientListResult, error) {
	where := ` WHERE ($1::text IS NULL OR name ILIKE '%' || $1 || '%')
		AND ($2::boolean IS NULL OR active = $2)`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients`+where, params.Search, params.Active).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	query := `SELECT ` + clientColumns + ` FROM clients` + where + ` ORDER BY name LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(ctx, query, params.Search, params.Active, params.PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	items := make([]Client, 0, params.PageSize)
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.Address, &c.Notes, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}

	return &ClientListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: (total + params.PageSize - 1) / params.PageSize,
	}, nil
}

func (r *PgRepository) CreateSupplier(ctx context.Context, s *Supplier) error {
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `
		INSERT INTO suppliers (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		s.ID, s.Name, s.TaxID, s.Email, s.Phone, s.Address, s.Notes, s.Active, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert supplier: %w", err)
	}
	return nil
}

func (r *PgRepository) GetSupplier(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	var s Supplier
	query := `SELECT ` + clientColumns + ` FROM suppliers WHERE id = $1`
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.TaxID, &s.Email, &s.Phone, &s.Address, &s.Notes, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("supplier not found")
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	return &s, nil
}

func (r *PgRepository) UpdateSupplier(ctx context.Context, s *Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $1, tax_id = $2, email = $3, phone = $4, address = $5, notes = $6, active = $7, updated_at = now()
		WHERE id = $8`
	tag, err := r.pool.Exec(ctx, query, s.Name, s.TaxID, s.Email, s.Phone, s.Address, s.Notes, s.Active, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("supplier not found")
	}
	return nil
}

func (r *PgRepository) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("supplier not found")
	}
	return nil
}

func (r *PgRepository) ListSuppliers(ctx context.Context, params ListParams) (*SupplierListResult, error) {
	where := ` WHERE ($1::text IS NULL OR name ILIKE '%' || $1 || '%')
		AND ($2::boolean IS NULL OR active = $2)`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers`+where, params.Search, params.Active).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count suppliers: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	query := `SELECT ` + clientColumns + ` FROM suppliers` + where + ` ORDER BY name LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(ctx, query, params.Search, params.Active, params.PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	items := make([]Supplier, 0, params.PageSize)
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.TaxID, &s.Email, &s.Phone, &s.Address, &s.Notes, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate suppliers: %w", err)
	}

	return &SupplierListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: (total + params.PageSize - 1) / params.PageSize,
	}, nil
}
