package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"usinagem_backend/platform/apperr"
)

const (
	quoteNotFoundMsg = "quote not found"
	itemNotFoundMsg  = "quote item not found"
)

// PgRepository provides pgx-backed quote persistence.
type PgRepository struct {
	pool *pgxpool.Pool
}

// New creates a quotes repository.
func New(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

var _ Repository = (*PgRepository)(nil)

const quoteColumns = `id, client_id, contract_id, kind, status, currency,
	subtotal, discount, surcharge, total, valid_until, notes, created_at, updated_at`

func scanQuote(row pgx.Row) (*Quote, error) {
	var q Quote
	err := row.Scan(
		&q.ID, &q.ClientID, &q.ContractID, &q.Kind, &q.Status, &q.Currency,
		&q.Subtotal, &q.Discount, &q.Surcharge, &q.Total, &q.ValidUntil, &q.Notes,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *PgRepository) CreateQuote(ctx context.Context, q *Quote) error {
	now := time.Now()
	q.CreatedAt = now
	q.UpdatedAt = now

	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.pool.Exec(ctx, query,
		q.ID, q.ClientID, q.ContractID, q.Kind, q.Status, q.Currency,
		q.Subtotal, q.Discount, q.Surcharge, q.Total, q.ValidUntil, q.Notes,
		q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}
	return nil
}

func (r *PgRepository) GetQuote(ctx context.Context, id uuid.UUID) (*Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`
	q, err := scanQuote(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(quoteNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return q, nil
}

func (r *PgRepository) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	// quote_items has ON DELETE CASCADE on quote_id.
	tag, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMsg)
	}
	return nil
}

func (r *PgRepository) ListQuotes(ctx context.Context, params ListParams) (*ListResult, error) {
	where := ` WHERE ($1::uuid IS NULL OR client_id = $1)
		AND ($2::uuid IS NULL OR contract_id = $2)
		AND ($3::text IS NULL OR kind = $3)
		AND ($4::text IS NULL OR status = $4)`

	var total int
	countQuery := `SELECT COUNT(*) FROM quotes` + where
	if err := r.pool.QueryRow(ctx, countQuery,
		params.ClientID, params.ContractID, params.Kind, params.Status,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count quotes: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	query := `SELECT ` + quoteColumns + ` FROM quotes` + where + `
		ORDER BY created_at DESC
		LIMIT $5 OFFSET $6`

	rows, err := r.pool.Query(ctx, query,
		params.ClientID, params.ContractID, params.Kind, params.Status,
		params.PageSize, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	items := make([]Quote, 0, params.PageSize)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		items = append(items, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotes: %w", err)
	}

	totalPages := (total + params.PageSize - 1) / params.PageSize
	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (r *PgRepository) ListQuoteIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM quotes ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list quote IDs: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan quote ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quote IDs: %w", err)
	}
	return ids, nil
}

// ── Items ────────────────────────────────────────────────────────────────────

const itemColumns = `id, quote_id, kind, machine_id, hour_variant, material_id,
	description, unit_id, quantity, unit_price, price_source, line_total,
	created_at, updated_at`

func scanItem(row pgx.Row) (*QuoteItem, error) {
	var it QuoteItem
	err := row.Scan(
		&it.ID, &it.QuoteID, &it.Kind, &it.MachineID, &it.HourVariant, &it.MaterialID,
		&it.Description, &it.UnitID, &it.Quantity, &it.UnitPrice, &it.PriceSource, &it.LineTotal,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *PgRepository) ListItems(ctx context.Context, quoteID uuid.UUID) ([]QuoteItem, error) {
	query := `SELECT ` + itemColumns + ` FROM quote_items WHERE quote_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quote items: %w", err)
	}
	defer rows.Close()

	var items []QuoteItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote item: %w", err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quote items: %w", err)
	}
	return items, nil
}

func (r *PgRepository) GetItem(ctx context.Context, quoteID, itemID uuid.UUID) (*QuoteItem, error) {
	query := `SELECT ` + itemColumns + ` FROM quote_items WHERE id = $1 AND quote_id = $2`
	it, err := scanItem(r.pool.QueryRow(ctx, query, itemID, quoteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(itemNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get quote item: %w", err)
	}
	return it, nil
}

// ── Per-quote transaction ────────────────────────────────────────────────────

func (r *PgRepository) InQuoteTx(ctx context.Context, quoteID uuid.UUID, fn func(tx QuoteTx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin quote transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1 FOR UPDATE`
	q, err := scanQuote(tx.QueryRow(ctx, query, quoteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound(quoteNotFoundMsg)
		}
		return fmt.Errorf("failed to lock quote: %w", err)
	}

	if err := fn(&quoteTx{tx: tx, quote: q}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit quote transaction: %w", err)
	}
	return nil
}

type quoteTx struct {
	tx    pgx.Tx
	quote *Quote
}

var _ QuoteTx = (*quoteTx)(nil)

func (t *quoteTx) Quote() *Quote {
	return t.quote
}

func (t *quoteTx) GetItem(ctx context.Context, itemID uuid.UUID) (*QuoteItem, error) {
	query := `SELECT ` + itemColumns + ` FROM quote_items WHERE id = $1 AND quote_id = $2`
	it, err := scanItem(t.tx.QueryRow(ctx, query, itemID, t.quote.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(itemNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get quote item: %w", err)
	}
	return it, nil
}

func (t *quoteTx) InsertItem(ctx context.Context, item *QuoteItem) error {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := `
		INSERT INTO quote_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := t.tx.Exec(ctx, query,
		item.ID, item.QuoteID, item.Kind, item.MachineID, item.HourVariant, item.MaterialID,
		item.Description, item.UnitID, item.Quantity, item.UnitPrice, item.PriceSource, item.LineTotal,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quote item: %w", err)
	}
	return nil
}

func (t *quoteTx) UpdateItem(ctx context.Context, item *QuoteItem) error {
	query := `
		UPDATE quote_items
		SET kind = $1, machine_id = $2, hour_variant = $3, material_id = $4,
			description = $5, unit_id = $6, quantity = $7, unit_price = $8,
			price_source = $9, line_total = $10, updated_at = now()
		WHERE id = $11 AND quote_id = $12`

	tag, err := t.tx.Exec(ctx, query,
		item.Kind, item.MachineID, item.HourVariant, item.MaterialID,
		item.Description, item.UnitID, item.Quantity, item.UnitPrice,
		item.PriceSource, item.LineTotal,
		item.ID, item.QuoteID,
	)
	if err != nil {
		return fmt.Errorf("failed to update quote item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(itemNotFoundMsg)
	}
	return nil
}

func (t *quoteTx) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM quote_items WHERE id = $1 AND quote_id = $2`, itemID, t.quote.ID)
	if err != nil {
		return fmt.Errorf("failed to delete quote item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(itemNotFoundMsg)
	}
	return nil
}

func (t *quoteTx) SumItemTotals(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(line_total), 0) FROM quote_items WHERE quote_id = $1`
	if err := t.tx.QueryRow(ctx, query, t.quote.ID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum quote item totals: %w", err)
	}
	return sum, nil
}

func (t *quoteTx) UpdateQuote(ctx context.Context, q *Quote) error {
	query := `
		UPDATE quotes
		SET status = $1, currency = $2, discount = $3, surcharge = $4,
			valid_until = $5, notes = $6, updated_at = now()
		WHERE id = $7`

	tag, err := t.tx.Exec(ctx, query,
		q.Status, q.Currency, q.Discount, q.Surcharge, q.ValidUntil, q.Notes, q.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMsg)
	}
	t.quote = q
	return nil
}

func (t *quoteTx) UpdateTotals(ctx context.Context, subtotal, total decimal.Decimal) error {
	query := `UPDATE quotes SET subtotal = $1, total = $2, updated_at = now() WHERE id = $3`
	tag, err := t.tx.Exec(ctx, query, subtotal, total, t.quote.ID)
	if err != nil {
		return fmt.Errorf("failed to update quote totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMsg)
	}
	t.quote.Subtotal = subtotal
	t.quote.Total = total
	return nil
}
