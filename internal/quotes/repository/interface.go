package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote is a proposal document aggregating priced line items for a client.
// Subtotal and Total are derived from the live item set and are only ever
// written by the recompute path.
type Quote struct {
	ID         uuid.UUID       `db:"id"`
	ClientID   uuid.UUID       `db:"client_id"`
	ContractID *uuid.UUID      `db:"contract_id"`
	Kind       string          `db:"kind"`
	Status     string          `db:"status"`
	Currency   string          `db:"currency"`
	Subtotal   decimal.Decimal `db:"subtotal"`
	Discount   decimal.Decimal `db:"discount"`
	Surcharge  decimal.Decimal `db:"surcharge"`
	Total      decimal.Decimal `db:"total"`
	ValidUntil *time.Time      `db:"valid_until"`
	Notes      *string         `db:"notes"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

// QuoteItem is one priced line entry. The kind decides which reference
// fields are set: HOUR carries machine+variant, MATERIAL carries a material,
// FREEFORM carries only a description. UnitPrice is snapshotted when the
// item is priced and never re-read from the catalog afterwards.
type QuoteItem struct {
	ID          uuid.UUID       `db:"id"`
	QuoteID     uuid.UUID       `db:"quote_id"`
	Kind        string          `db:"kind"`
	MachineID   *uuid.UUID      `db:"machine_id"`
	HourVariant *string         `db:"hour_variant"`
	MaterialID  *uuid.UUID      `db:"material_id"`
	Description *string         `db:"description"`
	UnitID      *uuid.UUID      `db:"unit_id"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	PriceSource *string         `db:"price_source"`
	LineTotal   decimal.Decimal `db:"line_total"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// ListParams contains parameters for listing quotes.
type ListParams struct {
	ClientID   *uuid.UUID
	ContractID *uuid.UUID
	Kind       *string
	Status     *string
	Page       int
	PageSize   int
}

// ListResult contains the paginated result of listing quotes.
type ListResult struct {
	Items      []Quote
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// QuoteTx is the per-quote unit of work. It holds a row lock on the owning
// quote for its whole lifetime, so item mutations and the totals update that
// follows them cannot interleave with a concurrent mutation of the same
// quote.
type QuoteTx interface {
	// Quote returns the locked quote as loaded at transaction start.
	Quote() *Quote

	GetItem(ctx context.Context, itemID uuid.UUID) (*QuoteItem, error)
	InsertItem(ctx context.Context, item *QuoteItem) error
	UpdateItem(ctx context.Context, item *QuoteItem) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error

	// SumItemTotals sums line_total over the quote's current items.
	SumItemTotals(ctx context.Context) (decimal.Decimal, error)

	// UpdateQuote persists header fields (status, discount, surcharge, ...)
	// of the locked quote.
	UpdateQuote(ctx context.Context, q *Quote) error

	// UpdateTotals persists the recomputed subtotal and total.
	UpdateTotals(ctx context.Context, subtotal, total decimal.Decimal) error
}

// Repository provides quote persistence. InQuoteTx serializes all work on a
// single quote; the read-only methods run outside any lock.
type Repository interface {
	CreateQuote(ctx context.Context, q *Quote) error
	GetQuote(ctx context.Context, id uuid.UUID) (*Quote, error)
	DeleteQuote(ctx context.Context, id uuid.UUID) error
	ListQuotes(ctx context.Context, params ListParams) (*ListResult, error)
	ListQuoteIDs(ctx context.Context) ([]uuid.UUID, error)

	ListItems(ctx context.Context, quoteID uuid.UUID) ([]QuoteItem, error)
	GetItem(ctx context.Context, quoteID, itemID uuid.UUID) (*QuoteItem, error)

	// InQuoteTx locks the quote row, runs fn inside the transaction, and
	// commits iff fn returns nil. Returns apperr.NotFound when the quote
	// does not exist.
	InQuoteTx(ctx context.Context, quoteID uuid.UUID, fn func(tx QuoteTx) error) error
}
