package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Client is a customer the business quotes and contracts for.
type Client struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	TaxID     *string   `db:"tax_id"`
	Email     *string   `db:"email"`
	Phone     *string   `db:"phone"`
	Address   *string   `db:"address"`
	Notes     *string   `db:"notes"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Supplier is a material or tooling vendor.
type Supplier struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	TaxID     *string   `db:"tax_id"`
	Email     *string   `db:"email"`
	Phone     *string   `db:"phone"`
	Address   *string   `db:"address"`
	Notes     *string   `db:"notes"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ListParams contains shared parameters for listing clients or suppliers.
type ListParams struct {
	Search   *string
	Active   *bool
	Page     int
	PageSize int
}

// ClientListResult contains a page of clients.
type ClientListResult struct {
	Items      []Client
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// SupplierListResult contains a page of suppliers.
type SupplierListResult struct {
	Items      []Supplier
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Repository provides client and supplier persistence. Get methods return
// apperr.NotFound when the record is absent.
type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	DeleteClient(ctx context.Context, id uuid.UUID) error
	ListClients(ctx context.Context, params ListParams) (*ClientListResult, error)

	CreateSupplier(ctx context.Context, s *Supplier) error
	GetSupplier(ctx context.Context, id uuid.UUID) (*Supplier, error)
	UpdateSupplier(ctx context.Context, s *Supplier) error
	DeleteSupplier(ctx context.Context, id uuid.UUID) error
	ListSuppliers(ctx context.Context, params ListParams) (*SupplierListResult, error)
}
