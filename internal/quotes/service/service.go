package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"usinagem_backend/internal/quotes/repository"
	"usinagem_backend/internal/quotes/transport"
	"usinagem_backend/platform/apperr"
	"usinagem_backend/platform/logger"
)

// Quote kinds. A CONTRACT quote is bound to a pricing agreement and resolves
// hour/material prices through it; a SPOT quote prices everything from
// caller-supplied values.
const (
	KindContract = "CONTRACT"
	KindSpot     = "SPOT"
)

// Quote statuses.
const (
	StatusDraft    = "DRAFT"
	StatusSent     = "SENT"
	StatusAccepted = "ACCEPTED"
	StatusCanceled = "CANCELED"
)

const dateLayout = "2006-01-02"

// ResolvedPrice is a price produced by the contract catalog: the unit price,
// its provenance ("specific" or "default"), and the override's unit of
// measure when one matched.
type ResolvedPrice struct {
	Price  decimal.Decimal
	Source string
	UnitID *uuid.UUID
}

// PriceResolver resolves contract-bound prices for quote items. Implemented
// by the contracts context; wired in through an adapter at startup.
type PriceResolver interface {
	ResolveHourPrice(ctx context.Context, contractID, machineID uuid.UUID, variant string) (*ResolvedPrice, error)
	ResolveMaterialPrice(ctx context.Context, contractID, materialID uuid.UUID) (*ResolvedPrice, error)
}

// Service provides business logic for quotes, their item ledger, and totals.
type Service struct {
	repo            repository.Repository
	resolver        PriceResolver
	log             *logger.Logger
	defaultCurrency string
}

// New creates a new quotes service.
func New(repo repository.Repository, resolver PriceResolver, log *logger.Logger, defaultCurrency string) *Service {
	return &Service{repo: repo, resolver: resolver, log: log, defaultCurrency: defaultCurrency}
}

// Create creates a new quote. The kind/contract coupling is enforced here,
// before any item operation is possible: a CONTRACT quote must reference a
// contract and a SPOT quote must not.
func (s *Service) Create(ctx context.Context, req transport.CreateQuoteRequest) (transport.QuoteResponse, error) {
	if err := validateKindCoupling(req.Kind, req.ContractID); err != nil {
		return transport.QuoteResponse{}, err
	}

	q := &repository.Quote{
		ID:         uuid.New(),
		ClientID:   req.ClientID,
		ContractID: req.ContractID,
		Kind:       req.Kind,
		Status:     StatusDraft,
		Currency:   s.defaultCurrency,
		Subtotal:   decimal.Zero,
		Discount:   decimal.Zero,
		Surcharge:  decimal.Zero,
		Notes:      req.Notes,
	}
	if req.Currency != nil {
		q.Currency = *req.Currency
	}
	if req.Discount != nil {
		if req.Discount.IsNegative() {
			return transport.QuoteResponse{}, apperr.Validation("discount must not be negative")
		}
		q.Discount = *req.Discount
	}
	if req.Surcharge != nil {
		if req.Surcharge.IsNegative() {
			return transport.QuoteResponse{}, apperr.Validation("surcharge must not be negative")
		}
		q.Surcharge = *req.Surcharge
	}
	if req.ValidUntil != nil {
		t, err := time.Parse(dateLayout, *req.ValidUntil)
		if err != nil {
			return transport.QuoteResponse{}, apperr.Validation("invalid date: " + *req.ValidUntil)
		}
		q.ValidUntil = &t
	}
	q.Total = quoteTotal(q.Subtotal, q.Discount, q.Surcharge)

	if err := s.repo.CreateQuote(ctx, q); err != nil {
		return transport.QuoteResponse{}, err
	}
	return toQuoteResponse(q), nil
}

// GetByID retrieves a quote by ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.QuoteResponse, error) {
	q, err := s.repo.GetQuote(ctx, id)
	if err != nil {
		return transport.QuoteResponse{}, err
	}
	return toQuoteResponse(q), nil
}

// List retrieves quotes with filters and pagination.
func (s *Service) List(ctx context.Context, req transport.ListQuotesRequest) (transport.QuoteListResponse, error) {
	params := repository.ListParams{
		ClientID:   req.ClientID,
		ContractID: req.ContractID,
		Kind:       req.Kind,
		Status:     req.Status,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}

	result, err := s.repo.ListQuotes(ctx, params)
	if err != nil {
		return transport.QuoteListResponse{}, err
	}

	items := make([]transport.QuoteResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, toQuoteResponse(&result.Items[i]))
	}
	return transport.QuoteListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// Update applies a partial update to a quote header. Kind and contract
// binding are immutable. Discount or surcharge changes re-derive the total
// inside the same transaction that persists them.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateQuoteRequest) (transport.QuoteResponse, error) {
	if req.Discount != nil && req.Discount.IsNegative() {
		return transport.QuoteResponse{}, apperr.Validation("discount must not be negative")
	}
	if req.Surcharge != nil && req.Surcharge.IsNegative() {
		return transport.QuoteResponse{}, apperr.Validation("surcharge must not be negative")
	}

	var out transport.QuoteResponse
	err := s.repo.InQuoteTx(ctx, id, func(tx repository.QuoteTx) error {
		q := tx.Quote()
		if req.Status != nil {
			q.Status = *req.Status
		}
		if req.Currency != nil {
			q.Currency = *req.Currency
		}
		if req.Discount != nil {
			q.Discount = *req.Discount
		}
		if req.Surcharge != nil {
			q.Surcharge = *req.Surcharge
		}
		if req.Notes != nil {
			q.Notes = req.Notes
		}
		if req.ValidUntil != nil {
			t, err := time.Parse(dateLayout, *req.ValidUntil)
			if err != nil {
				return apperr.Validation("invalid date: " + *req.ValidUntil)
			}
			q.ValidUntil = &t
		}
		if err := tx.UpdateQuote(ctx, q); err != nil {
			return err
		}
		if err := s.recomputeTx(ctx, tx); err != nil {
			return err
		}
		out = toQuoteResponse(tx.Quote())
		return nil
	})
	if err != nil {
		return transport.QuoteResponse{}, err
	}
	return out, nil
}

// Delete removes a quote and, through the schema cascade, all of its items.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteQuote(ctx, id)
}

// ListItems lists the line items of a quote.
func (s *Service) ListItems(ctx context.Context, quoteID uuid.UUID) (transport.QuoteItemListResponse, error) {
	if _, err := s.repo.GetQuote(ctx, quoteID); err != nil {
		return transport.QuoteItemListResponse{}, err
	}
	items, err := s.repo.ListItems(ctx, quoteID)
	if err != nil {
		return transport.QuoteItemListResponse{}, err
	}
	out := make([]transport.QuoteItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toItemResponse(&items[i]))
	}
	return transport.QuoteItemListResponse{Items: out, Total: len(out)}, nil
}

// GetItem retrieves one line item of a quote.
func (s *Service) GetItem(ctx context.Context, quoteID, itemID uuid.UUID) (transport.QuoteItemResponse, error) {
	it, err := s.repo.GetItem(ctx, quoteID, itemID)
	if err != nil {
		return transport.QuoteItemResponse{}, err
	}
	return toItemResponse(it), nil
}

func validateKindCoupling(kind string, contractID *uuid.UUID) error {
	switch kind {
	case KindContract:
		if contractID == nil {
			return apperr.Unprocessable("quote kind CONTRACT requires a contract reference")
		}
	case KindSpot:
		if contractID != nil {
			return apperr.Unprocessable("quote kind SPOT must not carry a contract reference")
		}
	default:
		return apperr.Validation("invalid quote kind: " + kind)
	}
	return nil
}

func quoteTotal(subtotal, discount, surcharge decimal.Decimal) decimal.Decimal {
	return roundMoney(subtotal.Sub(discount).Add(surcharge))
}

// roundMoney rounds to 2 decimal places, half away from zero.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func toQuoteResponse(q *repository.Quote) transport.QuoteResponse {
	return transport.QuoteResponse{
		ID:         q.ID,
		ClientID:   q.ClientID,
		ContractID: q.ContractID,
		Kind:       q.Kind,
		Status:     q.Status,
		Currency:   q.Currency,
		Subtotal:   q.Subtotal,
		Discount:   q.Discount,
		Surcharge:  q.Surcharge,
		Total:      q.Total,
		ValidUntil: formatDate(q.ValidUntil),
		Notes:      q.Notes,
		CreatedAt:  q.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  q.UpdatedAt.Format(time.RFC3339),
	}
}

func toItemResponse(it *repository.QuoteItem) transport.QuoteItemResponse {
	return transport.QuoteItemResponse{
		ID:          it.ID,
		QuoteID:     it.QuoteID,
		Kind:        it.Kind,
		MachineID:   it.MachineID,
		HourVariant: it.HourVariant,
		MaterialID:  it.MaterialID,
		Description: it.Description,
		UnitID:      it.UnitID,
		Quantity:    it.Quantity,
		UnitPrice:   it.UnitPrice,
		PriceSource: it.PriceSource,
		LineTotal:   it.LineTotal,
		CreatedAt:   it.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   it.UpdatedAt.Format(time.RFC3339),
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
