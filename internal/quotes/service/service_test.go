package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"usinagem_backend/internal/quotes/repository"
	"usinagem_backend/internal/quotes/transport"
	"usinagem_backend/platform/apperr"
	"usinagem_backend/platform/logger"
)

// fakeRepo is an in-memory Repository. InQuoteTx works on copies and commits
// only when fn succeeds, mirroring the transactional contract.
type fakeRepo struct {
	quotes map[uuid.UUID]*repository.Quote
	items  map[uuid.UUID][]repository.QuoteItem
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		quotes: make(map[uuid.UUID]*repository.Quote),
		items:  make(map[uuid.UUID][]repository.QuoteItem),
	}
}

func (f *fakeRepo) CreateQuote(_ context.Context, q *repository.Quote) error {
	cp := *q
	f.quotes[q.ID] = &cp
	return nil
}

func (f *fakeRepo) GetQuote(_ context.Context, id uuid.UUID) (*repository.Quote, error) {
	q, ok := f.quotes[id]
	if !ok {
		return nil, apperr.NotFound("quote not found")
	}
	cp := *q
	return &cp, nil
}

func (f *fakeRepo) DeleteQuote(_ context.Context, id uuid.UUID) error {
	if _, ok := f.quotes[id]; !ok {
		return apperr.NotFound("quote not found")
	}
	delete(f.quotes, id)
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) ListQuotes(_ context.Context, params repository.ListParams) (*repository.ListResult, error) {
	items := make([]repository.Quote, 0, len(f.quotes))
	for _, q := range f.quotes {
		items = append(items, *q)
	}
	return &repository.ListResult{Items: items, Total: len(items), Page: params.Page, PageSize: params.PageSize, TotalPages: 1}, nil
}

func (f *fakeRepo) ListQuoteIDs(_ context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(f.quotes))
	for id := range f.quotes {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeRepo) ListItems(_ context.Context, quoteID uuid.UUID) ([]repository.QuoteItem, error) {
	return append([]repository.QuoteItem(nil), f.items[quoteID]...), nil
}

func (f *fakeRepo) GetItem(_ context.Context, quoteID, itemID uuid.UUID) (*repository.QuoteItem, error) {
	for _, it := range f.items[quoteID] {
		if it.ID == itemID {
			cp := it
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("quote item not found")
}

func (f *fakeRepo) InQuoteTx(_ context.Context, quoteID uuid.UUID, fn func(tx repository.QuoteTx) error) error {
	q, ok := f.quotes[quoteID]
	if !ok {
		return apperr.NotFound("quote not found")
	}
	cp := *q
	tx := &fakeTx{
		quote: &cp,
		items: append([]repository.QuoteItem(nil), f.items[quoteID]...),
	}
	if err := fn(tx); err != nil {
		return err
	}
	f.quotes[quoteID] = tx.quote
	f.items[quoteID] = tx.items
	return nil
}

type fakeTx struct {
	quote *repository.Quote
	items []repository.QuoteItem
}

func (t *fakeTx) Quote() *repository.Quote {
	return t.quote
}

func (t *fakeTx) GetItem(_ context.Context, itemID uuid.UUID) (*repository.QuoteItem, error) {
	for _, it := range t.items {
		if it.ID == itemID {
			cp := it
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("quote item not found")
}

func (t *fakeTx) InsertItem(_ context.Context, item *repository.QuoteItem) error {
	t.items = append(t.items, *item)
	return nil
}

func (t *fakeTx) UpdateItem(_ context.Context, item *repository.QuoteItem) error {
	for i := range t.items {
		if t.items[i].ID == item.ID {
			t.items[i] = *item
			return nil
		}
	}
	return apperr.NotFound("quote item not found")
}

func (t *fakeTx) DeleteItem(_ context.Context, itemID uuid.UUID) error {
	for i := range t.items {
		if t.items[i].ID == itemID {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("quote item not found")
}

func (t *fakeTx) SumItemTotals(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, it := range t.items {
		sum = sum.Add(it.LineTotal)
	}
	return sum, nil
}

func (t *fakeTx) UpdateQuote(_ context.Context, q *repository.Quote) error {
	t.quote = q
	return nil
}

func (t *fakeTx) UpdateTotals(_ context.Context, subtotal, total decimal.Decimal) error {
	t.quote.Subtotal = subtotal
	t.quote.Total = total
	return nil
}

// fakeResolver serves canned contract prices, keyed by machine+variant or
// material. Misses fail as unresolvable, like the real catalog.
type fakeResolver struct {
	hour     map[string]ResolvedPrice
	material map[uuid.UUID]ResolvedPrice
	err      error
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		hour:     make(map[string]ResolvedPrice),
		material: make(map[uuid.UUID]ResolvedPrice),
	}
}

func hourKey(machineID uuid.UUID, variant string) string {
	return machineID.String() + "|" + variant
}

func (f *fakeResolver) ResolveHourPrice(_ context.Context, _, machineID uuid.UUID, variant string) (*ResolvedPrice, error) {
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.hour[hourKey(machineID, variant)]
	if !ok {
		return nil, apperr.Unprocessable("no hour price defined")
	}
	return &r, nil
}

func (f *fakeResolver) ResolveMaterialPrice(_ context.Context, _, materialID uuid.UUID) (*ResolvedPrice, error) {
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.material[materialID]
	if !ok {
		return nil, apperr.Unprocessable("no material price defined")
	}
	return &r, nil
}

func newTestService(repo repository.Repository, resolver PriceResolver) *Service {
	return New(repo, resolver, logger.New("test"), "BRL")
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func uuidPtr(id uuid.UUID) *uuid.UUID {
	return &id
}

func seedQuote(repo *fakeRepo, kind string, contractID *uuid.UUID) *repository.Quote {
	q := &repository.Quote{
		ID:         uuid.New(),
		ClientID:   uuid.New(),
		ContractID: contractID,
		Kind:       kind,
		Status:     StatusDraft,
		Currency:   "BRL",
		Subtotal:   decimal.Zero,
		Discount:   decimal.Zero,
		Surcharge:  decimal.Zero,
		Total:      decimal.Zero,
	}
	repo.quotes[q.ID] = q
	return q
}

func TestCreateQuote_ContractKindRequiresContractReference(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeResolver())

	_, err := svc.Create(context.Background(), transport.CreateQuoteRequest{
		ClientID: uuid.New(),
		Kind:     KindContract,
	})
	if apperr.GetKind(err) != apperr.KindUnprocessable {
		t.Fatalf("expected unprocessable, got %v", err)
	}
}

func TestCreateQuote_SpotKindRejectsContractReference(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeResolver())

	contractID := uuid.New()
	_, err := svc.Create(context.Background(), transport.CreateQuoteRequest{
		ClientID:   uuid.New(),
		Kind:       KindSpot,
		ContractID: &contractID,
	})
	if apperr.GetKind(err) != apperr.KindUnprocessable {
		t.Fatalf("expected unprocessable, got %v", err)
	}
}

func TestCreateQuote_StartsAsDraftWithZeroTotals(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeResolver())

	contractID := uuid.New()
	resp, err := svc.Create(context.Background(), transport.CreateQuoteRequest{
		ClientID:   uuid.New(),
		Kind:       KindContract,
		ContractID: &contractID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != StatusDraft {
		t.Fatalf("expected status DRAFT, got %s", resp.Status)
	}
	if !resp.Subtotal.IsZero() || !resp.Total.IsZero() {
		t.Fatalf("expected zero totals, got subtotal=%s total=%s", resp.Subtotal, resp.Total)
	}
	if resp.Currency != "BRL" {
		t.Fatalf("expected currency BRL, got %s", resp.Currency)
	}
}

func TestUpdateQuote_DiscountChangeRederivesTotal(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeResolver())
	q := seedQuote(repo, KindSpot, nil)
	q.Subtotal = dec("100")
	q.Total = dec("100")
	repo.items[q.ID] = []repository.QuoteItem{{
		ID: uuid.New(), QuoteID: q.ID, Kind: ItemKindFreeform,
		Quantity: dec("1"), UnitPrice: dec("100"), LineTotal: dec("100"),
	}}

	resp, err := svc.Update(context.Background(), q.ID, transport.UpdateQuoteRequest{
		Discount:  decPtr("10"),
		Surcharge: decPtr("2.50"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Subtotal.Equal(dec("100")) {
		t.Fatalf("expected subtotal 100, got %s", resp.Subtotal)
	}
	if !resp.Total.Equal(dec("92.50")) {
		t.Fatalf("expected total 92.50, got %s", resp.Total)
	}
}

func TestUpdateQuote_RejectsNegativeDiscount(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeResolver())
	q := seedQuote(repo, KindSpot, nil)

	_, err := svc.Update(context.Background(), q.ID, transport.UpdateQuoteRequest{
		Discount: decPtr("-1"),
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
