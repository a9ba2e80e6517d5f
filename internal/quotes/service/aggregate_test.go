package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"usinagem_backend/internal/quotes/repository"
	"usinagem_backend/internal/quotes/transport"
)

func TestRecompute_IsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeResolver())
	q := seedQuote(repo, KindSpot, nil)
	q.Discount = dec("3")

	if _, err := svc.AddItem(context.Background(), q.ID, transport.ItemSpec{
		Kind:        ItemKindFreeform,
		Description: strPtr("part"),
		Quantity:    decPtr("3"),
		UnitPrice:   decPtr("10.005"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Recompute(context.Background(), q.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, _ := repo.GetQuote(context.Background(), q.ID)

	if err := svc.Recompute(context.Background(), q.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := repo.GetQuote(context.Background(), q.ID)

	if !first.Subtotal.Equal(second.Subtotal) || !first.Total.Equal(second.Total) {
		t.Fatalf("recompute not idempotent: %s/%s then %s/%s",
			first.Subtotal, first.Total, second.Subtotal, second.Total)
	}
	if !second.Subtotal.Equal(dec("30.02")) {
		t.Fatalf("expected subtotal 30.02, got %s", second.Subtotal)
	}
	if !second.Total.Equal(dec("27.02")) {
		t.Fatalf("expected total 27.02, got %s", second.Total)
	}
}

func TestRecompute_MissingQuoteIsNoOp(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeResolver())

	if err := svc.Recompute(context.Background(), uuid.New()); err != nil {
		t.Fatalf("expected silent no-op for missing quote, got %v", err)
	}
}

func TestRecompute_RepairsDriftedTotals(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeResolver())
	q := seedQuote(repo, KindSpot, nil)

	// totals drifted out from under the item set
	q.Subtotal = dec("999")
	q.Total = dec("999")
	repo.items[q.ID] = []repository.QuoteItem{{
		ID: uuid.New(), QuoteID: q.ID, Kind: ItemKindFreeform,
		Quantity: dec("2"), UnitPrice: dec("25"), LineTotal: dec("50"),
	}}

	if err := svc.Recompute(context.Background(), q.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repaired, _ := repo.GetQuote(context.Background(), q.ID)
	if !repaired.Subtotal.Equal(dec("50")) {
		t.Fatalf("expected repaired subtotal 50, got %s", repaired.Subtotal)
	}
	if !repaired.Total.Equal(dec("50")) {
		t.Fatalf("expected repaired total 50, got %s", repaired.Total)
	}
}
