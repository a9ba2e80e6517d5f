package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"usinagem_backend/internal/quotes/transport"
	"usinagem_backend/platform/apperr"
)

func TestAddItem_HourOnContractQuoteResolvesDefaultPrice(t *testing.T) {
	repo := newFakeRepo()
	resolver := newFakeResolver()
	svc := newTestService(repo, resolver)

	contractID := uuid.New()
	machineID := uuid.New()
	resolver.hour[hourKey(machineID, "REGULAR")] = ResolvedPrice{Price: dec("50.0"), Source: "default"}
	q := seedQuote(repo, KindContract, &contractID)

	item, err := svc.AddItem(context.Background(), q.ID, transport.ItemSpec{
		Kind:        ItemKindHour,
		MachineID:   &machineID,
		HourVariant: strPtr("REGULAR"),
		Quantity:    decPtr("2"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.UnitPrice.Equal(dec("50")) {
		t.Fatalf("expected unit price 50, got %s", item.UnitPrice)
	}
	if !item.LineTotal.Equal(dec("100")) {
		t.Fatalf("expected line total 100, got %s", item.LineTotal)
	}
	if item.PriceSource == nil || *item.PriceSource != "default" {
		t.Fatalf("expected price source default, got %v", item.PriceSource)
	}

	quote, _ := repo.GetQuote(context.Background(), q.ID)
	if !quote.Subtotal.Equal(dec("100")) {
		t.Fatalf("expected quote subtotal 100, got %s", quote.Subtotal)
	}
	if !quote.Total.Equal(dec("100")) {
		t.Fatalf("expected quote total 100, got %s", quote.Total)
	}
}

func TestAddItem_SpecificOverrideCarriesUnit(t *testing.T) {
	repo := newFakeRepo()
	resolver := newFakeResolver()
	svc := newTestService(repo, resolver)

	contractID := uuid.New()
	machineID := uuid.New()
	unitID := uuid.New()
	resolver.hour[hourKey(machineID, "EXTRA")] = ResolvedPrice{Price: dec("75.25"), Source: "specific", UnitID: &unitID}
	q := seedQuote(repo, KindContract, &contractID)

	item, err := svc.AddItem(context.Background(), q.ID, transport.ItemSpec{
		Kind:        ItemKindHour,
		MachineID:   &machineID,
		HourVariant: strPtr("EXTRA"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// quantity defaults to 1
	if !item.Quantity.Equal(dec("1")) {
		t.Fatalf("expected quantity 1, got %s", item.Quantity)
	}
	if !item.LineTotal.Equal(dec("75.25")) {
		t.Fatalf("expected line total 75.25, got %s", item.LineTotal)
	}
	if item.UnitID == nil || *item.UnitID != unitID {
		t.Fatalf("expected unit %s, got %v", unitID, item.UnitID)
	}
}

func TestAddItem_LineTotalRoundsHalfAwayFromZero(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeResolver())
	q := seedQuote(repo, KindSpot, nil)

	item, err := svc.AddItem(context.Background(), q.ID, transport.ItemSpec{
		Kind:        ItemKindFreeform,
		Description: strPtr("setup fee"),
		Quantity:    decPtr("3"),
		UnitPrice:   decPtr("10.005"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 3 x 10.005 = 30.015 rounds to 30.02
	if !item.LineTotal.Equal(dec("30.02")) {
		t.Fatalf("expected line total 30.02, got %s", item.LineTotal)
	}
}

func TestAddItem_FreeformWithoutPriceFailsAndWritesNothing(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeResolver())
	q := seedQuote(repo, KindSpot, nil)

	_, err := svc.AddItem(context.Background(), q.ID, transport.ItemSpec{
		Kind:        ItemKindFreeform,
		Description: strPtr("rush surcharge"),
	})
	if apperr.GetKind(err) != apperr.KindUnprocessable {
		t.Fatalf("expected unprocessable, got %v", err)
	}
	items, _ := repo.ListItems(context.Background(), q.ID)
	if len(items) != 0 {
		t.Fatalf("expected no persisted items, got %d", len(items))
	}
}

func TestAddItem_HourOnSpotQuoteRequiresSuppliedPrice(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeResolver())
	q := seedQuote(repo, KindSpot, nil)

	machineID := uuid.New()
	_, err := svc.AddItem(context.Background(), q.ID, transport.ItemSpec{
		Kind:        ItemKindHour,
		MachineID:   &machineID,
		HourVariant: strPtr("REGULAR"),
	})
	if apperr.GetKind(err) != apperr.KindUnprocessable {
		t.Fatalf("expected unprocessable, got %v", err)
	}

	item, err := svc.AddItem(context.Background(), q.ID, transport.ItemSpec{
		Kind:        ItemKindHour,
		MachineID:   &machineID,
		HourVariant: strPtr("REGULAR"),
		UnitPrice:   decPtr("90"),
		Quantity:    decPtr("1.5"),
	})
	if err != nil {
		t.Fatalf("unexpected error with supplied price: %v", err)
	}
	if !item.LineTotal.Equal(dec("135")) {
		t.Fatalf("expected line total 135, got %s", item.LineTotal)
	}
	if item.PriceSource != nil {
		t.Fatalf("expected no price source for supplied price, got %v", item.PriceSource)
	}
}

func TestAddItem_UnresolvablePriceWritesNothing(t *testing.T) {
	repo := newFakeRepo()
	resolver := newFakeResolver()
	svc := newTestService(repo, resolver)

	contractID := uuid.New()
	q := seedQuote(repo, KindContract, &contractID)

	_, err := svc.AddItem(context.Background(), q.ID, transport.ItemSpec{
		Kind:       ItemKindMaterial,
		MaterialID: uuidPtr(uuid.New()),
	})
	if apperr.GetKind(err) != apperr.KindUnprocessable {
		t.Fatalf("expected unprocessable, got %v", err)
	}
	items, _ := repo.ListItems(context.Background(), q.ID)
	if len(items) != 0 {
		t.Fatalf("expected no persisted items, got %d", len(items))
	}
	quote, _ := repo.GetQuote(context.Background(), q.ID)
	if !quote.Subtotal.IsZero() {
		t.Fatalf("expected subtotal to stay zero, got %s", quote.Subtotal)
	}
}

func TestAddItem_UnknownKindFails(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeResolver())
	q := seedQuote(repo, KindSpot, nil)

	_, err := svc.AddItem(context.Background(), q.ID, transport.ItemSpec{Kind: "SERVICE"})
	if apperr.GetKind(err) != apperr.KindUnprocessable {
		t.Fatalf("expected unprocessable, got %v", err)
	}
}

func TestAddItem_QuoteNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeResolver())

	_, err := svc.AddItem(context.Background(), uuid.New(), transport.ItemSpec{
		Kind:        ItemKindFreeform,
		Description: strPtr("x"),
		UnitPrice:   decPtr("1"),
	})
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateItem_QuantityChangeKeepsSnapshottedPrice(t *testing.T) {
	repo := newFakeRepo()
	resolver := newFakeResolver()
	svc := newTestService(repo, resolver)

	contractID := uuid.New()
	machineID := uuid.New()
	resolver.hour[hourKey(machineID, "REGULAR")] = ResolvedPrice{Price: dec("50"), Source: "default"}
	q := seedQuote(repo, KindContract, &contractID)

	item, err := svc.AddItem(context.Background(), q.ID, transport.ItemSpec{
		Kind:        ItemKindHour,
		MachineID:   &machineID,
		HourVariant: strPtr("REGULAR"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// catalog changes after the item was priced
	resolver.hour[hourKey(machineID, "REGULAR")] = ResolvedPrice{Price: dec("999"), Source: "default"}

	updated, err := svc.UpdateItem(context.Background(), q.ID, item.ID, transport.ItemPatch{
		Quantity: decPtr("4"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.UnitPrice.Equal(dec("50")) {
		t.Fatalf("expected snapshotted price 50, got %s", updated.UnitPrice)
	}
	if !updated.LineTotal.Equal(dec("200")) {
		t.Fatalf("expected line total 200, got %s", updated.LineTotal)
	}
	quote, _ := repo.GetQuote(context.Background(), q.ID)
	if !quote.Subtotal.Equal(dec("200")) {
		t.Fatalf("expected subtotal 200, got %s", quote.Subtotal)
	}
}

func TestUpdateItem_ResourceKeyChangeReresolvesPrice(t *testing.T) {
	repo := newFakeRepo()
	resolver := newFakeResolver()
	svc := newTestService(repo, resolver)

	contractID := uuid.New()
	machineA := uuid.New()
	machineB := uuid.New()
	resolver.hour[hourKey(machineA, "REGULAR")] = ResolvedPrice{Price: dec("50"), Source: "default"}
	resolver.hour[hourKey(machineB, "REGULAR")] = ResolvedPrice{Price: dec("80"), Source: "specific", UnitID: uuidPtr(uuid.New())}
	q := seedQuote(repo, KindContract, &contractID)

	item, err := svc.AddItem(context.Background(), q.ID, transport.ItemSpec{
		Kind:        ItemKindHour,
		MachineID:   &machineA,
		HourVariant: strPtr("REGULAR"),
		Quantity:    decPtr("2"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.UpdateItem(context.Background(), q.ID, item.ID, transport.ItemPatch{
		MachineID: &machineB,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.UnitPrice.Equal(dec("80")) {
		t.Fatalf("expected re-resolved price 80, got %s", updated.UnitPrice)
	}
	if updated.PriceSource == nil || *updated.PriceSource != "specific" {
		t.Fatalf("expected price source specific, got %v", updated.PriceSource)
	}
	if !updated.LineTotal.Equal(dec("160")) {
		t.Fatalf("expected line total 160, got %s", updated.LineTotal)
	}
}

func TestUpdateItem_KindChangeRequiresFullRespecification(t *testing.T) {
	repo := newFakeRepo()
	resolver := newFakeResolver()
	svc := newTestService(repo, resolver)

	contractID := uuid.New()
	machineID := uuid.New()
	resolver.hour[hourKey(machineID, "REGULAR")] = ResolvedPrice{Price: dec("50"), Source: "default"}
	q := seedQuote(repo, KindContract, &contractID)

	item, err := svc.AddItem(context.Background(), q.ID, transport.ItemSpec{
		Kind:        ItemKindHour,
		MachineID:   &machineID,
		HourVariant: strPtr("REGULAR"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// switching to MATERIAL without a material reference must fail, not
	// resolve against the old machine fields
	_, err = svc.UpdateItem(context.Background(), q.ID, item.ID, transport.ItemPatch{
		Kind: strPtr(ItemKindMaterial),
	})
	if apperr.GetKind(err) != apperr.KindUnprocessable {
		t.Fatalf("expected unprocessable, got %v", err)
	}

	// with the full respecification it succeeds
	materialID := uuid.New()
	resolver.material[materialID] = ResolvedPrice{Price: dec("12.30"), Source: "default"}
	updated, err := svc.UpdateItem(context.Background(), q.ID, item.ID, transport.ItemPatch{
		Kind:       strPtr(ItemKindMaterial),
		MaterialID: &materialID,
	})
	if err != nil {
		t.Fatalf("unexpected error after full respecification: %v", err)
	}
	if updated.Kind != ItemKindMaterial {
		t.Fatalf("expected kind MATERIAL, got %s", updated.Kind)
	}
	if updated.MachineID != nil || updated.HourVariant != nil {
		t.Fatal("expected machine fields to be cleared on kind change")
	}
	if !updated.UnitPrice.Equal(dec("12.30")) {
		t.Fatalf("expected price 12.30, got %s", updated.UnitPrice)
	}
	// quantity carried over from the old item
	if !updated.Quantity.Equal(dec("1")) {
		t.Fatalf("expected quantity 1, got %s", updated.Quantity)
	}
}

func TestUpdateItem_ContractPricedItemRejectsDirectPrice(t *testing.T) {
	repo := newFakeRepo()
	resolver := newFakeResolver()
	svc := newTestService(repo, resolver)

	contractID := uuid.New()
	machineID := uuid.New()
	resolver.hour[hourKey(machineID, "REGULAR")] = ResolvedPrice{Price: dec("50"), Source: "default"}
	q := seedQuote(repo, KindContract, &contractID)

	item, err := svc.AddItem(context.Background(), q.ID, transport.ItemSpec{
		Kind:        ItemKindHour,
		MachineID:   &machineID,
		HourVariant: strPtr("REGULAR"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.UpdateItem(context.Background(), q.ID, item.ID, transport.ItemPatch{
		UnitPrice: decPtr("1"),
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRemoveItem_SubtotalReflectsRemainingItems(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeResolver())
	q := seedQuote(repo, KindSpot, nil)

	first, err := svc.AddItem(context.Background(), q.ID, transport.ItemSpec{
		Kind:        ItemKindFreeform,
		Description: strPtr("machining"),
		UnitPrice:   decPtr("70"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.AddItem(context.Background(), q.ID, transport.ItemSpec{
		Kind:        ItemKindFreeform,
		Description: strPtr("finishing"),
		UnitPrice:   decPtr("30"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	quote, _ := repo.GetQuote(context.Background(), q.ID)
	if !quote.Subtotal.Equal(dec("100")) {
		t.Fatalf("expected subtotal 100, got %s", quote.Subtotal)
	}

	if err := svc.RemoveItem(context.Background(), q.ID, first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	quote, _ = repo.GetQuote(context.Background(), q.ID)
	if !quote.Subtotal.Equal(dec("30")) {
		t.Fatalf("expected subtotal 30 after removal, got %s", quote.Subtotal)
	}

	if err := svc.RemoveItem(context.Background(), q.ID, first.ID); apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found on second removal, got %v", err)
	}
}

func TestItemMutations_TotalsHonorDiscountAndSurcharge(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeResolver())
	q := seedQuote(repo, KindSpot, nil)
	q.Discount = dec("15")
	q.Surcharge = dec("5")

	if _, err := svc.AddItem(context.Background(), q.ID, transport.ItemSpec{
		Kind:        ItemKindFreeform,
		Description: strPtr("batch"),
		Quantity:    decPtr("2"),
		UnitPrice:   decPtr("60"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	quote, _ := repo.GetQuote(context.Background(), q.ID)
	if !quote.Subtotal.Equal(dec("120")) {
		t.Fatalf("expected subtotal 120, got %s", quote.Subtotal)
	}
	if !quote.Total.Equal(dec("110")) {
		t.Fatalf("expected total 110 (120 - 15 + 5), got %s", quote.Total)
	}
}
