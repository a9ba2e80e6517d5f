package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"usinagem_backend/internal/quotes/repository"
	"usinagem_backend/internal/quotes/transport"
	"usinagem_backend/platform/apperr"
)

// Item kinds.
const (
	ItemKindHour     = "HOUR"
	ItemKindMaterial = "MATERIAL"
	ItemKindFreeform = "FREEFORM"
)

// AddItem validates and prices a new line item, persists it, and recomputes
// the owning quote's totals, all inside one per-quote transaction. If pricing
// fails nothing is written.
func (s *Service) AddItem(ctx context.Context, quoteID uuid.UUID, spec transport.ItemSpec) (transport.QuoteItemResponse, error) {
	var out transport.QuoteItemResponse
	err := s.repo.InQuoteTx(ctx, quoteID, func(tx repository.QuoteTx) error {
		item, err := s.buildItem(ctx, tx.Quote(), spec)
		if err != nil {
			return err
		}
		item.ID = uuid.New()
		item.QuoteID = quoteID

		if err := tx.InsertItem(ctx, item); err != nil {
			return err
		}
		if err := s.recomputeTx(ctx, tx); err != nil {
			return err
		}
		out = toItemResponse(item)
		return nil
	})
	if err != nil {
		return transport.QuoteItemResponse{}, err
	}
	return out, nil
}

// UpdateItem applies a partial update to a line item. Changing the item kind
// requires respecifying every field the new kind depends on; the old item's
// fields are never silently merged into the new kind's pricing. For an
// unchanged kind, resource-key changes trigger re-resolution on CONTRACT
// quotes, while unrelated changes keep the snapshotted price.
func (s *Service) UpdateItem(ctx context.Context, quoteID, itemID uuid.UUID, patch transport.ItemPatch) (transport.QuoteItemResponse, error) {
	var out transport.QuoteItemResponse
	err := s.repo.InQuoteTx(ctx, quoteID, func(tx repository.QuoteTx) error {
		existing, err := tx.GetItem(ctx, itemID)
		if err != nil {
			return err
		}

		var updated *repository.QuoteItem
		if patch.Kind != nil && *patch.Kind != existing.Kind {
			updated, err = s.rebuildItem(ctx, tx.Quote(), existing, patch)
		} else {
			updated, err = s.mergeItem(ctx, tx.Quote(), existing, patch)
		}
		if err != nil {
			return err
		}

		if err := tx.UpdateItem(ctx, updated); err != nil {
			return err
		}
		if err := s.recomputeTx(ctx, tx); err != nil {
			return err
		}
		out = toItemResponse(updated)
		return nil
	})
	if err != nil {
		return transport.QuoteItemResponse{}, err
	}
	return out, nil
}

// RemoveItem deletes a line item and recomputes the owning quote's totals.
func (s *Service) RemoveItem(ctx context.Context, quoteID, itemID uuid.UUID) error {
	return s.repo.InQuoteTx(ctx, quoteID, func(tx repository.QuoteTx) error {
		if err := tx.DeleteItem(ctx, itemID); err != nil {
			return err
		}
		return s.recomputeTx(ctx, tx)
	})
}

// buildItem validates an item spec against the owning quote's kind and
// produces a fully priced item. HOUR and MATERIAL items on CONTRACT quotes
// resolve their price through the contract catalog; on SPOT quotes the
// caller must supply one. FREEFORM items always carry a caller price.
func (s *Service) buildItem(ctx context.Context, q *repository.Quote, spec transport.ItemSpec) (*repository.QuoteItem, error) {
	qty := decimal.NewFromInt(1)
	if spec.Quantity != nil {
		if spec.Quantity.IsNegative() {
			return nil, apperr.Validation("quantity must not be negative")
		}
		qty = *spec.Quantity
	}

	item := &repository.QuoteItem{
		Kind:        spec.Kind,
		Description: spec.Description,
		UnitID:      spec.UnitID,
		Quantity:    qty,
	}

	switch spec.Kind {
	case ItemKindHour:
		if spec.MachineID == nil || spec.HourVariant == nil {
			return nil, apperr.Unprocessable("HOUR items require a machine reference and an hour variant")
		}
		item.MachineID = spec.MachineID
		item.HourVariant = spec.HourVariant
		if q.Kind == KindContract {
			resolved, err := s.resolver.ResolveHourPrice(ctx, *q.ContractID, *spec.MachineID, *spec.HourVariant)
			if err != nil {
				return nil, err
			}
			applyResolvedPrice(item, resolved)
		} else if err := applySuppliedPrice(item, spec.UnitPrice, "HOUR items on SPOT quotes require a unit price"); err != nil {
			return nil, err
		}

	case ItemKindMaterial:
		if spec.MaterialID == nil {
			return nil, apperr.Unprocessable("MATERIAL items require a material reference")
		}
		item.MaterialID = spec.MaterialID
		if q.Kind == KindContract {
			resolved, err := s.resolver.ResolveMaterialPrice(ctx, *q.ContractID, *spec.MaterialID)
			if err != nil {
				return nil, err
			}
			applyResolvedPrice(item, resolved)
		} else if err := applySuppliedPrice(item, spec.UnitPrice, "MATERIAL items on SPOT quotes require a unit price"); err != nil {
			return nil, err
		}

	case ItemKindFreeform:
		if spec.Description == nil || *spec.Description == "" {
			return nil, apperr.Unprocessable("FREEFORM items require a description")
		}
		if err := applySuppliedPrice(item, spec.UnitPrice, "FREEFORM items require a unit price"); err != nil {
			return nil, err
		}

	default:
		return nil, apperr.Unprocessable("invalid item kind: " + spec.Kind)
	}

	item.LineTotal = roundMoney(item.Quantity.Mul(item.UnitPrice))
	return item, nil
}

// rebuildItem handles a kind change: kind-dependent fields come exclusively
// from the patch, so a missing mandatory field fails rather than resolving
// against the old kind's stale references. Quantity carries over unless
// re-specified.
func (s *Service) rebuildItem(ctx context.Context, q *repository.Quote, existing *repository.QuoteItem, patch transport.ItemPatch) (*repository.QuoteItem, error) {
	spec := transport.ItemSpec{
		Kind:        *patch.Kind,
		MachineID:   patch.MachineID,
		HourVariant: patch.HourVariant,
		MaterialID:  patch.MaterialID,
		Description: patch.Description,
		UnitID:      patch.UnitID,
		Quantity:    patch.Quantity,
		UnitPrice:   patch.UnitPrice,
	}
	if spec.Quantity == nil {
		spec.Quantity = &existing.Quantity
	}

	item, err := s.buildItem(ctx, q, spec)
	if err != nil {
		return nil, err
	}
	item.ID = existing.ID
	item.QuoteID = existing.QuoteID
	item.CreatedAt = existing.CreatedAt
	return item, nil
}

// mergeItem handles a same-kind update. Resource-key changes re-price the
// item; everything else leaves the snapshotted price untouched.
func (s *Service) mergeItem(ctx context.Context, q *repository.Quote, existing *repository.QuoteItem, patch transport.ItemPatch) (*repository.QuoteItem, error) {
	reprice := false

	switch existing.Kind {
	case ItemKindHour:
		if patch.MachineID != nil && (existing.MachineID == nil || *patch.MachineID != *existing.MachineID) {
			existing.MachineID = patch.MachineID
			reprice = true
		}
		if patch.HourVariant != nil && (existing.HourVariant == nil || *patch.HourVariant != *existing.HourVariant) {
			existing.HourVariant = patch.HourVariant
			reprice = true
		}
	case ItemKindMaterial:
		if patch.MaterialID != nil && (existing.MaterialID == nil || *patch.MaterialID != *existing.MaterialID) {
			existing.MaterialID = patch.MaterialID
			reprice = true
		}
	}

	if patch.Description != nil {
		if existing.Kind == ItemKindFreeform && *patch.Description == "" {
			return nil, apperr.Unprocessable("FREEFORM items require a description")
		}
		existing.Description = patch.Description
	}
	if patch.UnitID != nil {
		existing.UnitID = patch.UnitID
	}
	if patch.Quantity != nil {
		if patch.Quantity.IsNegative() {
			return nil, apperr.Validation("quantity must not be negative")
		}
		existing.Quantity = *patch.Quantity
	}

	contractPriced := q.Kind == KindContract && existing.Kind != ItemKindFreeform
	if patch.UnitPrice != nil {
		if contractPriced {
			return nil, apperr.Validation("unit price of contract-priced items is resolved from the contract and cannot be set directly")
		}
		if patch.UnitPrice.IsNegative() {
			return nil, apperr.Validation("unit price must not be negative")
		}
		existing.UnitPrice = *patch.UnitPrice
		existing.PriceSource = nil
	}

	if reprice && contractPriced {
		var resolved *ResolvedPrice
		var err error
		switch existing.Kind {
		case ItemKindHour:
			resolved, err = s.resolver.ResolveHourPrice(ctx, *q.ContractID, *existing.MachineID, *existing.HourVariant)
		case ItemKindMaterial:
			resolved, err = s.resolver.ResolveMaterialPrice(ctx, *q.ContractID, *existing.MaterialID)
		}
		if err != nil {
			return nil, err
		}
		if patch.UnitID != nil {
			// keep the caller's unit, take only the price
			src := resolved.Source
			existing.UnitPrice = resolved.Price
			existing.PriceSource = &src
		} else {
			existing.UnitID = nil
			applyResolvedPrice(existing, resolved)
		}
	}

	existing.LineTotal = roundMoney(existing.Quantity.Mul(existing.UnitPrice))
	return existing, nil
}

func applyResolvedPrice(item *repository.QuoteItem, resolved *ResolvedPrice) {
	item.UnitPrice = resolved.Price
	src := resolved.Source
	item.PriceSource = &src
	if item.UnitID == nil {
		item.UnitID = resolved.UnitID
	}
}

func applySuppliedPrice(item *repository.QuoteItem, price *decimal.Decimal, requiredMsg string) error {
	if price == nil {
		return apperr.Unprocessable(requiredMsg)
	}
	if price.IsNegative() {
		return apperr.Validation("unit price must not be negative")
	}
	item.UnitPrice = *price
	item.PriceSource = nil
	return nil
}
