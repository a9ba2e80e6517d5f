package service

import (
	"context"

	"github.com/google/uuid"

	"usinagem_backend/internal/quotes/repository"
	"usinagem_backend/platform/apperr"
)

// recomputeTx re-derives subtotal and total from the quote's live item set
// inside an already-open per-quote transaction. Idempotent: with no item
// change between two calls the persisted totals are identical.
func (s *Service) recomputeTx(ctx context.Context, tx repository.QuoteTx) error {
	subtotal, err := tx.SumItemTotals(ctx)
	if err != nil {
		return err
	}
	subtotal = roundMoney(subtotal)
	q := tx.Quote()
	return tx.UpdateTotals(ctx, subtotal, quoteTotal(subtotal, q.Discount, q.Surcharge))
}

// Recompute re-derives one quote's totals in its own transaction. Meant for
// repair and backfill tooling; item mutations recompute transitively and do
// not call this. Best-effort: a quote deleted concurrently is a no-op, since
// there is nothing left whose totals could drift.
func (s *Service) Recompute(ctx context.Context, quoteID uuid.UUID) error {
	err := s.repo.InQuoteTx(ctx, quoteID, func(tx repository.QuoteTx) error {
		return s.recomputeTx(ctx, tx)
	})
	if apperr.GetKind(err) == apperr.KindNotFound {
		return nil
	}
	return err
}
