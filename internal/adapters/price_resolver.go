// Package adapters wires bounded contexts together without letting them
// import each other directly.
package adapters

import (
	"context"

	"github.com/google/uuid"

	contractsvc "usinagem_backend/internal/contracts/service"
	quotesvc "usinagem_backend/internal/quotes/service"
)

// ContractPriceResolver adapts the contracts price catalog to the resolver
// interface the quote ledger depends on.
type ContractPriceResolver struct {
	svc *contractsvc.Service
}

func NewContractPriceResolver(svc *contractsvc.Service) *ContractPriceResolver {
	return &ContractPriceResolver{svc: svc}
}

func (a *ContractPriceResolver) ResolveHourPrice(ctx context.Context, contractID, machineID uuid.UUID, variant string) (*quotesvc.ResolvedPrice, error) {
	resolved, err := a.svc.ResolveHourPrice(ctx, contractID, machineID, variant)
	if err != nil {
		return nil, err
	}
	return &quotesvc.ResolvedPrice{Price: resolved.Price, Source: resolved.Source, UnitID: resolved.UnitID}, nil
}

func (a *ContractPriceResolver) ResolveMaterialPrice(ctx context.Context, contractID, materialID uuid.UUID) (*quotesvc.ResolvedPrice, error) {
	resolved, err := a.svc.ResolveMaterialPrice(ctx, contractID, materialID)
	if err != nil {
		return nil, err
	}
	return &quotesvc.ResolvedPrice{Price: resolved.Price, Source: resolved.Source, UnitID: resolved.UnitID}, nil
}

// Compile-time check against the ledger's dependency.
var _ quotesvc.PriceResolver = (*ContractPriceResolver)(nil)
