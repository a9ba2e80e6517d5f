package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"usinagem_backend/platform/apperr"
)

// Price sources reported by the resolver.
const (
	SourceSpecific = "specific"
	SourceDefault  = "default"
)

// ResolvedPrice is the outcome of a price lookup: the unit price, where it
// came from, and the override's unit of measure when one matched. Default
// prices carry no unit because the contract-wide fallback is a bare value.
type ResolvedPrice struct {
	Price  decimal.Decimal
	Source string
	UnitID *uuid.UUID
}

// ResolveHourPrice resolves the machine-hour price for (contract, machine,
// variant). A specific override wins; otherwise the contract's per-variant
// default applies. When neither exists the price is unresolvable and the
// caller must not invent one.
func (s *Service) ResolveHourPrice(ctx context.Context, contractID, machineID uuid.UUID, variant string) (*ResolvedPrice, error) {

	if !ValidVariant(variant) {
		return nil, apperr.Validation("invalid hour variant: "+variant)
	}

	contract, err := s.repo.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	specific, err := s.repo.FindHourPrice(ctx, contractID, machineID, variant)
	switch {
	case err == nil:
		unitID := specific.UnitID
		return &ResolvedPrice{Price: specific.HourPrice, Source: SourceSpecific, UnitID: &unitID}, nil
	case apperr.GetKind(err) != apperr.KindNotFound:
		return nil, err
	}

	var fallback *decimal.Decimal
	switch variant {
	case VariantRegular:
		fallback = contract.HourRegularDefault
	case VariantExtra:
		fallback = contract.HourExtraDefault
	case VariantHoliday:
		fallback = contract.HourHolidayDefault
	}
	if fallback == nil {
		return nil, apperr.Unprocessable("no hour price defined for variant "+variant+" (no override and no contract default)")
	}
	return &ResolvedPrice{Price: *fallback, Source: SourceDefault}, nil
}

// ResolveMaterialPrice resolves the per-kg material price for (contract,
// material), falling back to the contract's material default.
func (s *Service) ResolveMaterialPrice(ctx context.Context, contractID, materialID uuid.UUID) (*ResolvedPrice, error) {

	contract, err := s.repo.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	specific, err := s.repo.FindMaterialPrice(ctx, contractID, materialID)
	switch {
	case err == nil:
		unitID := specific.UnitID
		return &ResolvedPrice{Price: specific.UnitPrice, Source: SourceSpecific, UnitID: &unitID}, nil
	case apperr.GetKind(err) != apperr.KindNotFound:
		return nil, err
	}

	if contract.MaterialKgDefault == nil {
		return nil, apperr.Unprocessable("no material price defined (no override and no contract default)")
	}
	return &ResolvedPrice{Price: *contract.MaterialKgDefault, Source: SourceDefault}, nil
}
