package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"usinagem_backend/internal/contracts/repository"
	"usinagem_backend/platform/apperr"
	"usinagem_backend/platform/logger"
)

type fakeRepo struct {
	contracts      map[uuid.UUID]*repository.Contract
	hourPrices     []repository.MachineHourPrice
	materialPrices []repository.MaterialPrice
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{contracts: make(map[uuid.UUID]*repository.Contract)}
}

func (f *fakeRepo) CreateContract(_ context.Context, c *repository.Contract) error {
	f.contracts[c.ID] = c
	return nil
}

func (f *fakeRepo) GetContract(_ context.Context, id uuid.UUID) (*repository.Contract, error) {
	c, ok := f.contracts[id]
	if !ok {
		return nil, apperr.NotFound("contract not found")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepo) UpdateContract(_ context.Context, c *repository.Contract) error {
	if _, ok := f.contracts[c.ID]; !ok {
		return apperr.NotFound("contract not found")
	}
	f.contracts[c.ID] = c
	return nil
}

func (f *fakeRepo) DeleteContract(_ context.Context, id uuid.UUID) error {
	if _, ok := f.contracts[id]; !ok {
		return apperr.NotFound("contract not found")
	}
	delete(f.contracts, id)
	return nil
}

func (f *fakeRepo) ListContracts(_ context.Context, params repository.ListParams) (*repository.ListResult, error) {
	items := make([]repository.Contract, 0, len(f.contracts))
	for _, c := range f.contracts {
		items = append(items, *c)
	}
	return &repository.ListResult{Items: items, Total: len(items), Page: params.Page, PageSize: params.PageSize, TotalPages: 1}, nil
}

func (f *fakeRepo) CreateHourPrice(_ context.Context, p *repository.MachineHourPrice) error {
	for _, existing := range f.hourPrices {
		if existing.ContractID == p.ContractID && existing.MachineID == p.MachineID && existing.Variant == p.Variant {
			return apperr.Conflict("hour price already exists")
		}
	}
	f.hourPrices = append(f.hourPrices, *p)
	return nil
}

func (f *fakeRepo) UpdateHourPrice(_ context.Context, p *repository.MachineHourPrice) error {
	for i := range f.hourPrices {
		if f.hourPrices[i].ID == p.ID {
			f.hourPrices[i] = *p
			return nil
		}
	}
	return apperr.NotFound("hour price not found")
}

func (f *fakeRepo) DeleteHourPrice(_ context.Context, contractID, id uuid.UUID) error {
	for i := range f.hourPrices {
		if f.hourPrices[i].ID == id && f.hourPrices[i].ContractID == contractID {
			f.hourPrices = append(f.hourPrices[:i], f.hourPrices[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("hour price not found")
}

func (f *fakeRepo) ListHourPrices(_ context.Context, contractID uuid.UUID) ([]repository.MachineHourPrice, error) {
	var out []repository.MachineHourPrice
	for _, p := range f.hourPrices {
		if p.ContractID == contractID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindHourPrice(_ context.Context, contractID, machineID uuid.UUID, variant string) (*repository.MachineHourPrice, error) {
	for _, p := range f.hourPrices {
		if p.ContractID == contractID && p.MachineID == machineID && p.Variant == variant {
			cp := p
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("hour price not found")
}

func (f *fakeRepo) CreateMaterialPrice(_ context.Context, p *repository.MaterialPrice) error {
	for _, existing := range f.materialPrices {
		if existing.ContractID == p.ContractID && existing.MaterialID == p.MaterialID {
			return apperr.Conflict("material price already exists")
		}
	}
	f.materialPrices = append(f.materialPrices, *p)
	return nil
}

func (f *fakeRepo) UpdateMaterialPrice(_ context.Context, p *repository.MaterialPrice) error {
	for i := range f.materialPrices {
		if f.materialPrices[i].ID == p.ID {
			f.materialPrices[i] = *p
			return nil
		}
	}
	return apperr.NotFound("material price not found")
}

func (f *fakeRepo) DeleteMaterialPrice(_ context.Context, contractID, id uuid.UUID) error {
	for i := range f.materialPrices {
		if f.materialPrices[i].ID == id && f.materialPrices[i].ContractID == contractID {
			f.materialPrices = append(f.materialPrices[:i], f.materialPrices[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("material price not found")
}

func (f *fakeRepo) ListMaterialPrices(_ context.Context, contractID uuid.UUID) ([]repository.MaterialPrice, error) {
	var out []repository.MaterialPrice
	for _, p := range f.materialPrices {
		if p.ContractID == contractID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindMaterialPrice(_ context.Context, contractID, materialID uuid.UUID) (*repository.MaterialPrice, error) {
	for _, p := range f.materialPrices {
		if p.ContractID == contractID && p.MaterialID == materialID {
			cp := p
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("material price not found")
}

func newTestService(repo repository.Repository) *Service {
	return New(repo, logger.New("test"), "BRL")
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

func seedContract(repo *fakeRepo) *repository.Contract {
	c := &repository.Contract{
		ID:       uuid.New(),
		ClientID: uuid.New(),
		Currency: "BRL",
		Active:   true,
	}
	repo.contracts[c.ID] = c
	return c
}

func TestResolveHourPrice_SpecificOverrideWins(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	contract := seedContract(repo)
	contract.HourRegularDefault = decPtr("50")

	machineID := uuid.New()
	unitID := uuid.New()
	repo.hourPrices = append(repo.hourPrices, repository.MachineHourPrice{
		ID:         uuid.New(),
		ContractID: contract.ID,
		MachineID:  machineID,
		Variant:    VariantRegular,
		HourPrice:  dec("120.50"),
		UnitID:     unitID,
	})

	resolved, err := svc.ResolveHourPrice(context.Background(), contract.ID, machineID, VariantRegular)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved.Price.Equal(dec("120.50")) {
		t.Fatalf("expected price 120.50, got %s", resolved.Price)
	}
	if resolved.Source != SourceSpecific {
		t.Fatalf("expected source %q, got %q", SourceSpecific, resolved.Source)
	}
	if resolved.UnitID == nil || *resolved.UnitID != unitID {
		t.Fatalf("expected unit %s, got %v", unitID, resolved.UnitID)
	}
}

func TestResolveHourPrice_FallsBackToContractDefault(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	contract := seedContract(repo)
	contract.HourRegularDefault = decPtr("50.0")

	resolved, err := svc.ResolveHourPrice(context.Background(), contract.ID, uuid.New(), VariantRegular)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved.Price.Equal(dec("50")) {
		t.Fatalf("expected price 50, got %s", resolved.Price)
	}
	if resolved.Source != SourceDefault {
		t.Fatalf("expected source %q, got %q", SourceDefault, resolved.Source)
	}
	if resolved.UnitID != nil {
		t.Fatalf("expected no unit for default price, got %v", resolved.UnitID)
	}
}

func TestResolveHourPrice_VariantsFallBackIndependently(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	contract := seedContract(repo)
	contract.HourExtraDefault = decPtr("75")
	contract.HourHolidayDefault = decPtr("150")

	machineID := uuid.New()

	extra, err := svc.ResolveHourPrice(context.Background(), contract.ID, machineID, VariantExtra)
	if err != nil {
		t.Fatalf("unexpected error for EXTRA: %v", err)
	}
	if !extra.Price.Equal(dec("75")) {
		t.Fatalf("expected EXTRA price 75, got %s", extra.Price)
	}

	holiday, err := svc.ResolveHourPrice(context.Background(), contract.ID, machineID, VariantHoliday)
	if err != nil {
		t.Fatalf("unexpected error for FERIADO: %v", err)
	}
	if !holiday.Price.Equal(dec("150")) {
		t.Fatalf("expected FERIADO price 150, got %s", holiday.Price)
	}

	// REGULAR has no default on this contract, so it must not borrow
	// another variant's fallback.
	_, err = svc.ResolveHourPrice(context.Background(), contract.ID, machineID, VariantRegular)
	if apperr.GetKind(err) != apperr.KindUnprocessable {
		t.Fatalf("expected unprocessable for REGULAR, got %v", err)
	}
}

func TestResolveHourPrice_UnresolvableWhenNoOverrideAndNoDefault(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	contract := seedContract(repo)

	_, err := svc.ResolveHourPrice(context.Background(), contract.ID, uuid.New(), VariantRegular)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if apperr.GetKind(err) != apperr.KindUnprocessable {
		t.Fatalf("expected kind unprocessable, got %v", apperr.GetKind(err))
	}
}

func TestResolveHourPrice_InvalidVariant(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	contract := seedContract(repo)

	_, err := svc.ResolveHourPrice(context.Background(), contract.ID, uuid.New(), "NOTURNO")
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected kind validation, got %v", err)
	}
}

func TestResolveHourPrice_ContractNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.ResolveHourPrice(context.Background(), uuid.New(), uuid.New(), VariantRegular)
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected kind not found, got %v", err)
	}
}

func TestResolveMaterialPrice_SpecificOverrideWins(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	contract := seedContract(repo)
	contract.MaterialKgDefault = decPtr("12")

	materialID := uuid.New()
	unitID := uuid.New()
	repo.materialPrices = append(repo.materialPrices, repository.MaterialPrice{
		ID:         uuid.New(),
		ContractID: contract.ID,
		MaterialID: materialID,
		UnitPrice:  dec("18.75"),
		UnitID:     unitID,
	})

	resolved, err := svc.ResolveMaterialPrice(context.Background(), contract.ID, materialID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved.Price.Equal(dec("18.75")) {
		t.Fatalf("expected price 18.75, got %s", resolved.Price)
	}
	if resolved.Source != SourceSpecific {
		t.Fatalf("expected source %q, got %q", SourceSpecific, resolved.Source)
	}
}

func TestResolveMaterialPrice_FallsBackToContractDefault(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	contract := seedContract(repo)
	contract.MaterialKgDefault = decPtr("12.30")

	resolved, err := svc.ResolveMaterialPrice(context.Background(), contract.ID, uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved.Price.Equal(dec("12.30")) {
		t.Fatalf("expected price 12.30, got %s", resolved.Price)
	}
	if resolved.Source != SourceDefault {
		t.Fatalf("expected source %q, got %q", SourceDefault, resolved.Source)
	}
	if resolved.UnitID != nil {
		t.Fatalf("expected no unit for default price, got %v", resolved.UnitID)
	}
}

func TestResolveMaterialPrice_Unresolvable(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	contract := seedContract(repo)

	_, err := svc.ResolveMaterialPrice(context.Background(), contract.ID, uuid.New())
	if apperr.GetKind(err) != apperr.KindUnprocessable {
		t.Fatalf("expected kind unprocessable, got %v", err)
	}
}
