package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"usinagem_backend/internal/contracts/transport"
	"usinagem_backend/platform/apperr"
)

func TestCreateContract_DefaultsCurrencyAndActive(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background(), transport.CreateContractRequest{
		ClientID:           uuid.New(),
		HourRegularDefault: decPtr("50"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Currency != "BRL" {
		t.Fatalf("expected currency BRL, got %s", resp.Currency)
	}
	if !resp.Active {
		t.Fatal("expected new contract to be active")
	}
	if resp.HourRegularDefault == nil || !resp.HourRegularDefault.Equal(dec("50")) {
		t.Fatalf("expected hour regular default 50, got %v", resp.HourRegularDefault)
	}
}

func TestCreateContract_RejectsNegativeDefault(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), transport.CreateContractRequest{
		ClientID:          uuid.New(),
		MaterialKgDefault: decPtr("-1"),
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected kind validation, got %v", err)
	}
}

func TestUpdateContract_MergesOnlyProvidedFields(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	contract := seedContract(repo)
	contract.HourRegularDefault = decPtr("50")
	contract.MaterialKgDefault = decPtr("12")

	inactive := false
	resp, err := svc.Update(context.Background(), contract.ID, transport.UpdateContractRequest{
		Active:           &inactive,
		HourExtraDefault: decPtr("80"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Active {
		t.Fatal("expected contract to be inactive after update")
	}
	if resp.HourExtraDefault == nil || !resp.HourExtraDefault.Equal(dec("80")) {
		t.Fatalf("expected hour extra default 80, got %v", resp.HourExtraDefault)
	}
	if resp.HourRegularDefault == nil || !resp.HourRegularDefault.Equal(dec("50")) {
		t.Fatalf("expected hour regular default untouched at 50, got %v", resp.HourRegularDefault)
	}
	if resp.MaterialKgDefault == nil || !resp.MaterialKgDefault.Equal(dec("12")) {
		t.Fatalf("expected material default untouched at 12, got %v", resp.MaterialKgDefault)
	}
}

func TestCreateHourPrice_RejectsUnknownVariant(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	contract := seedContract(repo)

	_, err := svc.CreateHourPrice(context.Background(), contract.ID, transport.CreateHourPriceRequest{
		MachineID: uuid.New(),
		Variant:   "WEEKEND",
		HourPrice: dec("10"),
		UnitID:    uuid.New(),
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected kind validation, got %v", err)
	}
}

func TestCreateHourPrice_DuplicateOverrideConflicts(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	contract := seedContract(repo)

	req := transport.CreateHourPriceRequest{
		MachineID: uuid.New(),
		Variant:   VariantRegular,
		HourPrice: dec("95"),
		UnitID:    uuid.New(),
	}
	if _, err := svc.CreateHourPrice(context.Background(), contract.ID, req); err != nil {
		t.Fatalf("unexpected error on first create: %v", err)
	}
	_, err := svc.CreateHourPrice(context.Background(), contract.ID, req)
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("expected kind conflict, got %v", err)
	}
}

func TestUpdateHourPrice_RejectsNegativePrice(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	contract := seedContract(repo)

	created, err := svc.CreateHourPrice(context.Background(), contract.ID, transport.CreateHourPriceRequest{
		MachineID: uuid.New(),
		Variant:   VariantExtra,
		HourPrice: dec("60"),
		UnitID:    uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.UpdateHourPrice(context.Background(), contract.ID, created.ID, transport.UpdateHourPriceRequest{
		HourPrice: decPtr("-5"),
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected kind validation, got %v", err)
	}
}

func TestCreateMaterialPrice_ContractMustExist(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.CreateMaterialPrice(context.Background(), uuid.New(), transport.CreateMaterialPriceRequest{
		MaterialID: uuid.New(),
		UnitPrice:  dec("20"),
		UnitID:     uuid.New(),
	})
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected kind not found, got %v", err)
	}
}
