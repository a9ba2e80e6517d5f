package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"usinagem_backend/internal/contracts/repository"
	"usinagem_backend/internal/contracts/transport"
	"usinagem_backend/platform/apperr"
	"usinagem_backend/platform/logger"
)

// Hour variants accepted by the price catalog.
const (
	VariantRegular = "REGULAR"
	VariantExtra   = "EXTRA"
	VariantHoliday = "FERIADO"
)

const dateLayout = "2006-01-02"

// ValidVariant reports whether v is one of the known hour variants.
func ValidVariant(v string) bool {
	switch v {
	case VariantRegular, VariantExtra, VariantHoliday:
		return true
	}
	return false
}

// Service provides business logic for contracts and their price catalog.
type Service struct {
	repo            repository.Repository
	log             *logger.Logger
	defaultCurrency string
}

// New creates a new contracts service.
func New(repo repository.Repository, log *logger.Logger, defaultCurrency string) *Service {
	return &Service{repo: repo, log: log, defaultCurrency: defaultCurrency}
}

// Create creates a new contract.
func (s *Service) Create(ctx context.Context, req transport.CreateContractRequest) (transport.ContractResponse, error) {

	if err := validateDefaults(req.HourRegularDefault, req.HourExtraDefault, req.HourHolidayDefault, req.MaterialKgDefault); err != nil {
		return transport.ContractResponse{}, err
	}

	c := &repository.Contract{
		ID:                 uuid.New(),
		ClientID:           req.ClientID,
		Currency:           s.defaultCurrency,
		Active:             true,
		Notes:              req.Notes,
		HourRegularDefault: req.HourRegularDefault,
		HourExtraDefault:   req.HourExtraDefault,
		HourHolidayDefault: req.HourHolidayDefault,
		MaterialKgDefault:  req.MaterialKgDefault,
	}
	if req.Currency != nil {
		c.Currency = *req.Currency
	}
	if req.Active != nil {
		c.Active = *req.Active
	}

	var err error
	if c.StartDate, err = parseDate(req.StartDate); err != nil {
		return transport.ContractResponse{}, err
	}
	if c.EndDate, err = parseDate(req.EndDate); err != nil {
		return transport.ContractResponse{}, err
	}

	if err := s.repo.CreateContract(ctx, c); err != nil {
		return transport.ContractResponse{}, err
	}
	return toContractResponse(c), nil
}

// GetByID retrieves a contract by ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.ContractResponse, error) {
	c, err := s.repo.GetContract(ctx, id)
	if err != nil {
		return transport.ContractResponse{}, err
	}
	return toContractResponse(c), nil
}

// List retrieves contracts with filters and pagination.
func (s *Service) List(ctx context.Context, req transport.ListContractsRequest) (transport.ContractListResponse, error) {
	params := repository.ListParams{
		ClientID: req.ClientID,
		Active:   req.Active,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}

	result, err := s.repo.ListContracts(ctx, params)
	if err != nil {
		return transport.ContractListResponse{}, err
	}

	items := make([]transport.ContractResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, toContractResponse(&result.Items[i]))
	}
	return transport.ContractListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// Update applies a partial update to a contract. Fields absent from the
// request keep their current value.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateContractRequest) (transport.ContractResponse, error) {

	if err := validateDefaults(req.HourRegularDefault, req.HourExtraDefault, req.HourHolidayDefault, req.MaterialKgDefault); err != nil {
		return transport.ContractResponse{}, err
	}

	c, err := s.repo.GetContract(ctx, id)
	if err != nil {
		return transport.ContractResponse{}, err
	}

	if req.Currency != nil {
		c.Currency = *req.Currency
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if req.Notes != nil {
		c.Notes = req.Notes
	}
	if req.StartDate != nil {
		if c.StartDate, err = parseDate(req.StartDate); err != nil {
			return transport.ContractResponse{}, err
		}
	}
	if req.EndDate != nil {
		if c.EndDate, err = parseDate(req.EndDate); err != nil {
			return transport.ContractResponse{}, err
		}
	}
	if req.HourRegularDefault != nil {
		c.HourRegularDefault = req.HourRegularDefault
	}
	if req.HourExtraDefault != nil {
		c.HourExtraDefault = req.HourExtraDefault
	}
	if req.HourHolidayDefault != nil {
		c.HourHolidayDefault = req.HourHolidayDefault
	}
	if req.MaterialKgDefault != nil {
		c.MaterialKgDefault = req.MaterialKgDefault
	}

	if err := s.repo.UpdateContract(ctx, c); err != nil {
		return transport.ContractResponse{}, err
	}
	return toContractResponse(c), nil
}

// Delete removes a contract and its overrides.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteContract(ctx, id)
}

// CreateHourPrice adds a machine-hour override to a contract.
func (s *Service) CreateHourPrice(ctx context.Context, contractID uuid.UUID, req transport.CreateHourPriceRequest) (transport.HourPriceResponse, error) {

	if !ValidVariant(req.Variant) {
		return transport.HourPriceResponse{}, apperr.Validation("invalid hour variant: "+req.Variant)
	}
	if req.HourPrice.IsNegative() {
		return transport.HourPriceResponse{}, apperr.Validation("hour price must not be negative")
	}
	if _, err := s.repo.GetContract(ctx, contractID); err != nil {
		return transport.HourPriceResponse{}, err
	}

	p := &repository.MachineHourPrice{
		ID:         uuid.New(),
		ContractID: contractID,
		MachineID:  req.MachineID,
		Variant:    req.Variant,
		HourPrice:  req.HourPrice,
		UnitID:     req.UnitID,
	}
	if err := s.repo.CreateHourPrice(ctx, p); err != nil {
		return transport.HourPriceResponse{}, err
	}
	return toHourPriceResponse(p), nil
}

// UpdateHourPrice updates an existing machine-hour override.
func (s *Service) UpdateHourPrice(ctx context.Context, contractID, id uuid.UUID, req transport.UpdateHourPriceRequest) (transport.HourPriceResponse, error) {

	prices, err := s.repo.ListHourPrices(ctx, contractID)
	if err != nil {
		return transport.HourPriceResponse{}, err
	}
	p := findHourPrice(prices, id)
	if p == nil {
		return transport.HourPriceResponse{}, apperr.NotFound("hour price not found")
	}

	if req.HourPrice != nil {
		if req.HourPrice.IsNegative() {
			return transport.HourPriceResponse{}, apperr.Validation("hour price must not be negative")
		}
		p.HourPrice = *req.HourPrice
	}
	if req.UnitID != nil {
		p.UnitID = *req.UnitID
	}

	if err := s.repo.UpdateHourPrice(ctx, p); err != nil {
		return transport.HourPriceResponse{}, err
	}
	return toHourPriceResponse(p), nil
}

// DeleteHourPrice removes a machine-hour override.
func (s *Service) DeleteHourPrice(ctx context.Context, contractID, id uuid.UUID) error {
	return s.repo.DeleteHourPrice(ctx, contractID, id)
}

// ListHourPrices lists all machine-hour overrides of a contract.
func (s *Service) ListHourPrices(ctx context.Context, contractID uuid.UUID) ([]transport.HourPriceResponse, error) {
	if _, err := s.repo.GetContract(ctx, contractID); err != nil {
		return nil, err
	}
	prices, err := s.repo.ListHourPrices(ctx, contractID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.HourPriceResponse, 0, len(prices))
	for i := range prices {
		out = append(out, toHourPriceResponse(&prices[i]))
	}
	return out, nil
}

// CreateMaterialPrice adds a material override to a contract.
func (s *Service) CreateMaterialPrice(ctx context.Context, contractID uuid.UUID, req transport.CreateMaterialPriceRequest) (transport.MaterialPriceResponse, error) {

	if req.UnitPrice.IsNegative() {
		return transport.MaterialPriceResponse{}, apperr.Validation("unit price must not be negative")
	}
	if _, err := s.repo.GetContract(ctx, contractID); err != nil {
		return transport.MaterialPriceResponse{}, err
	}

	p := &repository.MaterialPrice{
		ID:         uuid.New(),
		ContractID: contractID,
		MaterialID: req.MaterialID,
		UnitPrice:  req.UnitPrice,
		UnitID:     req.UnitID,
	}
	if err := s.repo.CreateMaterialPrice(ctx, p); err != nil {
		return transport.MaterialPriceResponse{}, err
	}
	return toMaterialPriceResponse(p), nil
}

// UpdateMaterialPrice updates an existing material override.
func (s *Service) UpdateMaterialPrice(ctx context.Context, contractID, id uuid.UUID, req transport.UpdateMaterialPriceRequest) (transport.MaterialPriceResponse, error) {

	prices, err := s.repo.ListMaterialPrices(ctx, contractID)
	if err != nil {
		return transport.MaterialPriceResponse{}, err
	}
	p := findMaterialPrice(prices, id)
	if p == nil {
		return transport.MaterialPriceResponse{}, apperr.NotFound("material price not found")
	}

	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return transport.MaterialPriceResponse{}, apperr.Validation("unit price must not be negative")
		}
		p.UnitPrice = *req.UnitPrice
	}
	if req.UnitID != nil {
		p.UnitID = *req.UnitID
	}

	if err := s.repo.UpdateMaterialPrice(ctx, p); err != nil {
		return transport.MaterialPriceResponse{}, err
	}
	return toMaterialPriceResponse(p), nil
}

// DeleteMaterialPrice removes a material override.
func (s *Service) DeleteMaterialPrice(ctx context.Context, contractID, id uuid.UUID) error {
	return s.repo.DeleteMaterialPrice(ctx, contractID, id)
}

// ListMaterialPrices lists all material overrides of a contract.
func (s *Service) ListMaterialPrices(ctx context.Context, contractID uuid.UUID) ([]transport.MaterialPriceResponse, error) {
	if _, err := s.repo.GetContract(ctx, contractID); err != nil {
		return nil, err
	}
	prices, err := s.repo.ListMaterialPrices(ctx, contractID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.MaterialPriceResponse, 0, len(prices))
	for i := range prices {
		out = append(out, toMaterialPriceResponse(&prices[i]))
	}
	return out, nil
}

func validateDefaults(prices ...*decimal.Decimal) error {
	for _, p := range prices {
		if p != nil && p.IsNegative() {
			return apperr.Validation("default prices must not be negative")
		}
	}
	return nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, apperr.Validation("invalid date: "+*s)
	}
	return &t, nil
}

func findHourPrice(prices []repository.MachineHourPrice, id uuid.UUID) *repository.MachineHourPrice {
	for i := range prices {
		if prices[i].ID == id {
			return &prices[i]
		}
	}
	return nil
}

func findMaterialPrice(prices []repository.MaterialPrice, id uuid.UUID) *repository.MaterialPrice {
	for i := range prices {
		if prices[i].ID == id {
			return &prices[i]
		}
	}
	return nil
}

func toContractResponse(c *repository.Contract) transport.ContractResponse {
	return transport.ContractResponse{
		ID:                 c.ID,
		ClientID:           c.ClientID,
		Currency:           c.Currency,
		Active:             c.Active,
		StartDate:          formatDate(c.StartDate),
		EndDate:            formatDate(c.EndDate),
		Notes:              c.Notes,
		HourRegularDefault: c.HourRegularDefault,
		HourExtraDefault:   c.HourExtraDefault,
		HourHolidayDefault: c.HourHolidayDefault,
		MaterialKgDefault:  c.MaterialKgDefault,
		CreatedAt:          c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          c.UpdatedAt.Format(time.RFC3339),
	}
}

func toHourPriceResponse(p *repository.MachineHourPrice) transport.HourPriceResponse {
	return transport.HourPriceResponse{
		ID:         p.ID,
		ContractID: p.ContractID,
		MachineID:  p.MachineID,
		Variant:    p.Variant,
		HourPrice:  p.HourPrice,
		UnitID:     p.UnitID,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  p.UpdatedAt.Format(time.RFC3339),
	}
}

func toMaterialPriceResponse(p *repository.MaterialPrice) transport.MaterialPriceResponse {
	return transport.MaterialPriceResponse{
		ID:         p.ID,
		ContractID: p.ContractID,
		MaterialID: p.MaterialID,
		UnitPrice:  p.UnitPrice,
		UnitID:     p.UnitID,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  p.UpdatedAt.Format(time.RFC3339),
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
