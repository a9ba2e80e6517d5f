package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"usinagem_backend/internal/clients/repository"
	"usinagem_backend/internal/clients/transport"
	"usinagem_backend/platform/logger"
)

// Service provides business logic for clients and suppliers.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new clients service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) CreateClient(ctx context.Context, req transport.PartyRequest) (transport.PartyResponse, error) {
	c := &repository.Client{
		ID:      uuid.New(),
		Name:    req.Name,
		TaxID:   req.TaxID,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
		Active:  true,
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if err := s.repo.CreateClient(ctx, c); err != nil {
		return transport.PartyResponse{}, err
	}
	return clientToResponse(c), nil
}

func (s *Service) GetClient(ctx context.Context, id uuid.UUID) (transport.PartyResponse, error) {
	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return transport.PartyResponse{}, err
	}
	return clientToResponse(c), nil
}

func (s *Service) UpdateClient(ctx context.Context, id uuid.UUID, req transport.PartyPatch) (transport.PartyResponse, error) {
	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return transport.PartyResponse{}, err
	}
	applyPatchClient(c, req)
	if err := s.repo.UpdateClient(ctx, c); err != nil {
		return transport.PartyResponse{}, err
	}
	return clientToResponse(c), nil
}

func (s *Service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteClient(ctx, id)
}

func (s *Service) ListClients(ctx context.Context, req transport.ListPartiesRequest) (transport.PartyListResponse, error) {
	params := normalizeListParams(req)
	result, err := s.repo.ListClients(ctx, params)
	if err != nil {
		return transport.PartyListResponse{}, err
	}
	items := make([]transport.PartyResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, clientToResponse(&result.Items[i]))
	}
	return transport.PartyListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

func (s *Service) CreateSupplier(ctx context.Context, req transport.PartyRequest) (transport.PartyResponse, error) {
	sup := &repository.Supplier{
		ID:      uuid.New(),
		Name:    req.Name,
		TaxID:   req.TaxID,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
		Active:  true,
	}
	if req.Active != nil {
		sup.Active = *req.Active
	}
	if err := s.repo.CreateSupplier(ctx, sup); err != nil {
		return transport.PartyResponse{}, err
	}
	return supplierToResponse(sup), nil
}

func (s *Service) GetSupplier(ctx context.Context, id uuid.UUID) (transport.PartyResponse, error) {
	sup, err := s.repo.GetSupplier(ctx, id)
	if err != nil {
		return transport.PartyResponse{}, err
	}
	return supplierToResponse(sup), nil
}

func (s *Service) UpdateSupplier(ctx context.Context, id uuid.UUID, req transport.PartyPatch) (transport.PartyResponse, error) {
	sup, err := s.repo.GetSupplier(ctx, id)
	if err != nil {
		return transport.PartyResponse{}, err
	}
	applyPatchSupplier(sup, req)
	if err := s.repo.UpdateSupplier(ctx, sup); err != nil {
		return transport.PartyResponse{}, err
	}
	return supplierToResponse(sup), nil
}

func (s *Service) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSupplier(ctx, id)
}

func (s *Service) ListSuppliers(ctx context.Context, req transport.ListPartiesRequest) (transport.PartyListResponse, error) {
	params := normalizeListParams(req)
	result, err := s.repo.ListSuppliers(ctx, params)
	if err != nil {
		return transport.PartyListResponse{}, err
	}
	items := make([]transport.PartyResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, supplierToResponse(&result.Items[i]))
	}
	return transport.PartyListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

func normalizeListParams(req transport.ListPartiesRequest) repository.ListParams {
	params := repository.ListParams{
		Search:   req.Search,
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
	return params
}

func applyPatchClient(c *repository.Client, req transport.PartyPatch) {
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.TaxID != nil {
		c.TaxID = req.TaxID
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	if req.Notes != nil {
		c.Notes = req.Notes
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
}

func applyPatchSupplier(s *repository.Supplier, req transport.PartyPatch) {
	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.TaxID != nil {
		s.TaxID = req.TaxID
	}
	if req.Email != nil {
		s.Email = req.Email
	}
	if req.Phone != nil {
		s.Phone = req.Phone
	}
	if req.Address != nil {
		s.Address = req.Address
	}
	if req.Notes != nil {
		s.Notes = req.Notes
	}
	if req.Active != nil {
		s.Active = *req.Active
	}
}

func clientToResponse(c *repository.Client) transport.PartyResponse {
	return transport.PartyResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Notes:     c.Notes,
		Active:    c.Active,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

func supplierToResponse(s *repository.Supplier) transport.PartyResponse {
	return transport.PartyResponse{
		ID:        s.ID,
		Name:      s.Name,
		TaxID:     s.TaxID,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   s.Address,
		Notes:     s.Notes,
		Active:    s.Active,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}
