package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"usinagem_backend/internal/catalog/repository"
	"usinagem_backend/internal/catalog/transport"
	"usinagem_backend/platform/logger"
)

// Service provides business logic for the shared resource catalog: units of
// measure, machines, materials, and service types.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ── Units of measure ─────────────────────────────────────────────────────────

func (s *Service) CreateUnit(ctx context.Context, req transport.CreateUnitRequest) (transport.UnitResponse, error) {
	u := &repository.UnitOfMeasure{
		ID:       uuid.New(),
		Name:     req.Name,
		Symbol:   req.Symbol,
		Category: req.Category,
	}
	if err := s.repo.CreateUnit(ctx, u); err != nil {
		return transport.UnitResponse{}, err
	}
	return toUnitResponse(u), nil
}

func (s *Service) GetUnit(ctx context.Context, id uuid.UUID) (transport.UnitResponse, error) {
	u, err := s.repo.GetUnit(ctx, id)
	if err != nil {
		return transport.UnitResponse{}, err
	}
	return toUnitResponse(u), nil
}

func (s *Service) UpdateUnit(ctx context.Context, id uuid.UUID, req transport.UpdateUnitRequest) (transport.UnitResponse, error) {
	u, err := s.repo.GetUnit(ctx, id)
	if err != nil {
		return transport.UnitResponse{}, err
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Symbol != nil {
		u.Symbol = *req.Symbol
	}
	if req.Category != nil {
		u.Category = req.Category
	}
	if err := s.repo.UpdateUnit(ctx, u); err != nil {
		return transport.UnitResponse{}, err
	}
	return toUnitResponse(u), nil
}

func (s *Service) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteUnit(ctx, id)
}

func (s *Service) ListUnits(ctx context.Context) ([]transport.UnitResponse, error) {
	units, err := s.repo.ListUnits(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.UnitResponse, 0, len(units))
	for i := range units {
		out = append(out, toUnitResponse(&units[i]))
	}
	return out, nil
}

// ── Machines ─────────────────────────────────────────────────────────────────

func (s *Service) CreateMachine(ctx context.Context, req transport.CreateMachineRequest) (transport.MachineResponse, error) {
	m := &repository.Machine{
		ID:          uuid.New(),
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Active:      true,
	}
	if req.Active != nil {
		m.Active = *req.Active
	}
	if err := s.repo.CreateMachine(ctx, m); err != nil {
		return transport.MachineResponse{}, err
	}
	return toMachineResponse(m), nil
}

func (s *Service) GetMachine(ctx context.Context, id uuid.UUID) (transport.MachineResponse, error) {
	m, err := s.repo.GetMachine(ctx, id)
	if err != nil {
		return transport.MachineResponse{}, err
	}
	return toMachineResponse(m), nil
}

func (s *Service) UpdateMachine(ctx context.Context, id uuid.UUID, req transport.UpdateMachineRequest) (transport.MachineResponse, error) {
	m, err := s.repo.GetMachine(ctx, id)
	if err != nil {
		return transport.MachineResponse{}, err
	}
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Code != nil {
		m.Code = *req.Code
	}
	if req.Description != nil {
		m.Description = req.Description
	}
	if req.Active != nil {
		m.Active = *req.Active
	}
	if err := s.repo.UpdateMachine(ctx, m); err != nil {
		return transport.MachineResponse{}, err
	}
	return toMachineResponse(m), nil
}

func (s *Service) DeleteMachine(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteMachine(ctx, id)
}

func (s *Service) ListMachines(ctx context.Context, activeOnly bool) ([]transport.MachineResponse, error) {
	machines, err := s.repo.ListMachines(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]transport.MachineResponse, 0, len(machines))
	for i := range machines {
		out = append(out, toMachineResponse(&machines[i]))
	}
	return out, nil
}

// ── Materials ────────────────────────────────────────────────────────────────

func (s *Service) CreateMaterial(ctx context.Context, req transport.CreateMaterialRequest) (transport.MaterialResponse, error) {
	m := &repository.Material{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		UnitID:      req.UnitID,
		Active:      true,
	}
	if req.Active != nil {
		m.Active = *req.Active
	}
	if err := s.repo.CreateMaterial(ctx, m); err != nil {
		return transport.MaterialResponse{}, err
	}
	return toMaterialResponse(m), nil
}

func (s *Service) GetMaterial(ctx context.Context, id uuid.UUID) (transport.MaterialResponse, error) {
	m, err := s.repo.GetMaterial(ctx, id)
	if err != nil {
		return transport.MaterialResponse{}, err
	}
	return toMaterialResponse(m), nil
}

func (s *Service) UpdateMaterial(ctx context.Context, id uuid.UUID, req transport.UpdateMaterialRequest) (transport.MaterialResponse, error) {
	m, err := s.repo.GetMaterial(ctx, id)
	if err != nil {
		return transport.MaterialResponse{}, err
	}
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Description != nil {
		m.Description = req.Description
	}
	if req.UnitID != nil {
		m.UnitID = req.UnitID
	}
	if req.Active != nil {
		m.Active = *req.Active
	}
	if err := s.repo.UpdateMaterial(ctx, m); err != nil {
		return transport.MaterialResponse{}, err
	}
	return toMaterialResponse(m), nil
}

func (s *Service) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteMaterial(ctx, id)
}

func (s *Service) ListMaterials(ctx context.Context, activeOnly bool) ([]transport.MaterialResponse, error) {
	materials, err := s.repo.ListMaterials(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]transport.MaterialResponse, 0, len(materials))
	for i := range materials {
		out = append(out, toMaterialResponse(&materials[i]))
	}
	return out, nil
}

// ── Service types ────────────────────────────────────────────────────────────

func (s *Service) CreateServiceType(ctx context.Context, req transport.CreateServiceTypeRequest) (transport.ServiceTypeResponse, error) {
	st := &repository.ServiceType{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if req.Active != nil {
		st.Active = *req.Active
	}
	if err := s.repo.CreateServiceType(ctx, st); err != nil {
		return transport.ServiceTypeResponse{}, err
	}
	return toServiceTypeResponse(st), nil
}

func (s *Service) GetServiceType(ctx context.Context, id uuid.UUID) (transport.ServiceTypeResponse, error) {
	st, err := s.repo.GetServiceType(ctx, id)
	if err != nil {
		return transport.ServiceTypeResponse{}, err
	}
	return toServiceTypeResponse(st), nil
}

func (s *Service) UpdateServiceType(ctx context.Context, id uuid.UUID, req transport.UpdateServiceTypeRequest) (transport.ServiceTypeResponse, error) {
	st, err := s.repo.GetServiceType(ctx, id)
	if err != nil {
		return transport.ServiceTypeResponse{}, err
	}
	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Description != nil {
		st.Description = req.Description
	}
	if req.Active != nil {
		st.Active = *req.Active
	}
	if err := s.repo.UpdateServiceType(ctx, st); err != nil {
		return transport.ServiceTypeResponse{}, err
	}
	return toServiceTypeResponse(st), nil
}

func (s *Service) DeleteServiceType(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteServiceType(ctx, id)
}

func (s *Service) ListServiceTypes(ctx context.Context, activeOnly bool) ([]transport.ServiceTypeResponse, error) {
	types, err := s.repo.ListServiceTypes(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]transport.ServiceTypeResponse, 0, len(types))
	for i := range types {
		out = append(out, toServiceTypeResponse(&types[i]))
	}
	return out, nil
}

func toUnitResponse(u *repository.UnitOfMeasure) transport.UnitResponse {
	return transport.UnitResponse{
		ID:        u.ID,
		Name:      u.Name,
		Symbol:    u.Symbol,
		Category:  u.Category,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

func toMachineResponse(m *repository.Machine) transport.MachineResponse {
	return transport.MachineResponse{
		ID:          m.ID,
		Name:        m.Name,
		Code:        m.Code,
		Description: m.Description,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   m.UpdatedAt.Format(time.RFC3339),
	}
}

func toMaterialResponse(m *repository.Material) transport.MaterialResponse {
	return transport.MaterialResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		UnitID:      m.UnitID,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   m.UpdatedAt.Format(time.RFC3339),
	}
}

func toServiceTypeResponse(st *repository.ServiceType) transport.ServiceTypeResponse {
	return transport.ServiceTypeResponse{
		ID:          st.ID,
		Name:        st.Name,
		Description: st.Description,
		Active:      st.Active,
		CreatedAt:   st.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   st.UpdatedAt.Format(time.RFC3339),
	}
}
