package service

import (
	"context"
	"errors"
	"strings"

	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/model"
	"github.com/parmenasoares/track-and-work/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MachineService implements fleet machine management.
type MachineService interface {
	Create(ctx context.Context, req dto.CreateMachineRequest) (*dto.MachineResponse, error)
	List(ctx context.Context) ([]dto.MachineResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.MachineResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMachineRequest) (*dto.MachineResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type machineService struct {
	machines repository.MachineRepository
}

func NewMachineService(machines repository.MachineRepository) MachineService {
	return &machineService{machines: machines}
}

// normalizeOptional trims an optional text field; blank values are stored as
// NULL instead of empty or whitespace-only strings.
func normalizeOptional(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func mapMachine(m *model.Machine) dto.MachineResponse {
	return dto.MachineResponse{
		ID:           m.ID.String(),
		Name:         m.Name,
		InternalID:   m.InternalID,
		Brand:        m.Brand,
		Model:        m.Model,
		Plate:        m.Plate,
		SerialNumber: m.SerialNumber,
		Status:       m.Status,
	}
}

func (s *machineService) Create(ctx context.Context, req dto.CreateMachineRequest) (*dto.MachineResponse, error) {
	status := model.MachineActive
	if req.Status != nil {
		status = *req.Status
	}
	m := &model.Machine{
		Name:         strings.TrimSpace(req.Name),
		InternalID:   normalizeOptional(req.InternalID),
		Brand:        normalizeOptional(req.Brand),
		Model:        normalizeOptional(req.Model),
		Plate:        normalizeOptional(req.Plate),
		SerialNumber: normalizeOptional(req.SerialNumber),
		Status:       &status,
	}
	if err := s.machines.Create(ctx, m); err != nil {
		return nil, err
	}
	resp := mapMachine(m)
	return &resp, nil
}

func (s *machineService) List(ctx context.Context) ([]dto.MachineResponse, error) {
	list, err := s.machines.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MachineResponse, 0, len(list))
	for i := range list {
		out = append(out, mapMachine(&list[i]))
	}
	return out, nil
}

func (s *machineService) Get(ctx context.Context, id uuid.UUID) (*dto.MachineResponse, error) {
	m, err := s.machines.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := mapMachine(m)
	return &resp, nil
}

func (s *machineService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMachineRequest) (*dto.MachineResponse, error) {
	m, err := s.machines.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.Name != nil {
		m.Name = strings.TrimSpace(*req.Name)
	}
	// Sending a blank optional clears the stored value.
	if req.InternalID != nil {
		m.InternalID = normalizeOptional(req.InternalID)
	}
	if req.Brand != nil {
		m.Brand = normalizeOptional(req.Brand)
	}
	if req.Model != nil {
		m.Model = normalizeOptional(req.Model)
	}
	if req.Plate != nil {
		m.Plate = normalizeOptional(req.Plate)
	}
	if req.SerialNumber != nil {
		m.SerialNumber = normalizeOptional(req.SerialNumber)
	}
	if req.Status != nil {
		m.Status = req.Status
	}
	if err := s.machines.Update(ctx, m); err != nil {
		return nil, err
	}
	resp := mapMachine(m)
	return &resp, nil
}

func (s *machineService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.machines.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.machines.Delete(ctx, id)
}
