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

// MasterDataService manages the reference tables activities point at:
// clients, their work locations, and service types.
type MasterDataService interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error)
	ListClients(ctx context.Context) ([]dto.ClientResponse, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error

	CreateLocation(ctx context.Context, req dto.CreateLocationRequest) (*dto.LocationResponse, error)
	ListLocations(ctx context.Context, clientID *uuid.UUID) ([]dto.LocationResponse, error)
	DeleteLocation(ctx context.Context, id uuid.UUID) error

	CreateService(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	ListServices(ctx context.Context) ([]dto.ServiceResponse, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
}

type masterDataService struct {
	clients   repository.ClientRepository
	locations repository.LocationRepository
	services  repository.ServiceRepository
}

func NewMasterDataService(
	clients repository.ClientRepository,
	locations repository.LocationRepository,
	services repository.ServiceRepository,
) MasterDataService {
	return &masterDataService{clients: clients, locations: locations, services: services}
}

func (s *masterDataService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	c := &model.Client{Name: strings.TrimSpace(req.Name)}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.ClientResponse{ID: c.ID.String(), Name: c.Name}, nil
}

func (s *masterDataService) ListClients(ctx context.Context) ([]dto.ClientResponse, error) {
	list, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ClientResponse{ID: c.ID.String(), Name: c.Name})
	}
	return out, nil
}

func (s *masterDataService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return s.clients.Delete(ctx, id)
}

func (s *masterDataService) CreateLocation(ctx context.Context, req dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, ErrNotFound
	}
	// A location must hang off an existing client.
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	l := &model.Location{ClientID: clientID, Name: strings.TrimSpace(req.Name)}
	if err := s.locations.Create(ctx, l); err != nil {
		return nil, err
	}
	return &dto.LocationResponse{ID: l.ID.String(), ClientID: l.ClientID.String(), Name: l.Name}, nil
}

func (s *masterDataService) ListLocations(ctx context.Context, clientID *uuid.UUID) ([]dto.LocationResponse, error) {
	list, err := s.locations.List(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.LocationResponse{ID: l.ID.String(), ClientID: l.ClientID.String(), Name: l.Name})
	}
	return out, nil
}

func (s *masterDataService) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	return s.locations.Delete(ctx, id)
}

func (s *masterDataService) CreateService(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	sv := &model.Service{Name: strings.TrimSpace(req.Name)}
	if err := s.services.Create(ctx, sv); err != nil {
		return nil, err
	}
	return &dto.ServiceResponse{ID: sv.ID.String(), Name: sv.Name}, nil
}

func (s *masterDataService) ListServices(ctx context.Context) ([]dto.ServiceResponse, error) {
	list, err := s.services.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServiceResponse, 0, len(list))
	for _, sv := range list {
		out = append(out, dto.ServiceResponse{ID: sv.ID.String(), Name: sv.Name})
	}
	return out, nil
}

func (s *masterDataService) DeleteService(ctx context.Context, id uuid.UUID) error {
	return s.services.Delete(ctx, id)
}
