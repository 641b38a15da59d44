package repository

import (
	"context"

	"github.com/parmenasoares/track-and-work/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientRepository defines CRUD operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) error
	List(ctx context.Context) ([]model.Client, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type clientRepository struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clientRepository) List(ctx context.Context) ([]model.Client, error) {
	var list []model.Client
	err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error
	return list, err
}

func (r *clientRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Client{}, "id = ?", id).Error
}

// LocationRepository defines CRUD operations for client work sites.
type LocationRepository interface {
	Create(ctx context.Context, l *model.Location) error
	List(ctx context.Context, clientID *uuid.UUID) ([]model.Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type locationRepository struct{ db *gorm.DB }

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, l *model.Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *locationRepository) List(ctx context.Context, clientID *uuid.UUID) ([]model.Location, error) {
	var list []model.Location
	q := r.db.WithContext(ctx).Order("name asc")
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *locationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Location{}, "id = ?", id).Error
}

// ServiceRepository defines CRUD operations for service types.
type ServiceRepository interface {
	Create(ctx context.Context, s *model.Service) error
	List(ctx context.Context) ([]model.Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type serviceRepository struct{ db *gorm.DB }

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, s *model.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *serviceRepository) List(ctx context.Context) ([]model.Service, error) {
	var list []model.Service
	err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error
	return list, err
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Service{}, "id = ?", id).Error
}
