package repository

import (
	"context"

	"github.com/parmenasoares/track-and-work/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MachineRepository defines CRUD operations for fleet machines.
type MachineRepository interface {
	Create(ctx context.Context, m *model.Machine) error
	List(ctx context.Context) ([]model.Machine, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Machine, error)
	Update(ctx context.Context, m *model.Machine) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountAll(ctx context.Context) (int64, error)
}

type machineRepository struct{ db *gorm.DB }

func NewMachineRepository(db *gorm.DB) MachineRepository {
	return &machineRepository{db: db}
}

func (r *machineRepository) Create(ctx context.Context, m *model.Machine) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *machineRepository) List(ctx context.Context) ([]model.Machine, error) {
	var list []model.Machine
	err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error
	return list, err
}

func (r *machineRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Machine, error) {
	var m model.Machine
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *machineRepository) Update(ctx context.Context, m *model.Machine) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *machineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Machine{}, "id = ?", id).Error
}

func (r *machineRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Machine{}).Count(&n).Error
	return n, err
}
