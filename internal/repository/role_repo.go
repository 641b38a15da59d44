package repository

import (
	"context"

	"github.com/parmenasoares/track-and-work/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleRepository defines persistence operations for role assignments.
type RoleRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserRole, error)
	// ReplaceForUser deletes every role row of the user and inserts the given
	// role in one transaction (the "role replace" contract of admin role
	// assignment).
	ReplaceForUser(ctx context.Context, userID uuid.UUID, role string, createdBy uuid.UUID) error
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
	ListAll(ctx context.Context) ([]model.UserRole, error)
	CountByRole(ctx context.Context) (map[string]int64, error)
}

type roleRepository struct{ db *gorm.DB }

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserRole, error) {
	var roles []model.UserRole
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&roles).Error
	return roles, err
}

func (r *roleRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, role string, createdBy uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserRole{}).Error; err != nil {
			return err
		}
		row := &model.UserRole{UserID: userID, Role: role, CreatedBy: &createdBy}
		return tx.Create(row).Error
	})
}

func (r *roleRepository) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UserRole{}).Error
}

func (r *roleRepository) ListAll(ctx context.Context) ([]model.UserRole, error) {
	var roles []model.UserRole
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Granter").
		Order("created_at desc").
		Find(&roles).Error
	return roles, err
}

func (r *roleRepository) CountByRole(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Role string
		N    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.UserRole{}).
		Select("role, count(*) as n").Group("role").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, rw := range rows {
		out[rw.Role] = rw.N
	}
	return out, nil
}
