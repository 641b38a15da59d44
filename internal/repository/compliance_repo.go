package repository

import (
	"context"
	"errors"

	"github.com/parmenasoares/track-and-work/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ComplianceRepository defines persistence for the PII compliance row.
type ComplianceRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*model.UserCompliance, error)
	// Upsert writes the whole row keyed on user_id.
	Upsert(ctx context.Context, c *model.UserCompliance) error
	// EnsureRow creates an empty compliance row if the user has none yet
	// (bootstrap on first visit).
	EnsureRow(ctx context.Context, userID uuid.UUID) error
}

type complianceRepository struct{ db *gorm.DB }

func NewComplianceRepository(db *gorm.DB) ComplianceRepository {
	return &complianceRepository{db: db}
}

func (r *complianceRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*model.UserCompliance, error) {
	var c model.UserCompliance
	err := r.db.WithContext(ctx).First(&c, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *complianceRepository) Upsert(ctx context.Context, c *model.UserCompliance) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(c).Error
}

func (r *complianceRepository) EnsureRow(ctx context.Context, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).First(&model.UserCompliance{}, "user_id = ?", userID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserCompliance{UserID: userID}).Error
}
