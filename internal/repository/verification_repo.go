package repository

import (
	"context"
	"errors"
	"time"

	"github.com/parmenasoares/track-and-work/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VerificationRepository defines persistence for user verification state.
type VerificationRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*model.UserVerification, error)
	EnsureRow(ctx context.Context, userID uuid.UUID) error
	Update(ctx context.Context, v *model.UserVerification) error
	ListByStatus(ctx context.Context, status string) ([]model.UserVerification, error)
	// ListPendingOlderThan returns PENDING rows submitted before the cutoff
	// (reminder cron).
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]model.UserVerification, error)
}

type verificationRepository struct{ db *gorm.DB }

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*model.UserVerification, error) {
	var v model.UserVerification
	err := r.db.WithContext(ctx).First(&v, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *verificationRepository) EnsureRow(ctx context.Context, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).First(&model.UserVerification{}, "user_id = ?", userID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserVerification{UserID: userID, Status: model.VerificationPending}).Error
}

func (r *verificationRepository) Update(ctx context.Context, v *model.UserVerification) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *verificationRepository) ListByStatus(ctx context.Context, status string) ([]model.UserVerification, error) {
	var list []model.UserVerification
	q := r.db.WithContext(ctx).Preload("User").Order("submitted_at desc nulls last")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *verificationRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]model.UserVerification, error) {
	var list []model.UserVerification
	err := r.db.WithContext(ctx).Preload("User").
		Where("status = ? AND submitted_at IS NOT NULL AND submitted_at < ?", model.VerificationPending, cutoff).
		Find(&list).Error
	return list, err
}
