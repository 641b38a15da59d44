package repository

import (
	"context"
	"time"

	"github.com/parmenasoares/track-and-work/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityRepository defines persistence operations for activities.
type ActivityRepository interface {
	Create(ctx context.Context, a *model.Activity) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Activity, error)
	// FindByIDFull preloads operator, machine and master-data references for
	// the review screens and the PDF report.
	FindByIDFull(ctx context.Context, id uuid.UUID) (*model.Activity, error)
	// FindOpenByOperator returns the operator's open activity
	// (status PENDING_VALIDATION, end_time null), or gorm.ErrRecordNotFound.
	FindOpenByOperator(ctx context.Context, operatorID uuid.UUID) (*model.Activity, error)
	ListByOperator(ctx context.Context, operatorID uuid.UUID) ([]model.Activity, error)
	ListByStatus(ctx context.Context, status string) ([]model.Activity, error)
	Update(ctx context.Context, a *model.Activity) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByMachineSince(ctx context.Context, since time.Time) (map[uuid.UUID]int64, error)
	CountByDaySince(ctx context.Context, since time.Time) (map[string]int64, error)
}

type activityRepository struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, a *model.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *activityRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Activity, error) {
	var a model.Activity
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *activityRepository) FindByIDFull(ctx context.Context, id uuid.UUID) (*model.Activity, error) {
	var a model.Activity
	err := r.db.WithContext(ctx).
		Preload("Operator").
		Preload("Machine").
		Preload("Client").
		Preload("Location").
		Preload("Service").
		First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *activityRepository) FindOpenByOperator(ctx context.Context, operatorID uuid.UUID) (*model.Activity, error) {
	var a model.Activity
	err := r.db.WithContext(ctx).
		Where("operator_id = ? AND status = ? AND end_time IS NULL", operatorID, model.ActivityPending).
		Order("start_time desc").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *activityRepository) ListByOperator(ctx context.Context, operatorID uuid.UUID) ([]model.Activity, error) {
	var list []model.Activity
	err := r.db.WithContext(ctx).
		Preload("Machine").
		Where("operator_id = ?", operatorID).
		Order("start_time desc").
		Find(&list).Error
	return list, err
}

func (r *activityRepository) ListByStatus(ctx context.Context, status string) ([]model.Activity, error) {
	var list []model.Activity
	q := r.db.WithContext(ctx).
		Preload("Operator").
		Preload("Machine").
		Preload("Client").
		Preload("Location").
		Preload("Service").
		Order("start_time desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *activityRepository) Update(ctx context.Context, a *model.Activity) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *activityRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Activity{}).
		Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *activityRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Activity{}).
		Select("status, count(*) as n").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, rw := range rows {
		out[rw.Status] = rw.N
	}
	return out, nil
}

func (r *activityRepository) CountByMachineSince(ctx context.Context, since time.Time) (map[uuid.UUID]int64, error) {
	type row struct {
		MachineID uuid.UUID
		N         int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Activity{}).
		Select("machine_id, count(*) as n").
		Where("created_at >= ?", since).
		Group("machine_id").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int64, len(rows))
	for _, rw := range rows {
		out[rw.MachineID] = rw.N
	}
	return out, nil
}

func (r *activityRepository) CountByDaySince(ctx context.Context, since time.Time) (map[string]int64, error) {
	type row struct {
		Day string
		N   int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Activity{}).
		Select("to_char(start_time, 'YYYY-MM-DD') as day, count(*) as n").
		Where("start_time >= ?", since).
		Group("day").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, rw := range rows {
		out[rw.Day] = rw.N
	}
	return out, nil
}
