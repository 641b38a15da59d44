package repository

import (
	"context"

	"github.com/parmenasoares/track-and-work/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentRepository defines persistence for document file metadata.
type DocumentRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserDocumentFile, error)
	FindByUserAndType(ctx context.Context, userID uuid.UUID, docType string) (*model.UserDocumentFile, error)
	// Upsert replaces the row keyed on (user_id, doc_type).
	Upsert(ctx context.Context, d *model.UserDocumentFile) error
	Delete(ctx context.Context, userID uuid.UUID, docType string) error
}

type documentRepository struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserDocumentFile, error) {
	var list []model.UserDocumentFile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("doc_type asc").Find(&list).Error
	return list, err
}

func (r *documentRepository) FindByUserAndType(ctx context.Context, userID uuid.UUID, docType string) (*model.UserDocumentFile, error) {
	var d model.UserDocumentFile
	err := r.db.WithContext(ctx).Where("user_id = ? AND doc_type = ?", userID, docType).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *documentRepository) Upsert(ctx context.Context, d *model.UserDocumentFile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "doc_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"storage_path", "file_name", "mime_type", "size_bytes", "created_at"}),
	}).Create(d).Error
}

func (r *documentRepository) Delete(ctx context.Context, userID uuid.UUID, docType string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND doc_type = ?", userID, docType).
		Delete(&model.UserDocumentFile{}).Error
}
