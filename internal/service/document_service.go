package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/infra"
	"github.com/parmenasoares/track-and-work/internal/model"
	"github.com/parmenasoares/track-and-work/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// MaxDocumentBytes caps a single document upload.
const MaxDocumentBytes = 10 << 20

// DocumentService implements the operator side of the compliance flow:
// document uploads, the aggregate documents screen, signed read URLs, and
// submitting for verification.
type DocumentService interface {
	// MyDocuments loads compliance masks, verification state and the document
	// list in one call, bootstrapping empty rows on first visit.
	MyDocuments(ctx context.Context, userID uuid.UUID) (*dto.MyDocumentsResponse, error)
	// Upload stores a document and replaces any previous file of the same
	// type. The replaced object is removed asynchronously.
	Upload(ctx context.Context, userID uuid.UUID, docType, filename, contentType string, size int64, r io.Reader) (*dto.DocumentFileResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, docType string) error
	// SignedURL issues a 60s read URL for a user-documents object. Non-admin
	// callers may only sign paths under their own user id.
	SignedURL(ctx context.Context, callerID uuid.UUID, isAdmin bool, objectPath string) (*dto.SignedURLResponse, error)
	// SubmitVerification (re)submits the user's dossier for admin review.
	SubmitVerification(ctx context.Context, userID uuid.UUID) (*dto.VerificationResponse, error)
}

type documentService struct {
	documents    repository.DocumentRepository
	compliance   repository.ComplianceRepository
	verification repository.VerificationRepository
	store        *infra.ObjectStore
	jobs         Jobs
}

func NewDocumentService(
	documents repository.DocumentRepository,
	compliance repository.ComplianceRepository,
	verification repository.VerificationRepository,
	store *infra.ObjectStore,
	jobs Jobs,
) DocumentService {
	return &documentService{
		documents:    documents,
		compliance:   compliance,
		verification: verification,
		store:        store,
		jobs:         jobs,
	}
}

func mapVerification(v *model.UserVerification) dto.VerificationResponse {
	return dto.VerificationResponse{
		UserID:      v.UserID.String(),
		Status:      v.Status,
		SubmittedAt: v.SubmittedAt,
		ReviewedAt:  v.ReviewedAt,
		ReviewNotes: v.ReviewNotes,
	}
}

func mapDocumentFile(d *model.UserDocumentFile) dto.DocumentFileResponse {
	return dto.DocumentFileResponse{
		DocType:     d.DocType,
		StoragePath: d.StoragePath,
		FileName:    d.FileName,
		MimeType:    d.MimeType,
		SizeBytes:   d.SizeBytes,
		CreatedAt:   d.CreatedAt,
	}
}

func (s *documentService) MyDocuments(ctx context.Context, userID uuid.UUID) (*dto.MyDocumentsResponse, error) {
	if err := s.compliance.EnsureRow(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.verification.EnsureRow(ctx, userID); err != nil {
		return nil, err
	}

	comp, err := s.compliance.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	verif, err := s.verification.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	docs, err := s.documents.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.MyDocumentsResponse{
		Compliance:   *maskCompliance(comp),
		Verification: mapVerification(verif),
		Documents:    make([]dto.DocumentFileResponse, 0, len(docs)),
	}
	for i := range docs {
		resp.Documents = append(resp.Documents, mapDocumentFile(&docs[i]))
	}
	return resp, nil
}

// sanitizeFilename keeps the base name only and squashes path-hostile runes.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '?', '#', '%':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "file"
	}
	return name
}

func validDocumentMime(contentType string) bool {
	return contentType == "application/pdf" || strings.HasPrefix(contentType, "image/")
}

func (s *documentService) Upload(ctx context.Context, userID uuid.UUID, docType, filename, contentType string, size int64, r io.Reader) (*dto.DocumentFileResponse, error) {
	if !model.ValidDocumentType(docType) {
		return nil, ErrInvalidDocType
	}
	if size > MaxDocumentBytes {
		return nil, ErrFileTooLarge
	}
	if !validDocumentMime(contentType) {
		return nil, ErrInvalidFileType
	}

	clean := sanitizeFilename(filename)
	objectPath := fmt.Sprintf("%s/%s/%s-%s", userID, docType, uuid.New(), clean)
	if err := s.store.Save(infra.BucketUserDocuments, objectPath, io.LimitReader(r, MaxDocumentBytes)); err != nil {
		return nil, err
	}

	var previousPath string
	if existing, err := s.documents.FindByUserAndType(ctx, userID, docType); err == nil {
		previousPath = existing.StoragePath
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row := &model.UserDocumentFile{
		UserID:      userID,
		DocType:     docType,
		StoragePath: objectPath,
		FileName:    &clean,
		MimeType:    &contentType,
		SizeBytes:   &size,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.documents.Upsert(ctx, row); err != nil {
		// Row write failed: the fresh object is orphaned, queue its removal.
		if qerr := s.jobs.EnqueueCleanup(ctx, infra.BucketUserDocuments, objectPath); qerr != nil {
			log.Error().Err(qerr).Str("path", objectPath).Msg("document upload: cleanup enqueue failed")
		}
		return nil, err
	}

	if previousPath != "" && previousPath != objectPath {
		if err := s.jobs.EnqueueCleanup(ctx, infra.BucketUserDocuments, previousPath); err != nil {
			log.Error().Err(err).Str("path", previousPath).Msg("document replace: cleanup enqueue failed")
		}
	}

	resp := mapDocumentFile(row)
	return &resp, nil
}

func (s *documentService) Delete(ctx context.Context, userID uuid.UUID, docType string) error {
	if !model.ValidDocumentType(docType) {
		return ErrInvalidDocType
	}
	existing, err := s.documents.FindByUserAndType(ctx, userID, docType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	// Object first, row second: a dangling row with a missing object is
	// recoverable by re-upload, an orphaned object is invisible.
	if err := s.store.Delete(infra.BucketUserDocuments, existing.StoragePath); err != nil {
		return err
	}
	return s.documents.Delete(ctx, userID, docType)
}

func (s *documentService) SignedURL(ctx context.Context, callerID uuid.UUID, isAdmin bool, objectPath string) (*dto.SignedURLResponse, error) {
	if !isAdmin && infra.OwnerOf(objectPath) != callerID.String() {
		return nil, ErrNotAuthorized
	}
	url, err := s.store.SignedURL(infra.BucketUserDocuments, objectPath)
	if err != nil {
		return nil, err
	}
	return &dto.SignedURLResponse{URL: url, ExpiresIn: int(infra.SignedURLTTL.Seconds())}, nil
}

func (s *documentService) SubmitVerification(ctx context.Context, userID uuid.UUID) (*dto.VerificationResponse, error) {
	if err := s.verification.EnsureRow(ctx, userID); err != nil {
		return nil, err
	}
	v, err := s.verification.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	v.Status = model.VerificationPending
	v.SubmittedAt = &now
	v.ReviewedAt = nil
	v.ReviewedBy = nil
	v.ReviewNotes = nil
	if err := s.verification.Update(ctx, v); err != nil {
		return nil, err
	}
	resp := mapVerification(v)
	return &resp, nil
}
