package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/model"
	"github.com/parmenasoares/track-and-work/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// VerificationService is the admin side of the compliance flow: the review
// queue, the per-applicant dossier, and the approve/reject decision.
type VerificationService interface {
	// List returns the verification queue. Empty status means all.
	List(ctx context.Context, status string) ([]dto.VerificationListRow, error)
	Detail(ctx context.Context, userID uuid.UUID) (*dto.VerificationDetailResponse, error)
	// Review records the decision and notifies the applicant by email.
	Review(ctx context.Context, reviewerID, userID uuid.UUID, req dto.ReviewVerificationRequest) (*dto.VerificationResponse, error)
}

type verificationService struct {
	verification repository.VerificationRepository
	compliance   repository.ComplianceRepository
	documents    repository.DocumentRepository
	users        repository.UserRepository
	jobs         Jobs
}

func NewVerificationService(
	verification repository.VerificationRepository,
	compliance repository.ComplianceRepository,
	documents repository.DocumentRepository,
	users repository.UserRepository,
	jobs Jobs,
) VerificationService {
	return &verificationService{
		verification: verification,
		compliance:   compliance,
		documents:    documents,
		users:        users,
		jobs:         jobs,
	}
}

func (s *verificationService) List(ctx context.Context, status string) ([]dto.VerificationListRow, error) {
	list, err := s.verification.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VerificationListRow, 0, len(list))
	for i := range list {
		v := &list[i]
		row := dto.VerificationListRow{VerificationResponse: mapVerification(v)}
		if v.User != nil {
			row.UserEmail = v.User.Email
			row.UserName = v.User.FullName()
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *verificationService) Detail(ctx context.Context, userID uuid.UUID) (*dto.VerificationDetailResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	resp := &dto.VerificationDetailResponse{
		User: mapUser(user, nil),
	}

	if comp, err := s.compliance.FindByUser(ctx, userID); err == nil {
		resp.Compliance = *maskCompliance(comp)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if verif, err := s.verification.FindByUser(ctx, userID); err == nil {
		resp.Verification = mapVerification(verif)
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.Verification = dto.VerificationResponse{UserID: userID.String(), Status: model.VerificationPending}
	} else {
		return nil, err
	}

	docs, err := s.documents.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp.Documents = make([]dto.DocumentFileResponse, 0, len(docs))
	for i := range docs {
		resp.Documents = append(resp.Documents, mapDocumentFile(&docs[i]))
	}
	return resp, nil
}

func (s *verificationService) Review(ctx context.Context, reviewerID, userID uuid.UUID, req dto.ReviewVerificationRequest) (*dto.VerificationResponse, error) {
	v, err := s.verification.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	v.Status = req.Status
	v.ReviewedAt = &now
	v.ReviewedBy = &reviewerID
	v.ReviewNotes = req.ReviewNotes
	if err := s.verification.Update(ctx, v); err != nil {
		return nil, err
	}

	// Decision email is best effort: the review stands even if the queue is
	// unavailable.
	if user, err := s.users.FindByID(ctx, userID); err == nil {
		subject, body := decisionEmail(user, v)
		if err := s.jobs.EnqueueEmail(ctx, user.Email, subject, body); err != nil {
			log.Error().Err(err).Str("user_id", userID.String()).Msg("verification review: email enqueue failed")
		}
	}

	resp := mapVerification(v)
	return &resp, nil
}

func decisionEmail(user *model.User, v *model.UserVerification) (subject, body string) {
	if v.Status == model.VerificationApproved {
		subject = "Documentos aprovados"
		body = fmt.Sprintf("Olá %s,\n\nOs seus documentos foram verificados e aprovados.\n", user.FullName())
	} else {
		subject = "Documentos rejeitados"
		body = fmt.Sprintf("Olá %s,\n\nA verificação dos seus documentos foi rejeitada.\n", user.FullName())
		if v.ReviewNotes != nil && *v.ReviewNotes != "" {
			body += fmt.Sprintf("\nMotivo: %s\n", *v.ReviewNotes)
		}
		body += "\nPor favor corrija os documentos e submeta novamente.\n"
	}
	return subject, body
}
