package service

import (
	"context"
	"errors"
	"strings"

	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/model"
	"github.com/parmenasoares/track-and-work/internal/piicrypt"
	"github.com/parmenasoares/track-and-work/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComplianceService handles the PII submit flow: raw identifiers come in
// exactly once, are encrypted field-by-field, and only the last-4 masks ever
// travel back out.
type ComplianceService interface {
	Upsert(ctx context.Context, userID uuid.UUID, req dto.ComplianceUpsertRequest) (*dto.ComplianceUpsertResponse, error)
	Masked(ctx context.Context, userID uuid.UUID) (*dto.MaskedCompliance, error)
}

type complianceService struct {
	compliance repository.ComplianceRepository
	enc        *piicrypt.Encryptor
}

func NewComplianceService(compliance repository.ComplianceRepository, enc *piicrypt.Encryptor) ComplianceService {
	return &complianceService{compliance: compliance, enc: enc}
}

// applyPII encrypts one submitted field in place. A nil value leaves the
// stored field alone; an empty string clears it.
func (s *complianceService) applyPII(raw *string, blob *[]byte, last4 **string) error {
	if raw == nil {
		return nil
	}
	v := strings.TrimSpace(*raw)
	if v == "" {
		*blob = nil
		*last4 = nil
		return nil
	}
	ct, err := s.enc.Encrypt(v)
	if err != nil {
		return err
	}
	mask := piicrypt.Last4(v)
	*blob = ct
	*last4 = &mask
	return nil
}

func (s *complianceService) Upsert(ctx context.Context, userID uuid.UUID, req dto.ComplianceUpsertRequest) (*dto.ComplianceUpsertResponse, error) {
	// Merge over the existing row: omitted fields keep their stored value,
	// because the upsert replaces the whole row.
	row, err := s.compliance.FindByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		row = &model.UserCompliance{UserID: userID}
	}

	if err := s.applyPII(req.NIF, &row.NIFEnc, &row.NIFLast4); err != nil {
		return nil, err
	}
	if err := s.applyPII(req.NISS, &row.NISSEnc, &row.NISSLast4); err != nil {
		return nil, err
	}
	if err := s.applyPII(req.IBAN, &row.IBANEnc, &row.IBANLast4); err != nil {
		return nil, err
	}

	if req.AddressLine1 != nil {
		row.AddressLine1 = req.AddressLine1
	}
	if req.AddressLine2 != nil {
		row.AddressLine2 = req.AddressLine2
	}
	if req.City != nil {
		row.City = req.City
	}
	if req.PostalCode != nil {
		row.PostalCode = req.PostalCode
	}
	if req.Country != nil {
		row.Country = req.Country
	}

	if err := s.compliance.Upsert(ctx, row); err != nil {
		return nil, err
	}

	resp := &dto.ComplianceUpsertResponse{OK: true}
	resp.Masked.NIFLast4 = row.NIFLast4
	resp.Masked.NISSLast4 = row.NISSLast4
	resp.Masked.IBANLast4 = row.IBANLast4
	return resp, nil
}

func (s *complianceService) Masked(ctx context.Context, userID uuid.UUID) (*dto.MaskedCompliance, error) {
	row, err := s.compliance.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.MaskedCompliance{}, nil
		}
		return nil, err
	}
	return maskCompliance(row), nil
}

func maskCompliance(row *model.UserCompliance) *dto.MaskedCompliance {
	return &dto.MaskedCompliance{
		NIFLast4:     row.NIFLast4,
		NISSLast4:    row.NISSLast4,
		IBANLast4:    row.IBANLast4,
		AddressLine1: row.AddressLine1,
		AddressLine2: row.AddressLine2,
		City:         row.City,
		PostalCode:   row.PostalCode,
		Country:      row.Country,
	}
}
