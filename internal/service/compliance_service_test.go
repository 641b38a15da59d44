package service

import (
	"context"
	"testing"

	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/piicrypt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func newComplianceSvc(t *testing.T) (ComplianceService, *memCompliance, *piicrypt.Encryptor) {
	t.Helper()
	enc, err := piicrypt.New("test-pii-secret")
	require.NoError(t, err)
	repo := newMemCompliance()
	return NewComplianceService(repo, enc), repo, enc
}

func TestComplianceUpsertEncryptsAndMasks(t *testing.T) {
	svc, repo, enc := newComplianceSvc(t)
	ctx := context.Background()
	userID := uuid.New()

	resp, err := svc.Upsert(ctx, userID, dto.ComplianceUpsertRequest{
		NIF:  strptr("123456789"),
		IBAN: strptr("PT50000201231234567890154"),
		City: strptr("Lisboa"),
	})
	require.NoError(t, err)
	assert.True(t, resp.OK)
	require.NotNil(t, resp.Masked.NIFLast4)
	assert.Equal(t, "6789", *resp.Masked.NIFLast4)
	require.NotNil(t, resp.Masked.IBANLast4)
	assert.Equal(t, "0154", *resp.Masked.IBANLast4)
	assert.Nil(t, resp.Masked.NISSLast4)

	// The stored blob is ciphertext, not the raw value.
	row, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.NotContains(t, string(row.NIFEnc), "123456789")
	pt, err := enc.Decrypt(row.NIFEnc)
	require.NoError(t, err)
	assert.Equal(t, "123456789", pt)
}

func TestComplianceUpsertMergesOverExisting(t *testing.T) {
	svc, repo, _ := newComplianceSvc(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Upsert(ctx, userID, dto.ComplianceUpsertRequest{
		NIF:  strptr("123456789"),
		City: strptr("Lisboa"),
	})
	require.NoError(t, err)

	// Omitted fields keep their stored value.
	resp, err := svc.Upsert(ctx, userID, dto.ComplianceUpsertRequest{
		NISS: strptr("11111111111"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Masked.NIFLast4)
	assert.Equal(t, "6789", *resp.Masked.NIFLast4)
	require.NotNil(t, resp.Masked.NISSLast4)
	assert.Equal(t, "1111", *resp.Masked.NISSLast4)

	row, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.NotEmpty(t, row.NIFEnc)
	require.NotNil(t, row.City)
	assert.Equal(t, "Lisboa", *row.City)

	// An explicit empty string clears the field.
	resp, err = svc.Upsert(ctx, userID, dto.ComplianceUpsertRequest{NIF: strptr("")})
	require.NoError(t, err)
	assert.Nil(t, resp.Masked.NIFLast4)
	row, err = repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, row.NIFEnc)
}

func TestMaskedNeverExposesRawValues(t *testing.T) {
	svc, _, _ := newComplianceSvc(t)
	ctx := context.Background()
	userID := uuid.New()

	// No row yet: empty masks, not an error.
	masked, err := svc.Masked(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, masked.NIFLast4)

	_, err = svc.Upsert(ctx, userID, dto.ComplianceUpsertRequest{
		NIF:          strptr("987654321"),
		AddressLine1: strptr("Rua A, 1"),
	})
	require.NoError(t, err)

	masked, err = svc.Masked(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, masked.NIFLast4)
	assert.Equal(t, "4321", *masked.NIFLast4)
	require.NotNil(t, masked.AddressLine1)
	assert.Equal(t, "Rua A, 1", *masked.AddressLine1)
}
