package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ComplianceUpsertRequest carries raw PII exactly once: on submit. Lengths are
// capped server-side; values are encrypted before persistence and never
// echoed back.
type ComplianceUpsertRequest struct {
	NIF  *string `json:"nif"  validate:"omitempty,max=64"`
	NISS *string `json:"niss" validate:"omitempty,max=64"`
	IBAN *string `json:"iban" validate:"omitempty,max=128"`

	AddressLine1 *string `json:"address_line1" validate:"omitempty,max=200"`
	AddressLine2 *string `json:"address_line2" validate:"omitempty,max=200"`
	City         *string `json:"city"          validate:"omitempty,max=120"`
	PostalCode   *string `json:"postal_code"   validate:"omitempty,max=32"`
	Country      *string `json:"country"       validate:"omitempty,max=80"`
}

type SignedURLRequest struct {
	Path string `json:"path" validate:"required,max=500"`
}

type ReviewVerificationRequest struct {
	Status      string  `json:"status"       validate:"required,oneof=APPROVED REJECTED"`
	ReviewNotes *string `json:"review_notes" validate:"omitempty,max=2000"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// MaskedCompliance exposes only the last-4 masks and the non-PII address
// fields. There is intentionally no field for the raw or encrypted values.
type MaskedCompliance struct {
	NIFLast4  *string `json:"nif_last4"`
	NISSLast4 *string `json:"niss_last4"`
	IBANLast4 *string `json:"iban_last4"`

	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	PostalCode   *string `json:"postal_code"`
	Country      *string `json:"country"`
}

type ComplianceUpsertResponse struct {
	OK     bool `json:"ok"`
	Masked struct {
		NIFLast4  *string `json:"nif_last4"`
		NISSLast4 *string `json:"niss_last4"`
		IBANLast4 *string `json:"iban_last4"`
	} `json:"masked"`
}

type VerificationResponse struct {
	UserID      string     `json:"user_id"`
	Status      string     `json:"status"`
	SubmittedAt *time.Time `json:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
	ReviewNotes *string    `json:"review_notes"`
}

type DocumentFileResponse struct {
	DocType     string    `json:"doc_type"`
	StoragePath string    `json:"storage_path"`
	FileName    *string   `json:"file_name"`
	MimeType    *string   `json:"mime_type"`
	SizeBytes   *int64    `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// MyDocumentsResponse is the aggregate the documents screen loads in one call.
type MyDocumentsResponse struct {
	Compliance   MaskedCompliance       `json:"compliance"`
	Verification VerificationResponse   `json:"verification"`
	Documents    []DocumentFileResponse `json:"documents"`
}

type SignedURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"` // seconds
}

// VerificationListRow is one entry of the admin verification queue.
type VerificationListRow struct {
	VerificationResponse
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
}

// VerificationDetailResponse is the admin review view of one applicant.
type VerificationDetailResponse struct {
	User         UserResponse           `json:"user"`
	Compliance   MaskedCompliance       `json:"compliance"`
	Verification VerificationResponse   `json:"verification"`
	Documents    []DocumentFileResponse `json:"documents"`
}
