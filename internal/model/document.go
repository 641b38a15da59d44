package model

import (
	"time"

	"github.com/google/uuid"
)

// Document kinds accepted in the compliance flow.
const (
	DocCC                   = "CC"
	DocPassport             = "PASSPORT"
	DocResidenceTitle       = "RESIDENCE_TITLE"
	DocAIMAAppointmentProof = "AIMA_APPOINTMENT_PROOF"
	DocNISSProof            = "NISS_PROOF"
	DocNIFProof             = "NIF_PROOF"
	DocIBANProof            = "IBAN_PROOF"
	DocAddressProof         = "ADDRESS_PROOF"
)

// DocumentTypes lists every accepted doc_type value.
var DocumentTypes = []string{
	DocCC, DocPassport, DocResidenceTitle, DocAIMAAppointmentProof,
	DocNISSProof, DocNIFProof, DocIBANProof, DocAddressProof,
}

// ValidDocumentType reports whether t is a known document kind.
func ValidDocumentType(t string) bool {
	for _, known := range DocumentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// UserDocumentFile is the metadata row for one uploaded document. One row per
// (user, doc_type): re-uploading replaces rather than accumulates.
type UserDocumentFile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_doc_type"`
	DocType     string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_user_doc_type"`
	StoragePath string    `gorm:"not null"`
	FileName    *string
	MimeType    *string
	SizeBytes   *int64
	CreatedAt   time.Time

	User *User `gorm:"foreignKey:UserID"`
}

func (UserDocumentFile) TableName() string { return "user_document_files" }
