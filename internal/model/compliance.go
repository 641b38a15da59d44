package model

import (
	"time"

	"github.com/google/uuid"
)

// UserCompliance holds the operator's fiscal/banking identifiers. The raw
// values are encrypted before they reach this row (nonce‖ciphertext blobs);
// only the last-4 columns are ever serialized back to a client. The *_enc
// fields are json:"-" as defense in depth: even a careless handler cannot
// leak ciphertext.
type UserCompliance struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`

	NIFEnc  []byte `gorm:"column:nif_enc;type:bytea" json:"-"`
	NISSEnc []byte `gorm:"column:niss_enc;type:bytea" json:"-"`
	IBANEnc []byte `gorm:"column:iban_enc;type:bytea" json:"-"`

	NIFLast4  *string `gorm:"column:nif_last4;type:varchar(4)"`
	NISSLast4 *string `gorm:"column:niss_last4;type:varchar(4)"`
	IBANLast4 *string `gorm:"column:iban_last4;type:varchar(4)"`

	AddressLine1 *string
	AddressLine2 *string
	City         *string
	PostalCode   *string
	Country      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserCompliance) TableName() string { return "user_compliance" }
