package model

import (
	"time"

	"github.com/google/uuid"
)

// Verification statuses.
const (
	VerificationPending  = "PENDING"
	VerificationApproved = "APPROVED"
	VerificationRejected = "REJECTED"
)

// UserVerification tracks the review state of a user's submitted documents.
type UserVerification struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status      string    `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	SubmittedAt *time.Time
	ReviewedAt  *time.Time
	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	ReviewNotes *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User     *User `gorm:"foreignKey:UserID"`
	Reviewer *User `gorm:"foreignKey:ReviewedBy"`
}

func (UserVerification) TableName() string { return "user_verifications" }
