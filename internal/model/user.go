package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated account. Authorization lives in UserRole rows,
// not on the user itself — a user may hold zero roles until an admin grants
// one.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	FirstName    *string
	LastName     *string
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Roles []UserRole `gorm:"foreignKey:UserID"`
}

func (User) TableName() string { return "users" }

// FullName joins first/last name, falling back to the email local part.
func (u *User) FullName() string {
	name := ""
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}
