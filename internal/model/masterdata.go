package model

import (
	"time"

	"github.com/google/uuid"
)

// Client is a customer the fleet works for.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Client) TableName() string { return "clients" }

// Location is a work site belonging to a client.
type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Client *Client `gorm:"foreignKey:ClientID"`
}

func (Location) TableName() string { return "locations" }

// Service is a type of work performed during an activity.
type Service struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Service) TableName() string { return "services" }
