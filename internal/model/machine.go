package model

import (
	"time"

	"github.com/google/uuid"
)

// Machine statuses.
const (
	MachineActive      = "ACTIVE"
	MachineMaintenance = "MAINTENANCE"
	MachineInactive    = "INACTIVE"
)

// Machine is a fleet unit operators log activities against.
type Machine struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InternalID   *string
	Brand        *string
	Name         string `gorm:"not null"`
	Model        *string
	Plate        *string
	SerialNumber *string
	Status       *string `gorm:"type:varchar(20);default:'ACTIVE'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Machine) TableName() string { return "machines" }
