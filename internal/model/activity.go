package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Activity review statuses.
const (
	ActivityPending  = "PENDING_VALIDATION"
	ActivityApproved = "APPROVED"
	ActivityRejected = "REJECTED"
)

// Activity is one machine-usage record. It is created when the operator
// starts work and closed later by filling the end_* fields; an activity is
// "open" while status = PENDING_VALIDATION and end_time is null. Review by an
// admin only ever flips Status.
type Activity struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OperatorID uuid.UUID `gorm:"type:uuid;not null;index"`
	MachineID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientID   *uuid.UUID `gorm:"type:uuid"`
	LocationID *uuid.UUID `gorm:"type:uuid"`
	ServiceID  *uuid.UUID `gorm:"type:uuid"`

	StartOdometer decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	EndOdometer   *decimal.Decimal `gorm:"type:numeric(12,2)"`

	StartGPS *GPSPoint `gorm:"column:start_gps;type:jsonb"`
	EndGPS   *GPSPoint `gorm:"column:end_gps;type:jsonb"`

	// Storage paths within the activity-photos bucket, never raw URLs.
	StartPhotoPath         *string
	StartOdometerPhotoPath *string
	EndPhotoPath           *string
	EndOdometerPhotoPath   *string

	Notes             *string
	AreaValue         *decimal.Decimal `gorm:"type:numeric(12,2)"`
	AreaUnit          *string
	AreaNotes         *string
	PerformanceRating *int

	Status    string `gorm:"type:varchar(30);not null;default:'PENDING_VALIDATION';index"`
	StartTime time.Time `gorm:"not null"`
	EndTime   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	Operator *User     `gorm:"foreignKey:OperatorID"`
	Machine  *Machine  `gorm:"foreignKey:MachineID"`
	Client   *Client   `gorm:"foreignKey:ClientID"`
	Location *Location `gorm:"foreignKey:LocationID"`
	Service  *Service  `gorm:"foreignKey:ServiceID"`
}

func (Activity) TableName() string { return "activities" }

// Open reports whether the activity is still awaiting its end fields.
func (a *Activity) Open() bool {
	return a.Status == ActivityPending && a.EndTime == nil
}
