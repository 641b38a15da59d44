package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GPS is a device fix captured at start/close time.
type GPS struct {
	Lat      float64  `json:"lat"      validate:"required,gte=-90,lte=90"`
	Lng      float64  `json:"lng"      validate:"required,gte=-180,lte=180"`
	Accuracy *float64 `json:"accuracy" validate:"omitempty,gte=0"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type StartActivityRequest struct {
	MachineID     string          `json:"machine_id"     validate:"required,uuid"`
	// Pointer so that a reading of exactly 0 (a brand-new machine) survives
	// the required check; min=0 still rejects negatives.
	StartOdometer *decimal.Decimal `json:"start_odometer" validate:"required,min=0"`
	// GPS capture is mandatory at start: a start without a fix is rejected
	// before anything is written.
	StartGPS *GPS `json:"start_gps" validate:"required"`

	ClientID   *string `json:"client_id"   validate:"omitempty,uuid"`
	LocationID *string `json:"location_id" validate:"omitempty,uuid"`
	ServiceID  *string `json:"service_id"  validate:"omitempty,uuid"`
	Notes      *string `json:"notes"       validate:"omitempty,max=2000"`

	StartPhotoPath         *string `json:"start_photo_path"`
	StartOdometerPhotoPath *string `json:"start_odometer_photo_path"`
}

type CloseActivityRequest struct {
	EndOdometer       *decimal.Decimal `json:"end_odometer"       validate:"required,min=0"`
	PerformanceRating int             `json:"performance_rating" validate:"required,min=1,max=5"`
	EndGPS            *GPS            `json:"end_gps"            validate:"omitempty"`

	AreaValue *decimal.Decimal `json:"area_value" validate:"omitempty,min=0"`
	AreaUnit  *string          `json:"area_unit"  validate:"omitempty,max=20"`
	AreaNotes *string          `json:"area_notes" validate:"omitempty,max=2000"`
	Notes     *string          `json:"notes"      validate:"omitempty,max=2000"`

	EndPhotoPath         *string `json:"end_photo_path"`
	EndOdometerPhotoPath *string `json:"end_odometer_photo_path"`
}

type ReviewActivityRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ActivityResponse struct {
	ID         string  `json:"id"`
	OperatorID string  `json:"operator_id"`
	MachineID  string  `json:"machine_id"`
	ClientID   *string `json:"client_id,omitempty"`
	LocationID *string `json:"location_id,omitempty"`
	ServiceID  *string `json:"service_id,omitempty"`

	StartOdometer decimal.Decimal  `json:"start_odometer"`
	EndOdometer   *decimal.Decimal `json:"end_odometer,omitempty"`
	StartGPS      *GPS             `json:"start_gps,omitempty"`
	EndGPS        *GPS             `json:"end_gps,omitempty"`

	StartPhotoPath         *string `json:"start_photo_path,omitempty"`
	StartOdometerPhotoPath *string `json:"start_odometer_photo_path,omitempty"`
	EndPhotoPath           *string `json:"end_photo_path,omitempty"`
	EndOdometerPhotoPath   *string `json:"end_odometer_photo_path,omitempty"`

	Notes             *string          `json:"notes,omitempty"`
	AreaValue         *decimal.Decimal `json:"area_value,omitempty"`
	AreaUnit          *string          `json:"area_unit,omitempty"`
	AreaNotes         *string          `json:"area_notes,omitempty"`
	PerformanceRating *int             `json:"performance_rating,omitempty"`

	Status    string     `json:"status"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

// ActivityReviewRow is the joined row the admin validation table renders —
// names resolved server-side instead of the old per-id client fan-out.
type ActivityReviewRow struct {
	ActivityResponse
	OperatorName string `json:"operator_name"`
	MachineName  string `json:"machine_name"`
	ClientName   string `json:"client_name,omitempty"`
	LocationName string `json:"location_name,omitempty"`
	ServiceName  string `json:"service_name,omitempty"`
}

// PhotoUploadResponse returns only the storage path; clients obtain a signed
// URL separately when they need to display the photo.
type PhotoUploadResponse struct {
	Path string `json:"path"`
}

// ActivityPhotosResponse carries 60s signed URLs for the four photo slots.
type ActivityPhotosResponse struct {
	StartPhotoURL         *string `json:"start_photo_url,omitempty"`
	StartOdometerPhotoURL *string `json:"start_odometer_photo_url,omitempty"`
	EndPhotoURL           *string `json:"end_photo_url,omitempty"`
	EndOdometerPhotoURL   *string `json:"end_odometer_photo_url,omitempty"`
}
