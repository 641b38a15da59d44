package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateMachineRequest struct {
	Name         string  `json:"name"          validate:"required,min=1,max=150"`
	InternalID   *string `json:"internal_id"   validate:"omitempty,max=50"`
	Brand        *string `json:"brand"         validate:"omitempty,max=100"`
	Model        *string `json:"model"         validate:"omitempty,max=100"`
	Plate        *string `json:"plate"         validate:"omitempty,max=20"`
	SerialNumber *string `json:"serial_number" validate:"omitempty,max=100"`
	Status       *string `json:"status"        validate:"omitempty,oneof=ACTIVE MAINTENANCE INACTIVE"`
}

type UpdateMachineRequest struct {
	Name         *string `json:"name"          validate:"omitempty,min=1,max=150"`
	InternalID   *string `json:"internal_id"   validate:"omitempty,max=50"`
	Brand        *string `json:"brand"         validate:"omitempty,max=100"`
	Model        *string `json:"model"         validate:"omitempty,max=100"`
	Plate        *string `json:"plate"         validate:"omitempty,max=20"`
	SerialNumber *string `json:"serial_number" validate:"omitempty,max=100"`
	Status       *string `json:"status"        validate:"omitempty,oneof=ACTIVE MAINTENANCE INACTIVE"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MachineResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	InternalID   *string `json:"internal_id,omitempty"`
	Brand        *string `json:"brand,omitempty"`
	Model        *string `json:"model,omitempty"`
	Plate        *string `json:"plate,omitempty"`
	SerialNumber *string `json:"serial_number,omitempty"`
	Status       *string `json:"status,omitempty"`
}
