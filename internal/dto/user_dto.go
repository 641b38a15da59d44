package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SetRoleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"required,oneof=SUPER_ADMIN ADMIN COORDENADOR OPERADOR"`
}

type RemoveRoleRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SuperAdminAssignRequest struct {
	Emails []string `json:"emails" validate:"required,min=1,dive,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RoleAssignmentResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	UserEmail    string    `json:"user_email"`
	Role         string    `json:"role"`
	GrantedBy    *string   `json:"granted_by,omitempty"`
	GrantedEmail *string   `json:"granted_by_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type AssignResultEntry struct {
	Email  string `json:"email"`
	UserID string `json:"user_id"`
	Status string `json:"status"` // ok | error
	Error  string `json:"error,omitempty"`
}

type SuperAdminAssignResponse struct {
	OK      int                 `json:"ok"`
	Err     int                 `json:"err"`
	Results []AssignResultEntry `json:"results"`
}
