package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SignupRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name"  validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UserResponse struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName *string  `json:"first_name"`
	LastName  *string  `json:"last_name"`
	Roles     []string `json:"roles"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"` // seconds
	User         UserResponse `json:"user"`
}

// MeResponse carries the profile plus the boolean role checks clients gate
// their views on.
type MeResponse struct {
	User                 UserResponse `json:"user"`
	IsSuperAdmin         bool         `json:"is_super_admin"`
	IsAdminOrSuperAdmin  bool         `json:"is_admin_or_super_admin"`
	IsCoordenadorOrAbove bool         `json:"is_coordenador_or_above"`
}
