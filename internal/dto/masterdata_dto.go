package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateClientRequest struct {
	Name string `json:"name" validate:"required,min=1,max=150"`
}

type CreateLocationRequest struct {
	ClientID string `json:"client_id" validate:"required,uuid"`
	Name     string `json:"name"      validate:"required,min=1,max=150"`
}

type CreateServiceRequest struct {
	Name string `json:"name" validate:"required,min=1,max=150"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClientResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LocationResponse struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
}

type ServiceResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
