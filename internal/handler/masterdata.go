package handler

import (
	"net/http"

	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MasterDataHandler serves the clients / locations / services reference data.
type MasterDataHandler struct{ svc service.MasterDataService }

func NewMasterDataHandler(svc service.MasterDataService) *MasterDataHandler {
	return &MasterDataHandler{svc: svc}
}

// ── Clients ──────────────────────────────────────────────────────────────────

func (h *MasterDataHandler) CreateClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateClient(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MasterDataHandler) ListClients(c *gin.Context) {
	resp, err := h.svc.ListClients(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MasterDataHandler) DeleteClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeServiceError(c, service.ErrNotFound)
		return
	}
	if err := h.svc.DeleteClient(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ── Locations ────────────────────────────────────────────────────────────────

func (h *MasterDataHandler) CreateLocation(c *gin.Context) {
	var req dto.CreateLocationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateLocation(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListLocations optionally filters by ?client_id=.
func (h *MasterDataHandler) ListLocations(c *gin.Context) {
	var clientID *uuid.UUID
	if q := c.Query("client_id"); q != "" {
		id, err := uuid.Parse(q)
		if err != nil {
			writeServiceError(c, service.ErrNotFound)
			return
		}
		clientID = &id
	}
	resp, err := h.svc.ListLocations(c.Request.Context(), clientID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MasterDataHandler) DeleteLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeServiceError(c, service.ErrNotFound)
		return
	}
	if err := h.svc.DeleteLocation(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ── Services ─────────────────────────────────────────────────────────────────

func (h *MasterDataHandler) CreateService(c *gin.Context) {
	var req dto.CreateServiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateService(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MasterDataHandler) ListServices(c *gin.Context) {
	resp, err := h.svc.ListServices(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MasterDataHandler) DeleteService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeServiceError(c, service.ErrNotFound)
		return
	}
	if err := h.svc.DeleteService(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
