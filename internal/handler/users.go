package handler

import (
	"errors"
	"net/http"

	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/i18n"
	"github.com/parmenasoares/track-and-work/internal/service"

	"github.com/gin-gonic/gin"
)

// UsersHandler serves account listing and role administration.
type UsersHandler struct{ svc service.RoleService }

func NewUsersHandler(svc service.RoleService) *UsersHandler {
	return &UsersHandler{svc: svc}
}

func (h *UsersHandler) List(c *gin.Context) {
	resp, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetRole godoc
// @Summary Grant a role by email
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.SetRoleRequest true "Target and role"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} apierror.APIError
// @Router /v1/admin/roles [post]
func (h *UsersHandler) SetRole(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		writeServiceError(c, service.ErrNotAuthorized)
		return
	}
	var req dto.SetRoleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SetRoleByEmail(c.Request.Context(), caller, req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *UsersHandler) RemoveRole(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		writeServiceError(c, service.ErrNotAuthorized)
		return
	}
	var req dto.RemoveRoleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.RemoveRoleByEmail(c.Request.Context(), caller, req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *UsersHandler) ListAssignments(c *gin.Context) {
	resp, err := h.svc.ListAssignments(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SuperAdminAssign grants SUPER_ADMIN to a batch of emails. Every email must
// resolve before anything is written; unknown ones come back in not_found.
func (h *UsersHandler) SuperAdminAssign(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		writeServiceError(c, service.ErrNotAuthorized)
		return
	}
	var req dto.SuperAdminAssignRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, notFound, err := h.svc.AssignSuperAdmins(c.Request.Context(), caller, req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) && len(notFound) > 0 {
			c.JSON(http.StatusNotFound, gin.H{
				"detail":    i18n.MapPublicError(err, requestLang(c)),
				"code":      service.ErrUserNotFound.Error(),
				"not_found": notFound,
			})
			return
		}
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
