package handler

import (
	"net/http"

	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VerificationsHandler serves the admin document verification queue.
type VerificationsHandler struct {
	verifications service.VerificationService
	docs          service.DocumentService
}

func NewVerificationsHandler(verifications service.VerificationService, docs service.DocumentService) *VerificationsHandler {
	return &VerificationsHandler{verifications: verifications, docs: docs}
}

// List godoc
// @Summary Verification queue
// @Tags verifications
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {array} dto.VerificationListRow
// @Router /v1/admin/verifications [get]
func (h *VerificationsHandler) List(c *gin.Context) {
	resp, err := h.verifications.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Detail returns the full dossier of one applicant: profile, masked
// compliance, verification state and document list.
func (h *VerificationsHandler) Detail(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		writeServiceError(c, service.ErrNotFound)
		return
	}
	resp, err := h.verifications.Detail(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SignedURL issues a 60s read URL for any applicant's document (admin scope).
func (h *VerificationsHandler) SignedURL(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		writeServiceError(c, service.ErrNotAuthorized)
		return
	}
	var req dto.SignedURLRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.docs.SignedURL(c.Request.Context(), caller, true, req.Path)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Review records the approve/reject decision for one applicant.
func (h *VerificationsHandler) Review(c *gin.Context) {
	reviewer, ok := callerID(c)
	if !ok {
		writeServiceError(c, service.ErrNotAuthorized)
		return
	}
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		writeServiceError(c, service.ErrNotFound)
		return
	}
	var req dto.ReviewVerificationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.verifications.Review(c.Request.Context(), reviewer, userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
