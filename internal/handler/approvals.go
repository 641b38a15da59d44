package handler

import (
	"fmt"
	"net/http"

	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ApprovalsHandler serves the admin activity validation flow.
type ApprovalsHandler struct{ svc service.ActivityService }

func NewApprovalsHandler(svc service.ActivityService) *ApprovalsHandler {
	return &ApprovalsHandler{svc: svc}
}

// List godoc
// @Summary Activities awaiting validation
// @Tags approvals
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {array} dto.ActivityReviewRow
// @Router /v1/admin/activities [get]
func (h *ApprovalsHandler) List(c *gin.Context) {
	resp, err := h.svc.ListForReview(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Review flips one activity to APPROVED or REJECTED.
func (h *ApprovalsHandler) Review(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeServiceError(c, service.ErrNotFound)
		return
	}
	var req dto.ReviewActivityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Review(c.Request.Context(), activityID, req.Status); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Report streams the printable PDF summary of one activity.
func (h *ApprovalsHandler) Report(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeServiceError(c, service.ErrNotFound)
		return
	}
	data, filename, err := h.svc.Report(c.Request.Context(), activityID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
