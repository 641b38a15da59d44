package handler

import (
	"net/http"

	"github.com/parmenasoares/track-and-work/internal/apierror"
	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/middleware"
	"github.com/parmenasoares/track-and-work/internal/model"
	"github.com/parmenasoares/track-and-work/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ActivitiesHandler struct{ svc service.ActivityService }

func NewActivitiesHandler(svc service.ActivityService) *ActivitiesHandler {
	return &ActivitiesHandler{svc: svc}
}

// Start godoc
// @Summary Start a new activity
// @Tags activities
// @Accept json
// @Produce json
// @Param body body dto.StartActivityRequest true "Start data"
// @Success 201 {object} dto.ActivityResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/activities [post]
func (h *ActivitiesHandler) Start(c *gin.Context) {
	operatorID, ok := callerID(c)
	if !ok {
		writeServiceError(c, service.ErrNotAuthorized)
		return
	}
	var req dto.StartActivityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Start(c.Request.Context(), operatorID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Open returns the caller's open activity, if any.
func (h *ActivitiesHandler) Open(c *gin.Context) {
	operatorID, ok := callerID(c)
	if !ok {
		writeServiceError(c, service.ErrNotAuthorized)
		return
	}
	resp, err := h.svc.Open(c.Request.Context(), operatorID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Close godoc
// @Summary Close an open activity
// @Tags activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param body body dto.CloseActivityRequest true "Close data"
// @Success 200 {object} dto.ActivityResponse
// @Router /v1/activities/{id}/close [post]
func (h *ActivitiesHandler) Close(c *gin.Context) {
	operatorID, ok := callerID(c)
	if !ok {
		writeServiceError(c, service.ErrNotAuthorized)
		return
	}
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeServiceError(c, service.ErrNotFound)
		return
	}
	var req dto.CloseActivityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Close(c.Request.Context(), operatorID, activityID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ActivitiesHandler) ListMine(c *gin.Context) {
	operatorID, ok := callerID(c)
	if !ok {
		writeServiceError(c, service.ErrNotAuthorized)
		return
	}
	resp, err := h.svc.ListMine(c.Request.Context(), operatorID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UploadPhoto accepts one multipart photo for a named slot:
//
//	POST /v1/activities/photos  (form: prefix, file)
func (h *ActivitiesHandler) UploadPhoto(c *gin.Context) {
	operatorID, ok := callerID(c)
	if !ok {
		writeServiceError(c, service.ErrNotAuthorized)
		return
	}
	prefix := c.PostForm("prefix")
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Missing file field"))
		return
	}
	f, err := header.Open()
	if err != nil {
		writeServiceError(c, err)
		return
	}
	defer f.Close()

	resp, err := h.svc.UploadPhoto(c.Request.Context(), operatorID,
		prefix, header.Filename, header.Header.Get("Content-Type"), header.Size, f)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Photos returns signed URLs for the activity's photo slots. Owners always
// may; coordinators and above may for any activity.
func (h *ActivitiesHandler) Photos(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		writeServiceError(c, service.ErrNotAuthorized)
		return
	}
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeServiceError(c, service.ErrNotFound)
		return
	}
	claims := middleware.GetClaims(c)
	isReviewer := claims != nil && claims.HasRoleAtLeast(model.RoleCoordenador)

	resp, err := h.svc.Photos(c.Request.Context(), caller, isReviewer, activityID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
