package handler

import (
	"net/http"

	"github.com/parmenasoares/track-and-work/internal/apierror"
	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/service"

	"github.com/gin-gonic/gin"
)

// DocumentsHandler serves the operator compliance screen: PII submit,
// document uploads, signed read URLs and verification submission.
type DocumentsHandler struct {
	docs       service.DocumentService
	compliance service.ComplianceService
}

func NewDocumentsHandler(docs service.DocumentService, compliance service.ComplianceService) *DocumentsHandler {
	return &DocumentsHandler{docs: docs, compliance: compliance}
}

// My godoc
// @Summary Compliance masks, verification state and document list
// @Tags documents
// @Produce json
// @Success 200 {object} dto.MyDocumentsResponse
// @Router /v1/documents/me [get]
func (h *DocumentsHandler) My(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		writeServiceError(c, service.ErrNotAuthorized)
		return
	}
	resp, err := h.docs.MyDocuments(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpsertCompliance accepts raw PII exactly once and answers with masks only.
func (h *DocumentsHandler) UpsertCompliance(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		writeServiceError(c, service.ErrNotAuthorized)
		return
	}
	var req dto.ComplianceUpsertRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.compliance.Upsert(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Upload accepts one multipart document:
//
//	POST /v1/documents/:doc_type  (form: file)
func (h *DocumentsHandler) Upload(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		writeServiceError(c, service.ErrNotAuthorized)
		return
	}
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

	resp, err := h.docs.Upload(c.Request.Context(), userID,
		c.Param("doc_type"), header.Filename, header.Header.Get("Content-Type"), header.Size, f)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *DocumentsHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		writeServiceError(c, service.ErrNotAuthorized)
		return
	}
	if err := h.docs.Delete(c.Request.Context(), userID, c.Param("doc_type")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SignedURL issues a 60s read URL for one of the caller's own documents.
func (h *DocumentsHandler) SignedURL(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		writeServiceError(c, service.ErrNotAuthorized)
		return
	}
	var req dto.SignedURLRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.docs.SignedURL(c.Request.Context(), userID, false, req.Path)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitVerification (re)submits the caller's dossier for review.
func (h *DocumentsHandler) SubmitVerification(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		writeServiceError(c, service.ErrNotAuthorized)
		return
	}
	resp, err := h.docs.SubmitVerification(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
