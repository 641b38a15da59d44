package handler

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/parmenasoares/track-and-work/internal/apierror"
	"github.com/parmenasoares/track-and-work/internal/i18n"
	"github.com/parmenasoares/track-and-work/internal/infra"
	"github.com/parmenasoares/track-and-work/internal/service"

	"github.com/gin-gonic/gin"
)

// FilesHandler redeems signed URLs:
//
//	GET /v1/files/:bucket/*path?exp=...&sig=...
//
// This route is unauthenticated by design — the signature is the credential —
// so every failure mode answers the same generic 404.
type FilesHandler struct{ store *infra.ObjectStore }

func NewFilesHandler(store *infra.ObjectStore) *FilesHandler {
	return &FilesHandler{store: store}
}

func (h *FilesHandler) Serve(c *gin.Context) {
	bucket := c.Param("bucket")
	objectPath := strings.TrimPrefix(c.Param("path"), "/")
	exp := c.Query("exp")
	sig := c.Query("sig")

	deny := func() {
		msg := i18n.MapPublicError(service.ErrNotFound, requestLang(c))
		c.JSON(http.StatusNotFound, apierror.New(msg))
	}

	if exp == "" || sig == "" {
		deny()
		return
	}
	if err := h.store.VerifySignature(bucket, objectPath, exp, sig); err != nil {
		deny()
		return
	}

	f, err := h.store.Open(bucket, objectPath)
	if err != nil {
		deny()
		return
	}
	defer f.Close()

	contentType := mime.TypeByExtension(path.Ext(objectPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "private, max-age=55")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, f)
}
