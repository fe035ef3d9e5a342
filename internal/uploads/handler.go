package uploads

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"coverletter-backend/internal/extract"
	"coverletter-backend/internal/shared/server/respond"
	"coverletter-backend/internal/shared/storage/object"
	"coverletter-backend/internal/shared/telemetry"
	"coverletter-backend/internal/shared/util"
)

const presignExpires = 15 * time.Minute

// Handler serves stored résumés and rendered letters by file name.
type Handler struct {
	store object.ObjectStore
}

func NewHandler(store object.ObjectStore) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/uploads/:name", h.download)
}

func (h *Handler) download(c *gin.Context) {
	raw := c.Param("name")
	name, err := util.SanitizeFileName(raw)
	if err != nil || name != raw {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return
	}

	if p, ok := h.store.(object.Presigner); ok {
		url, err := p.PresignGet(c.Request.Context(), name, presignExpires)
		if err == nil {
			c.Redirect(http.StatusFound, url)
			return
		}
		telemetry.Warn("uploads.presign_failed", map[string]any{
			"file_name":  name,
			"error":      err,
			"request_id": c.GetString("requestId"),
		})
	}

	rc, err := h.store.Open(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "File not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open file", nil)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", contentType(name))
	c.Header("Content-Disposition", `inline; filename="`+name+`"`)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		telemetry.Warn("uploads.stream_failed", map[string]any{
			"file_name":  name,
			"error":      err,
			"request_id": c.GetString("requestId"),
		})
	}
}

func contentType(name string) string {
	switch strings.TrimPrefix(util.Ext(name), ".") {
	case "pdf":
		return extract.FormatPDF.MimeType()
	case "doc":
		return extract.FormatDOC.MimeType()
	case "docx":
		return extract.FormatDOCX.MimeType()
	default:
		return "application/octet-stream"
	}
}
