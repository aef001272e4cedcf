package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"memeverse/internal/app"
)

type MediaHandler struct {
	mediaService *app.MediaService
}

func NewMediaHandler(mediaService *app.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// ServeMedia streams the full blob. Memes are immutable, so responses
// are cacheable for a year with an ETag derived from id and size.
func (h *MediaHandler) ServeMedia(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Media not found")
		return
	}

	content, err := h.mediaService.ServeMedia(c.Request.Context(), uint(id))
	if err != nil {
		c.String(http.StatusInternalServerError, "Error serving media")
		return
	}
	if content == nil {
		c.String(http.StatusNotFound, "Media not found")
		return
	}

	c.Header("Accept-Ranges", "bytes")
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Header("ETag", fmt.Sprintf("%q", fmt.Sprintf("%d-%d", id, len(content.Data))))
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", content.Filename))
	c.Data(http.StatusOK, content.ContentType, content.Data)
}
