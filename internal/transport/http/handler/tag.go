package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"memeverse/internal/app"
	"memeverse/internal/transport/http/middleware"
)

type TagHandler struct {
	tagService *app.TagService
}

type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type AddTagsRequest struct {
	TagIDs []uint `json:"tag_ids"`
}

func NewTagHandler(tagService *app.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func (h *TagHandler) GetUserTags(c *gin.Context) {
	tags, err := h.tagService.GetUserTags(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "tags": tags})
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid request payload"})
		return
	}
	if req.Color == "" {
		req.Color = app.DefaultTagColor
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), middleware.CallerFrom(c), req.Name, req.Color)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "tag": tag})
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	tagID, ok := h.uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(c.Request.Context(), middleware.CallerFrom(c), tagID); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Tag deleted"})
}

func (h *TagHandler) GetMemeTags(c *gin.Context) {
	memeID, ok := h.uintParam(c, "id")
	if !ok {
		return
	}

	tags, err := h.tagService.GetMemeTags(c.Request.Context(), middleware.CallerFrom(c), memeID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "tags": tags})
}

func (h *TagHandler) AddTagsToMeme(c *gin.Context) {
	memeID, ok := h.uintParam(c, "id")
	if !ok {
		return
	}

	var req AddTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.TagIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Tag IDs are required"})
		return
	}

	if err := h.tagService.AddTagsToMeme(c.Request.Context(), middleware.CallerFrom(c), memeID, req.TagIDs); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Tags added to meme"})
}

func (h *TagHandler) RemoveTagFromMeme(c *gin.Context) {
	memeID, ok := h.uintParam(c, "id")
	if !ok {
		return
	}
	tagID, ok := h.uintParam(c, "tagId")
	if !ok {
		return
	}

	if err := h.tagService.RemoveTagFromMeme(c.Request.Context(), middleware.CallerFrom(c), memeID, tagID); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Tag removed from meme"})
}

func (h *TagHandler) uintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid id"})
		return 0, false
	}
	return uint(value), true
}

func (h *TagHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrNotLoggedIn):
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not logged in"})
	case errors.Is(err, app.ErrBlankTagName), errors.Is(err, app.ErrInvalidColor):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
	case errors.Is(err, app.ErrTagNotFound), errors.Is(err, app.ErrTagNotOnMeme), errors.Is(err, app.ErrMemeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "tag operation failed"})
	}
}
