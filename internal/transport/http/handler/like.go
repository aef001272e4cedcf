package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"memeverse/internal/app"
	"memeverse/internal/transport/http/middleware"
)

type LikeHandler struct {
	likeService *app.LikeService
}

func NewLikeHandler(likeService *app.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

func (h *LikeHandler) ToggleLike(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	action, err := h.likeService.ToggleLike(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNotLoggedIn):
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not logged in"})
		case errors.Is(err, app.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to toggle like"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "action": action})
}

// GetLikedMemes pages a user's liked list. The error strings are fixed
// contract values the frontend maps to status handling.
func (h *LikeHandler) GetLikedMemes(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "12"))
	if err != nil {
		perPage = 12
	}

	caller := middleware.CallerFrom(c)
	result, err := h.likeService.GetUserLikedMemes(c.Request.Context(), caller, c.Query("username"), page, perPage)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNotAuthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		case errors.Is(err, app.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load liked memes"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
