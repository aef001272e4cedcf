package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"memeverse/internal/app"
	"memeverse/internal/transport/http/middleware"
)

type FeedHandler struct {
	feedService *app.FeedService
	likeService *app.LikeService
}

// feedEntry is the legacy wire shape the frontend scroller consumes.
type feedEntry struct {
	ID        string `json:"id"`
	Liked     bool   `json:"liked"`
	MediaURL  string `json:"media_url"`
	MediaType string `json:"media_type"`
}

func NewFeedHandler(feedService *app.FeedService, likeService *app.LikeService) *FeedHandler {
	return &FeedHandler{feedService: feedService, likeService: likeService}
}

// GetFeed serves a random batch. The liked flag is enriched here, not in
// the feed service, because it depends on the caller's identity.
func (h *FeedHandler) GetFeed(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "1"))
	if err != nil {
		count = 1
	}
	if count < 0 {
		count = 0
	}

	caller := middleware.CallerFrom(c)
	items, hasMore := h.feedService.GetFeedItems(c.Request.Context(), caller, count)

	liked := map[string]bool{}
	if caller != nil {
		liked = h.likeService.LikedSet(c.Request.Context(), caller.Username)
	}

	entries := make([]feedEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, feedEntry{
			ID:        item.ID,
			Liked:     liked[item.ID],
			MediaURL:  item.MediaURL,
			MediaType: item.MediaType,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"items":   entries,
		"hasMore": hasMore,
	})
}

func (h *FeedHandler) GetTotal(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"total": h.feedService.GetTotalItems(c.Request.Context()),
	})
}
