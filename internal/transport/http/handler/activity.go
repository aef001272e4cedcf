package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"memeverse/internal/app"
	"memeverse/internal/transport/http/middleware"
	"memeverse/internal/transport/http/response"
)

type ActivityHandler struct {
	activityService *app.ActivityService
}

func NewActivityHandler(activityService *app.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) Recent(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		limit = 20
	}

	events, err := h.activityService.RecentByCaller(c.Request.Context(), middleware.CallerFrom(c), limit)
	if err != nil {
		if errors.Is(err, app.ErrNotLoggedIn) {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch activity failed")
		return
	}
	response.OK(c, gin.H{"events": events})
}
