package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"memeverse/internal/app"
	"memeverse/internal/transport/http/middleware"
	"memeverse/internal/transport/http/response"
)

type UserHandler struct {
	userService *app.UserService
}

type UpdateBioRequest struct {
	Bio string `json:"bio"`
}

type UpdateNavbarRequest struct {
	NavbarSettings map[string]string `json:"navbarSettings"`
}

func NewUserHandler(userService *app.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	response.OK(c, h.userService.ListAllUsers(c.Request.Context()))
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch profile failed")
		return
	}
	if profile == nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "user not found")
		return
	}
	response.OK(c, profile)
}

func (h *UserHandler) UpdateBio(c *gin.Context) {
	var req UpdateBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	caller := middleware.CallerFrom(c)
	if !h.userService.UpdateBio(c.Request.Context(), caller, req.Bio) {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update bio failed")
		return
	}
	response.OK(c, gin.H{"success": true})
}

func (h *UserHandler) UpdateNavbarSettings(c *gin.Context) {
	var req UpdateNavbarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	caller := middleware.CallerFrom(c)
	err := h.userService.UpdateNavbarSettings(c.Request.Context(), caller, req.NavbarSettings)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNotLoggedIn):
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, err.Error())
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update navbar settings failed")
		}
		return
	}
	response.OK(c, gin.H{"success": true})
}

func (h *UserHandler) Search(c *gin.Context) {
	results, err := h.userService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "search failed")
		return
	}
	response.OK(c, gin.H{"results": results})
}
