package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"memeverse/internal/app"
	"memeverse/internal/pkg/jwtutil"
	"memeverse/internal/transport/http/middleware"
	"memeverse/internal/transport/http/response"
)

type AuthHandler struct {
	userService   *app.UserService
	jwtSecret     string
	jwtExpiration time.Duration
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=128"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=128"`
}

func NewAuthHandler(userService *app.UserService, jwtSecret string, jwtExpiration time.Duration) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	if err := h.userService.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrUsernameExists):
			response.Error(c, http.StatusBadRequest, response.CodeUsernameExists, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "registration failed")
		}
		return
	}

	h.issueToken(c, req.Username)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	if !h.userService.Authenticate(c.Request.Context(), req.Username, req.Password) {
		response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, "invalid username or password")
		return
	}

	h.issueToken(c, req.Username)
}

func (h *AuthHandler) Me(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	profile, err := h.userService.GetCurrentProfile(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch current profile failed")
		return
	}
	if profile == nil {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found")
		return
	}
	response.OK(c, profile)
}

// issueToken resolves the freshly authenticated user into a caller and
// mints the session token.
func (h *AuthHandler) issueToken(c *gin.Context, username string) {
	caller, err := h.userService.ResolveCaller(c.Request.Context(), username)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "resolve user failed")
		return
	}

	token, err := jwtutil.GenerateToken(h.jwtSecret, h.jwtExpiration, caller.UserID, caller.Username)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "issue token failed")
		return
	}

	response.OK(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":       caller.UserID,
			"username": caller.Username,
		},
	})
}
