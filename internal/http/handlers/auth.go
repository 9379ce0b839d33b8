package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/nutrilog-backend/internal/http/response"
	"github.com/yungbote/nutrilog-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if _, err := ah.authService.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	ah.login(c, req)
}

// POST /api/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ah.login(c, req)
}

func (ah *AuthHandler) login(c *gin.Context, req credentialsRequest) {
	accessToken, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token": accessToken,
		"expires_in":   int(ah.authService.AccessTTL().Seconds()),
	})
}
