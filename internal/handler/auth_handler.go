package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"libraryhub/internal/dto"
	"libraryhub/internal/middleware"
	"libraryhub/internal/service"
)

type AuthHandler struct {
	authService    service.AuthService
	accessTokenTTL time.Duration
}

func NewAuthHandler(authService service.AuthService, accessTokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, accessTokenTTL: accessTokenTTL}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Credential endpoints are the abuse target, keep them throttled.
	limited := middleware.RateLimit(rate.Every(time.Second), 10)
	rg.POST("/register", limited, h.Register)
	rg.POST("/login", limited, h.Login)
	rg.POST("/refresh", limited, h.Refresh)
	rg.POST("/logout", h.Logout)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, refreshToken, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(h.accessTokenTTL.Seconds()),
		User:         user,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, err := h.authService.RefreshAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.accessTokenTTL.Seconds()),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RevokeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Revocation always reports success so tokens cannot be probed.
	_ = h.authService.RevokeToken(c.Request.Context(), req.RefreshToken)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
