package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/middleware"
	"github.com/Qwerty-Alisha/ShopEase/services"
)

// cookieMaxAge is one hour, matching both the session TTL and the token TTL.
const cookieMaxAge = 3600

type AuthController struct {
	Auth   *services.AuthService
	Logger *zap.Logger
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user and logs it in.
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	creds, err := ac.Auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	ac.setAuthCookies(c, creds)
	c.JSON(http.StatusCreated, creds.User)
}

// Login authenticates with the local email + password strategy.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	creds, err := ac.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	ac.setAuthCookies(c, creds)
	c.JSON(http.StatusOK, creds.User)
}

// Logout destroys the session and clears both cookies.
func (ac *AuthController) Logout(c *gin.Context) {
	if sessionToken, err := c.Cookie(middleware.SessionCookie); err == nil && sessionToken != "" {
		if err := ac.Auth.Logout(c.Request.Context(), sessionToken); err != nil {
			ac.Logger.Warn("Failed to destroy session", zap.Error(err))
		}
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", true, true)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Check returns the authenticated identity; the gate has already run.
func (ac *AuthController) Check(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// setAuthCookies sets the bearer token and session cookies: secure,
// cross-site, HTTP-only, one hour.
func (ac *AuthController) setAuthCookies(c *gin.Context, creds *services.Credentials) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.TokenCookie, creds.Token, cookieMaxAge, "/", "", true, true)
	c.SetCookie(middleware.SessionCookie, creds.SessionToken, cookieMaxAge, "/", "", true, true)
}
