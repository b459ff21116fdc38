package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Qwerty-Alisha/ShopEase/models"
	"github.com/Qwerty-Alisha/ShopEase/repository"
	"github.com/Qwerty-Alisha/ShopEase/services"
)

// Cookie names shared with the auth controller.
const (
	TokenCookie   = "jwt"
	SessionCookie = "session"
)

// CurrentUserKey is the gin context key holding the authenticated identity.
const CurrentUserKey = "currentUser"

// Strategy is one authentication variant: given a request it either resolves
// a sanitized identity or rejects.
type Strategy func(c *gin.Context) (*models.SanitizedUser, error)

// Authenticator is the authentication context built once at startup and
// injected into every protected route group. Strategies are tried in order;
// the first to resolve wins.
type Authenticator struct {
	strategies []Strategy
}

func NewAuthenticator(tokens *services.TokenService, sessions *services.SessionStore, users repository.UserRepository) *Authenticator {
	return &Authenticator{
		strategies: []Strategy{
			bearerTokenStrategy(tokens, users),
			sessionStrategy(sessions, users),
		},
	}
}

// RequireAuth rejects the request before any handler logic unless one
// strategy resolves an identity.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, strategy := range a.strategies {
			user, err := strategy(c)
			if err == nil && user != nil {
				c.Set(CurrentUserKey, user)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}

// RequireRole additionally checks the authenticated identity's role.
// It must run after RequireAuth.
func (a *Authenticator) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetCurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

// GetCurrentUser returns the authenticated identity set by RequireAuth.
func GetCurrentUser(c *gin.Context) *models.SanitizedUser {
	if val, exists := c.Get(CurrentUserKey); exists {
		if user, ok := val.(*models.SanitizedUser); ok {
			return user
		}
	}
	return nil
}

// bearerTokenStrategy decodes the signed bearer token from the HTTP-only
// cookie (or an Authorization header) and matches it to an existing user.
func bearerTokenStrategy(tokens *services.TokenService, users repository.UserRepository) Strategy {
	return func(c *gin.Context) (*models.SanitizedUser, error) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			return nil, fmt.Errorf("no bearer token")
		}

		claims, err := tokens.Decode(tokenStr)
		if err != nil {
			return nil, err
		}

		user, err := users.FindByID(c.Request.Context(), claims.ID)
		if err != nil {
			return nil, fmt.Errorf("token subject not found")
		}
		return user.Sanitize(), nil
	}
}

// sessionStrategy resolves an active server-side session from the session
// cookie.
func sessionStrategy(sessions *services.SessionStore, users repository.UserRepository) Strategy {
	return func(c *gin.Context) (*models.SanitizedUser, error) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			return nil, fmt.Errorf("no session cookie")
		}

		userIDStr, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			return nil, err
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return nil, fmt.Errorf("malformed session subject")
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			return nil, fmt.Errorf("session subject not found")
		}
		return user.Sanitize(), nil
	}
}

func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(TokenCookie); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
