package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/middleware"
	"github.com/Qwerty-Alisha/ShopEase/models"
	"github.com/Qwerty-Alisha/ShopEase/repository"
	"github.com/Qwerty-Alisha/ShopEase/services"
)

type UserController struct {
	Users  repository.UserRepository
	Logger *zap.Logger
}

type updateProfileRequest struct {
	Name      string           `json:"name"`
	Addresses []models.Address `json:"addresses"`
	Password  string           `json:"password"`
}

// GetProfile returns the caller's own user record, sanitized.
func (uc *UserController) GetProfile(c *gin.Context) {
	current := middleware.GetCurrentUser(c)

	user, err := uc.Users.FindByID(c.Request.Context(), current.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// The model's json tags already exclude password and salt.
	c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the caller's profile fields. A non-empty password
// re-derives the stored salt and hash.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	current := middleware.GetCurrentUser(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	updates := bson.M{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Addresses != nil {
		updates["addresses"] = req.Addresses
	}
	if req.Password != "" {
		salt, hash, err := services.HashPassword(req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		updates["salt"] = salt
		updates["password"] = hash
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := uc.Users.Update(c.Request.Context(), current.ID, updates); err != nil {
		uc.Logger.Error("Failed to update user", zap.String("user_id", current.ID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	user, err := uc.Users.FindByID(c.Request.Context(), current.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}
	c.JSON(http.StatusOK, user)
}
