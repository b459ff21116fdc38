package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/models"
	"github.com/Qwerty-Alisha/ShopEase/repository"
)

type CategoryController struct {
	Categories *repository.CategoryRepository
	Logger     *zap.Logger
}

type labelValueRequest struct {
	Label string `json:"label" binding:"required"`
	Value string `json:"value" binding:"required"`
}

func (cc *CategoryController) GetCategories(c *gin.Context) {
	categories, err := cc.Categories.FindAll(c.Request.Context())
	if err != nil {
		cc.Logger.Error("Error finding categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req labelValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	category := &models.Category{ID: uuid.New(), Label: req.Label, Value: req.Value}
	if err := cc.Categories.Create(c.Request.Context(), category); err != nil {
		cc.Logger.Error("Failed to create category", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, category)
}
