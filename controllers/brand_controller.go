package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/models"
	"github.com/Qwerty-Alisha/ShopEase/repository"
)

type BrandController struct {
	Brands *repository.BrandRepository
	Logger *zap.Logger
}

func (bc *BrandController) GetBrands(c *gin.Context) {
	brands, err := bc.Brands.FindAll(c.Request.Context())
	if err != nil {
		bc.Logger.Error("Error finding brands", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brands"})
		return
	}
	c.JSON(http.StatusOK, brands)
}

func (bc *BrandController) CreateBrand(c *gin.Context) {
	var req labelValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	brand := &models.Brand{ID: uuid.New(), Label: req.Label, Value: req.Value}
	if err := bc.Brands.Create(c.Request.Context(), brand); err != nil {
		bc.Logger.Error("Failed to create brand", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create brand"})
		return
	}
	c.JSON(http.StatusCreated, brand)
}
