package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/models"
	"github.com/Qwerty-Alisha/ShopEase/repository"
	"github.com/Qwerty-Alisha/ShopEase/storage"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var validate = validator.New()

type ProductController struct {
	Products *repository.ProductRepository
	Uploader *storage.Uploader
	Logger   *zap.Logger
}

type productRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Category    string   `json:"category" validate:"required"`
	Brand       string   `json:"brand" validate:"required"`
	Thumbnail   string   `json:"thumbnail"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock" validate:"gte=0"`
}

// GetProducts lists products with pagination, category/brand filtering and
// price sorting. The total count is exposed via X-Total-Count for the
// storefront's pager.
func (pc *ProductController) GetProducts(c *gin.Context) {
	page, perPage := paginationParams(c, 10)

	filter := bson.M{"deleted_at": bson.M{"$exists": false}}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}
	if brand := c.Query("brand"); brand != "" {
		filter["brand"] = brand
	}

	findOptions := options.Find().
		SetLimit(int64(perPage)).
		SetSkip(int64((page - 1) * perPage))
	if sort := c.Query("_sort"); sort == "price" {
		order := 1
		if c.Query("_order") == "desc" {
			order = -1
		}
		findOptions.SetSort(bson.D{{Key: "price", Value: order}})
	}

	products, err := pc.Products.Find(c.Request.Context(), filter, findOptions)
	if err != nil {
		pc.Logger.Error("Error finding products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	total, err := pc.Products.Count(c.Request.Context(), filter)
	if err != nil {
		pc.Logger.Error("Error counting products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
		return
	}

	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, products)
}

// GetProductByID retrieves a single product with soft-delete filtering.
func (pc *ProductController) GetProductByID(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UUID format"})
		return
	}

	product, err := pc.Products.FindByID(c.Request.Context(), productID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			pc.Logger.Error("Database error", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct creates a product (admin only).
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := &models.Product{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
		Thumbnail:   req.Thumbnail,
		Images:      req.Images,
		Stock:       req.Stock,
	}
	if err := pc.Products.Create(c.Request.Context(), product); err != nil {
		pc.Logger.Error("Failed to create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct applies a partial update (admin only).
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UUID format"})
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	delete(updates, "_id")

	if price, ok := updates["price"].(float64); ok && price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than zero"})
		return
	}

	result, err := pc.Products.Update(c.Request.Context(), productID, bson.M(updates))
	if err != nil {
		pc.Logger.Error("Failed to update product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	product, err := pc.Products.FindByID(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct soft-deletes a product (admin only).
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UUID format"})
		return
	}

	result, err := pc.Products.Delete(c.Request.Context(), productID)
	if err != nil {
		pc.Logger.Error("Failed to delete product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// GetPresignUpload returns a presigned URL for a direct product-image upload
// (admin only).
func (pc *ProductController) GetPresignUpload(c *gin.Context) {
	if pc.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads not configured"})
		return
	}

	filename := c.Query("filename")
	contentType := c.Query("content_type")
	if filename == "" || contentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filename and content_type query parameters are required"})
		return
	}
	if !allowedImageTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content type for product image"})
		return
	}

	key := fmt.Sprintf("products/%s/%s", uuid.NewString(), filename)
	uploadURL, publicURL, err := pc.Uploader.PresignPut(c.Request.Context(), key, contentType, 15*time.Minute)
	if err != nil {
		pc.Logger.Error("Failed to generate presigned upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate presigned upload"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload_url": uploadURL,
		"method":     "PUT",
		"key":        key,
		"public_url": publicURL,
	})
}
