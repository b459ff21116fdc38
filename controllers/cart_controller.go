package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/middleware"
	"github.com/Qwerty-Alisha/ShopEase/models"
	"github.com/Qwerty-Alisha/ShopEase/repository"
)

type CartController struct {
	Carts    *repository.CartRepository
	Products *repository.ProductRepository
	Logger   *zap.Logger
}

type addItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// GetCart returns the caller's cart, empty if none exists yet.
func (cc *CartController) GetCart(c *gin.Context) {
	user := middleware.GetCurrentUser(c)

	cart, err := cc.Carts.GetCart(c.Request.Context(), user.ID.String())
	if err != nil {
		cc.Logger.Error("Failed to get cart", zap.String("user_id", user.ID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart"})
		return
	}
	if cart == nil {
		cart = &models.Cart{UserID: user.ID.String(), Items: []models.CartItem{}}
	}

	c.JSON(http.StatusOK, cart)
}

// AddItem adds a product to the cart with a price snapshot, or bumps the
// quantity if it is already there.
func (cc *CartController) AddItem(c *gin.Context) {
	user := middleware.GetCurrentUser(c)

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	product, err := cc.Products.FindByID(c.Request.Context(), req.ProductID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			cc.Logger.Error("Failed to load product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
		}
		return
	}

	cart, _ := cc.Carts.GetCart(c.Request.Context(), user.ID.String())
	if cart == nil {
		cart = &models.Cart{UserID: user.ID.String(), Items: []models.CartItem{}}
	}

	found := false
	for i, existing := range cart.Items {
		if existing.ProductID == req.ProductID {
			cart.Items[i].Quantity += req.Quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Thumbnail: product.Thumbnail,
			Quantity:  req.Quantity,
		})
	}

	if err := cc.Carts.SaveCart(c.Request.Context(), cart); err != nil {
		cc.Logger.Error("Failed to save cart", zap.String("user_id", user.ID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

// UpdateItem sets the quantity of one cart line.
func (cc *CartController) UpdateItem(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UUID format"})
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	cart, _ := cc.Carts.GetCart(c.Request.Context(), user.ID.String())
	if cart == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}

	found := false
	for i, item := range cart.Items {
		if item.ProductID == productID {
			cart.Items[i].Quantity = req.Quantity
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not in cart"})
		return
	}

	if err := cc.Carts.SaveCart(c.Request.Context(), cart); err != nil {
		cc.Logger.Error("Failed to update cart", zap.String("user_id", user.ID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

// RemoveItem removes one product from the cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UUID format"})
		return
	}

	cart, _ := cc.Carts.GetCart(c.Request.Context(), user.ID.String())
	if cart == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}

	newItems := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			newItems = append(newItems, item)
		}
	}
	cart.Items = newItems

	if err := cc.Carts.SaveCart(c.Request.Context(), cart); err != nil {
		cc.Logger.Error("Failed to update cart", zap.String("user_id", user.ID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

// ClearCart deletes the caller's cart entirely.
func (cc *CartController) ClearCart(c *gin.Context) {
	user := middleware.GetCurrentUser(c)

	if err := cc.Carts.DeleteCart(c.Request.Context(), user.ID.String()); err != nil {
		cc.Logger.Error("Failed to clear cart", zap.String("user_id", user.ID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
