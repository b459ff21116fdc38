package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/middleware"
	"github.com/Qwerty-Alisha/ShopEase/models"
	"github.com/Qwerty-Alisha/ShopEase/services"
)

type OrderController struct {
	Orders *services.OrderService
	Logger *zap.Logger
}

type createOrderRequest struct {
	Address *models.Address `json:"address"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder snapshots the caller's cart into a pending order.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	user := middleware.GetCurrentUser(c)

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	order, err := oc.Orders.CreateOrder(c.Request.Context(), user, req.Address)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// ListOrders returns the caller's own orders.
func (oc *OrderController) ListOrders(c *gin.Context) {
	user := middleware.GetCurrentUser(c)

	orders, err := oc.Orders.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order; customers can only see their own.
func (oc *OrderController) GetOrder(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UUID format"})
		return
	}

	order, err := oc.Orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	if order.UserID != user.ID && user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListAllOrders returns every order, paginated (admin only).
func (oc *OrderController) ListAllOrders(c *gin.Context) {
	page, perPage := paginationParams(c, 20)

	orders, total, err := oc.Orders.ListAll(c.Request.Context(), int64(perPage), int64((page-1)*perPage))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus applies an admin status change. Paid is not settable
// here; only the payment webhook marks orders paid.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UUID format"})
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	if err := oc.Orders.UpdateStatus(c.Request.Context(), orderID, req.Status); err != nil {
		respondError(c, err)
		return
	}

	order, err := oc.Orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
