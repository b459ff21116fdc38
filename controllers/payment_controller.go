package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/kafka"
	"github.com/Qwerty-Alisha/ShopEase/middleware"
	"github.com/Qwerty-Alisha/ShopEase/repository"
	"github.com/Qwerty-Alisha/ShopEase/services"
)

type PaymentController struct {
	Payments *services.PaymentService
	Stripe   *services.StripeService
	Orders   *services.OrderService
	Repo     repository.PaymentRepository
	Producer *kafka.PaymentEventProducer
	Logger   *zap.Logger
}

type createIntentRequest struct {
	TotalAmount float64 `json:"totalAmount"`
	OrderID     string  `json:"orderId"`
}

// CreatePaymentIntent opens a provider payment intent for the requested
// amount and hands back only the client secret.
func (pc *PaymentController) CreatePaymentIntent(c *gin.Context) {
	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	user := middleware.GetCurrentUser(c)

	clientSecret, err := pc.Payments.CreateIntent(c.Request.Context(), req.TotalAmount, req.OrderID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}
