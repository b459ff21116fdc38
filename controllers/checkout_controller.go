package controllers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/middleware"
	"github.com/Qwerty-Alisha/ShopEase/services"
)

// flowTTL bounds how long an abandoned checkout attempt is kept before
// eviction.
const flowTTL = 30 * time.Minute

type flowEntry struct {
	flow     *services.CheckoutFlow
	lastSeen time.Time
}

// CheckoutController drives the hosted payment form's lifecycle for the
// storefront. Everything here is UX feedback: the confirmation outcome the
// client reports is never trusted for order state, which moves only on the
// verified webhook.
type CheckoutController struct {
	Payments *services.PaymentService
	Logger   *zap.Logger

	mu    sync.Mutex
	flows map[string]*flowEntry
}

func NewCheckoutController(payments *services.PaymentService, logger *zap.Logger) *CheckoutController {
	cc := &CheckoutController{
		Payments: payments,
		Logger:   logger,
		flows:    make(map[string]*flowEntry),
	}

	go func() {
		ticker := time.NewTicker(flowTTL)
		defer ticker.Stop()
		for range ticker.C {
			cc.evict(time.Now())
		}
	}()

	return cc
}

// evict drops flow entries untouched for longer than flowTTL.
func (cc *CheckoutController) evict(now time.Time) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	for key, e := range cc.flows {
		if now.Sub(e.lastSeen) > flowTTL {
			delete(cc.flows, key)
		}
	}
}

type startCheckoutRequest struct {
	TotalAmount float64 `json:"totalAmount"`
	OrderID     string  `json:"orderId" binding:"required"`
}

type submitCheckoutRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

type completeCheckoutRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Status  string `json:"status" binding:"required"`
	Message string `json:"message"`
}

func (cc *CheckoutController) flowKey(c *gin.Context, orderID string) string {
	user := middleware.GetCurrentUser(c)
	return user.ID.String() + "|" + orderID
}

func (cc *CheckoutController) flow(key string) *services.CheckoutFlow {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	e := cc.flows[key]
	if e == nil {
		return nil
	}
	e.lastSeen = time.Now()
	return e.flow
}

// Start fetches a client secret for the attempt and readies the payment form.
func (cc *CheckoutController) Start(c *gin.Context) {
	var req startCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	key := cc.flowKey(c, req.OrderID)
	orderID := req.OrderID
	flow := services.NewCheckoutFlow(func() {
		// Client-side success is provisional; the webhook confirms it.
		cc.Logger.Info("Checkout reported success, awaiting webhook confirmation",
			zap.String("order_id", orderID),
		)
	})

	if err := flow.Start(req.TotalAmount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount received"})
		return
	}

	user := middleware.GetCurrentUser(c)
	clientSecret, err := cc.Payments.CreateIntent(c.Request.Context(), req.TotalAmount, req.OrderID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := flow.SecretReceived(); err != nil {
		respondError(c, err)
		return
	}

	cc.mu.Lock()
	cc.flows[key] = &flowEntry{flow: flow, lastSeen: time.Now()}
	cc.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": clientSecret,
		"state":        flow.State(),
	})
}

// Submit records that the customer handed confirmation to the provider's
// client library.
func (cc *CheckoutController) Submit(c *gin.Context) {
	var req submitCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	flow := cc.flow(cc.flowKey(c, req.OrderID))
	if flow == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active checkout for order"})
		return
	}
	if err := flow.Submit(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": flow.State()})
}

// Complete applies the provider's client-reported confirmation outcome and
// returns the user-facing message for it.
func (cc *CheckoutController) Complete(c *gin.Context) {
	var req completeCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	key := cc.flowKey(c, req.OrderID)
	flow := cc.flow(key)
	if flow == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active checkout for order"})
		return
	}

	message, err := flow.ConfirmationResult(req.Status, req.Message)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	state := flow.State()
	if state == services.StateSucceededLocal {
		cc.mu.Lock()
		delete(cc.flows, key)
		cc.mu.Unlock()
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"state":   state,
	})
}

// Status maps a redirect-return intent status to the user-facing message.
// Used when the provider forced an out-of-band step and redirected back.
func (cc *CheckoutController) Status(c *gin.Context) {
	status := c.Query("redirect_status")
	if status == "" {
		status = c.Query("status")
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"message": services.MapIntentStatus(status),
	})
}
