package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v80"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/models"
)

var terminalStatuses = map[string]bool{
	models.PaymentStatusSucceeded: true,
	models.PaymentStatusFailed:    true,
}

// StripeWebhook receives provider callbacks, verifies their signature, and
// applies the confirmed payment status. This is the sole path that marks an
// order paid; client-reported outcomes never reach order state.
func (pc *PaymentController) StripeWebhook(c *gin.Context) {
	event, err := pc.Stripe.ParseWebhook(c.Request)
	if err != nil {
		pc.Logger.Warn("Stripe webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook"})
		return
	}

	pc.Logger.Info("Processing Stripe webhook",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
	)

	rawPayload, _ := json.Marshal(event)

	switch event.Type {
	case "payment_intent.succeeded":
		pc.handlePaymentIntentStatus(c.Request.Context(), event, models.PaymentStatusSucceeded, rawPayload)
	case "payment_intent.payment_failed":
		pc.handlePaymentIntentStatus(c.Request.Context(), event, models.PaymentStatusFailed, rawPayload)
	default:
		pc.Logger.Info("Unhandled webhook event type", zap.String("event_type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

func (pc *PaymentController) handlePaymentIntentStatus(ctx context.Context, event stripe.Event, status string, rawPayload []byte) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		pc.Logger.Error("Failed to unmarshal payment intent", zap.Error(err))
		return
	}

	payment, err := pc.Repo.FindByStripeID(ctx, pi.ID)
	if err != nil {
		pc.Logger.Error("Payment not found for PaymentIntent",
			zap.String("payment_intent_id", pi.ID),
			zap.Error(err),
		)
		return
	}

	if terminalStatuses[payment.Status] {
		pc.Logger.Info("Skipping duplicate payment webhook",
			zap.String("payment_id", payment.ID.String()),
			zap.String("status", payment.Status),
		)
		return
	}

	now := time.Now()
	updates := bson.M{
		"status":        status,
		"event_payload": string(rawPayload),
	}
	switch status {
	case models.PaymentStatusSucceeded:
		updates["succeeded_at"] = &now
	case models.PaymentStatusFailed:
		updates["failed_at"] = &now
	}

	if err := pc.Repo.UpdateStatus(ctx, payment.ID, updates); err != nil {
		pc.Logger.Error("Failed to update payment status",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err),
		)
		return
	}

	pc.finalizeOrder(ctx, payment, status, pi.ID)

	pc.publishPaymentEvent(ctx, models.PaymentEvent{
		Type:      "payment_" + status,
		OrderID:   payment.OrderRef,
		UserID:    payment.UserID.String(),
		PaymentID: payment.ID.String(),
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		Timestamp: now.UTC(),
	})
}

// finalizeOrder applies the verified payment outcome to the referenced order.
// Order references are opaque metadata; only those naming an order we created
// resolve to an order document.
func (pc *PaymentController) finalizeOrder(ctx context.Context, payment *models.Payment, status, intentID string) {
	orderID, err := uuid.Parse(payment.OrderRef)
	if err != nil {
		pc.Logger.Warn("Payment order reference is not an order ID",
			zap.String("order_ref", payment.OrderRef),
		)
		return
	}

	switch status {
	case models.PaymentStatusSucceeded:
		err = pc.Orders.MarkPaid(ctx, orderID, intentID)
	case models.PaymentStatusFailed:
		err = pc.Orders.MarkPaymentFailed(ctx, orderID, intentID)
	}
	if err != nil {
		pc.Logger.Error("Failed to update order from webhook",
			zap.String("order_id", orderID.String()),
			zap.String("status", status),
			zap.Error(err),
		)
		return
	}

	pc.Logger.Info("Order payment status confirmed",
		zap.String("order_id", orderID.String()),
		zap.String("status", status),
	)
}

func (pc *PaymentController) publishPaymentEvent(ctx context.Context, event models.PaymentEvent) {
	if pc.Producer == nil {
		return
	}
	if err := pc.Producer.SendPaymentEvent(ctx, event); err != nil {
		// Logging only; the webhook must still be acknowledged.
		pc.Logger.Error("Failed to publish payment event",
			zap.String("event_type", event.Type),
			zap.String("order_id", event.OrderID),
			zap.Error(err),
		)
	}
}
