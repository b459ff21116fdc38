package controllers

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/webhook"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/models"
	"github.com/Qwerty-Alisha/ShopEase/services"
)

const testWebhookSecret = "whsec_test_secret"

// memOrderRepo records status updates so tests can assert which transitions
// the webhook applied.
type memOrderRepo struct {
	orders  map[uuid.UUID]*models.Order
	updates []bson.M
}

func (r *memOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if order, ok := r.orders[id]; ok {
		return order, nil
	}
	return nil, mongo.ErrNoDocuments
}
func (r *memOrderRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*models.Order, error) {
	return nil, nil
}
func (r *memOrderRepo) FindAll(ctx context.Context, limit, skip int64) ([]*models.Order, int64, error) {
	return nil, 0, nil
}
func (r *memOrderRepo) Create(ctx context.Context, order *models.Order) error {
	r.orders[order.ID] = order
	return nil
}
func (r *memOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, updates bson.M) error {
	r.updates = append(r.updates, updates)
	return nil
}

// signedWebhookRequest builds a request whose Stripe-Signature header verifies
// against testWebhookSecret.
func signedWebhookRequest(t *testing.T, eventType, intentID string) *http.Request {
	t.Helper()
	payload := fmt.Sprintf(
		`{"id":"evt_test_1","api_version":%q,"type":%q,"data":{"object":{"id":%q,"status":"succeeded"}}}`,
		stripe.APIVersion, eventType, intentID,
	)
	now := time.Now()
	sig := webhook.ComputeSignature(now, []byte(payload), testWebhookSecret)
	header := fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", header)
	return req
}

func newWebhookTestRig(payments *memPaymentRepo, orders *memOrderRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	pc := &PaymentController{
		Stripe: &services.StripeService{WebhookKey: testWebhookSecret},
		Orders: services.NewOrderService(orders, nil, zap.NewNop()),
		Repo:   payments,
		Logger: zap.NewNop(),
	}
	router := gin.New()
	router.POST("/webhook", pc.StripeWebhook)
	return router
}

func TestStripeWebhook(t *testing.T) {
	t.Run("RejectsBadSignature", func(t *testing.T) {
		payments := &memPaymentRepo{}
		orders := &memOrderRepo{orders: map[uuid.UUID]*models.Order{}}
		router := newWebhookTestRig(payments, orders)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/webhook",
			strings.NewReader(`{"type":"payment_intent.succeeded"}`))
		req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid webhook"}`, w.Body.String())
		assert.Empty(t, payments.updates)
		assert.Empty(t, orders.updates)
	})

	t.Run("SucceededMarksOrderPaid", func(t *testing.T) {
		orderID := uuid.New()
		payments := &memPaymentRepo{created: []*models.Payment{{
			ID:              uuid.New(),
			OrderRef:        orderID.String(),
			UserID:          uuid.New(),
			Amount:          2550,
			Currency:        "usd",
			Status:          models.PaymentStatusPending,
			StripePaymentID: "pi_test_1",
		}}}
		orders := &memOrderRepo{orders: map[uuid.UUID]*models.Order{
			orderID: {ID: orderID, Status: models.OrderStatusPending},
		}}
		router := newWebhookTestRig(payments, orders)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, signedWebhookRequest(t, "payment_intent.succeeded", "pi_test_1"))

		assert.Equal(t, http.StatusOK, w.Code)
		if assert.Len(t, payments.updates, 1) {
			assert.Equal(t, models.PaymentStatusSucceeded, payments.updates[0]["status"])
			assert.NotNil(t, payments.updates[0]["succeeded_at"])
		}
		if assert.Len(t, orders.updates, 1) {
			assert.Equal(t, models.OrderStatusPaid, orders.updates[0]["status"])
			assert.Equal(t, "pi_test_1", orders.updates[0]["payment_intent"])
		}
	})

	t.Run("FailedMarksOrderPaymentFailed", func(t *testing.T) {
		orderID := uuid.New()
		payments := &memPaymentRepo{created: []*models.Payment{{
			ID:              uuid.New(),
			OrderRef:        orderID.String(),
			Status:          models.PaymentStatusPending,
			StripePaymentID: "pi_test_1",
		}}}
		orders := &memOrderRepo{orders: map[uuid.UUID]*models.Order{
			orderID: {ID: orderID, Status: models.OrderStatusPending},
		}}
		router := newWebhookTestRig(payments, orders)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, signedWebhookRequest(t, "payment_intent.payment_failed", "pi_test_1"))

		assert.Equal(t, http.StatusOK, w.Code)
		if assert.Len(t, orders.updates, 1) {
			assert.Equal(t, models.OrderStatusPaymentFailed, orders.updates[0]["status"])
		}
	})

	t.Run("DuplicateDeliveryIsSkipped", func(t *testing.T) {
		orderID := uuid.New()
		payments := &memPaymentRepo{created: []*models.Payment{{
			ID:              uuid.New(),
			OrderRef:        orderID.String(),
			Status:          models.PaymentStatusSucceeded,
			StripePaymentID: "pi_test_1",
		}}}
		orders := &memOrderRepo{orders: map[uuid.UUID]*models.Order{}}
		router := newWebhookTestRig(payments, orders)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, signedWebhookRequest(t, "payment_intent.succeeded", "pi_test_1"))

		assert.Equal(t, http.StatusOK, w.Code, "duplicates are acknowledged, not retried")
		assert.Empty(t, payments.updates)
		assert.Empty(t, orders.updates)
	})

	t.Run("OpaqueOrderRefLeavesOrdersUntouched", func(t *testing.T) {
		payments := &memPaymentRepo{created: []*models.Payment{{
			ID:              uuid.New(),
			OrderRef:        "ORD123",
			Status:          models.PaymentStatusPending,
			StripePaymentID: "pi_test_1",
		}}}
		orders := &memOrderRepo{orders: map[uuid.UUID]*models.Order{}}
		router := newWebhookTestRig(payments, orders)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, signedWebhookRequest(t, "payment_intent.succeeded", "pi_test_1"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, payments.updates, 1, "the payment record still settles")
		assert.Empty(t, orders.updates)
	})

	t.Run("UnhandledEventAcknowledged", func(t *testing.T) {
		payments := &memPaymentRepo{}
		orders := &memOrderRepo{orders: map[uuid.UUID]*models.Order{}}
		router := newWebhookTestRig(payments, orders)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, signedWebhookRequest(t, "charge.refunded", "ch_1"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, payments.updates)
	})
}
