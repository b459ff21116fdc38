package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/middleware"
	"github.com/Qwerty-Alisha/ShopEase/models"
	"github.com/Qwerty-Alisha/ShopEase/services"
)

func newCheckoutTestRig(intents *fakeIntentCreator) (*gin.Engine, *CheckoutController) {
	gin.SetMode(gin.TestMode)
	cc := NewCheckoutController(services.NewPaymentService(intents, &memPaymentRepo{}, zap.NewNop()), zap.NewNop())
	user := &models.SanitizedUser{ID: uuid.New(), Email: "buyer@example.com", Role: models.RoleCustomer}
	router := gin.New()
	authed := router.Group("/api/checkout", func(c *gin.Context) {
		c.Set(middleware.CurrentUserKey, user)
	})
	authed.POST("/start", cc.Start)
	authed.POST("/submit", cc.Submit)
	authed.POST("/complete", cc.Complete)
	authed.GET("/status", cc.Status)
	return router, cc
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCheckoutEndpoints(t *testing.T) {
	t.Run("FullFlow", func(t *testing.T) {
		router, _ := newCheckoutTestRig(&fakeIntentCreator{})

		w := postJSON(router, "/api/checkout/start", `{"totalAmount": 25.50, "orderId": "ORD123"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "pi_test_1_secret_abc")
		assert.Contains(t, w.Body.String(), string(services.StateReady))

		// Submit carries only the order reference.
		w = postJSON(router, "/api/checkout/submit", `{"orderId": "ORD123"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), string(services.StateSubmitting))

		w = postJSON(router, "/api/checkout/complete", `{"orderId": "ORD123", "status": "succeeded"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), services.MsgSucceeded)

		// The finished flow is gone.
		w = postJSON(router, "/api/checkout/submit", `{"orderId": "ORD123"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("FailedConfirmationAllowsRetry", func(t *testing.T) {
		router, _ := newCheckoutTestRig(&fakeIntentCreator{})

		w := postJSON(router, "/api/checkout/start", `{"totalAmount": 10, "orderId": "ORD123"}`)
		require.Equal(t, http.StatusOK, w.Code)
		w = postJSON(router, "/api/checkout/submit", `{"orderId": "ORD123"}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = postJSON(router, "/api/checkout/complete",
			`{"orderId": "ORD123", "status": "card_error", "message": "Your card was declined."}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Your card was declined.")

		// Back to ready; the customer can submit again.
		w = postJSON(router, "/api/checkout/submit", `{"orderId": "ORD123"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("StaleFlowsAreEvicted", func(t *testing.T) {
		router, cc := newCheckoutTestRig(&fakeIntentCreator{})

		w := postJSON(router, "/api/checkout/start", `{"totalAmount": 10, "orderId": "ORD123"}`)
		require.Equal(t, http.StatusOK, w.Code)

		cc.mu.Lock()
		for _, e := range cc.flows {
			e.lastSeen = time.Now().Add(-2 * flowTTL)
		}
		cc.mu.Unlock()
		cc.evict(time.Now())

		w = postJSON(router, "/api/checkout/submit", `{"orderId": "ORD123"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
