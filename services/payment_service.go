package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/apperror"
	"github.com/Qwerty-Alisha/ShopEase/models"
	"github.com/Qwerty-Alisha/ShopEase/repository"
)

// Currency is the fixed settlement currency for payment intents.
const Currency = "usd"

// PaymentService orchestrates payment-intent creation against the provider.
// The provider owns idempotency, retry and fraud checks; this service only
// validates the amount, records a local pending mirror, and hands back the
// client secret. Two calls with the same order reference open two distinct
// intents.
type PaymentService struct {
	intents  IntentCreator
	payments repository.PaymentRepository
	logger   *zap.Logger
}

func NewPaymentService(intents IntentCreator, payments repository.PaymentRepository, logger *zap.Logger) *PaymentService {
	return &PaymentService{intents: intents, payments: payments, logger: logger}
}

// MinorUnits converts a major-unit amount to an integer count of minor
// currency units by rounding.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateIntent normalizes the amount to minor units, delegates intent
// creation to the provider, and returns only the client secret. Amounts that
// round to zero or below are rejected before any provider call.
func (s *PaymentService) CreateIntent(ctx context.Context, totalAmount float64, orderRef string, userID uuid.UUID) (string, error) {
	amount := MinorUnits(totalAmount)
	if amount <= 0 {
		return "", apperror.ErrInvalidAmount
	}

	pi, err := s.intents.CreatePaymentIntent(amount, Currency, orderRef)
	if err != nil {
		s.logger.Error("Stripe payment intent creation failed",
			zap.String("order_ref", orderRef),
			zap.Int64("amount", amount),
			zap.Error(err),
		)
		return "", providerError(err)
	}

	payment := &models.Payment{
		ID:              uuid.New(),
		OrderRef:        orderRef,
		UserID:          userID,
		Amount:          amount,
		Currency:        Currency,
		Status:          models.PaymentStatusPending,
		StripePaymentID: pi.ID,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return "", apperror.Wrap(apperror.ErrDatabaseQuery, err)
	}

	s.logger.Info("Payment intent created",
		zap.String("order_ref", orderRef),
		zap.Int64("amount", amount),
		zap.String("payment_intent_id", pi.ID),
	)
	return pi.ClientSecret, nil
}

// providerError maps a Stripe failure onto the upstream provider kind. The
// provider message is kept when it carries one.
func providerError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if msg := strings.TrimSpace(stripeErr.Msg); msg != "" {
			return apperror.New(apperror.ErrPaymentProvider.Code, msg, err)
		}
	}
	return apperror.Wrap(apperror.ErrPaymentProvider, err)
}
