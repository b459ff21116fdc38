package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/apperror"
	"github.com/Qwerty-Alisha/ShopEase/models"
	"github.com/Qwerty-Alisha/ShopEase/repository"
)

// Statuses an admin may set directly. Paid is excluded: it is reachable only
// through the verified provider webhook.
var adminOrderStatuses = map[string]bool{
	models.OrderStatusDispatched: true,
	models.OrderStatusDelivered:  true,
	models.OrderStatusCancelled:  true,
}

// CartStore is the slice of the cart repository the order service needs.
type CartStore interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	DeleteCart(ctx context.Context, userID string) error
}

type OrderService struct {
	orders repository.OrderRepository
	carts  CartStore
	logger *zap.Logger
}

func NewOrderService(orders repository.OrderRepository, carts CartStore, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, carts: carts, logger: logger}
}

// CreateOrder snapshots the user's cart into a pending order and clears the
// cart. The recorded total is the amount later used for payment intent
// creation.
func (s *OrderService) CreateOrder(ctx context.Context, user *models.SanitizedUser, address *models.Address) (*models.Order, error) {
	cart, err := s.carts.GetCart(ctx, user.ID.String())
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrDatabaseQuery, err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, apperror.WithMessage(apperror.ErrValidation, "Cart is empty")
	}

	order := &models.Order{
		ID:     uuid.New(),
		UserID: user.ID,
		Status: models.OrderStatusPending,
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
		order.TotalItems += item.Quantity
	}
	order.TotalAmount = cart.Total()
	order.Address = address

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperror.Wrap(apperror.ErrDatabaseQuery, err)
	}

	if err := s.carts.DeleteCart(ctx, user.ID.String()); err != nil {
		// The order exists; a stale cart is recoverable.
		s.logger.Warn("Failed to clear cart after order creation",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.Float64("total_amount", order.TotalAmount),
	)
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.WithMessage(apperror.ErrNotFound, "Order not found")
		}
		return nil, apperror.Wrap(apperror.ErrDatabaseQuery, err)
	}
	return order, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Order, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrDatabaseQuery, err)
	}
	return orders, nil
}

func (s *OrderService) ListAll(ctx context.Context, limit, skip int64) ([]*models.Order, int64, error) {
	orders, total, err := s.orders.FindAll(ctx, limit, skip)
	if err != nil {
		return nil, 0, apperror.Wrap(apperror.ErrDatabaseQuery, err)
	}
	return orders, total, nil
}

// MarkPaid records a webhook-confirmed payment against the order. This is
// the only path that sets the paid status.
func (s *OrderService) MarkPaid(ctx context.Context, orderID uuid.UUID, paymentIntentID string) error {
	now := time.Now().UTC()
	return s.orders.UpdateStatus(ctx, orderID, bson.M{
		"status":         models.OrderStatusPaid,
		"payment_intent": paymentIntentID,
		"paid_at":        &now,
	})
}

// MarkPaymentFailed records a webhook-confirmed payment failure.
func (s *OrderService) MarkPaymentFailed(ctx context.Context, orderID uuid.UUID, paymentIntentID string) error {
	return s.orders.UpdateStatus(ctx, orderID, bson.M{
		"status":         models.OrderStatusPaymentFailed,
		"payment_intent": paymentIntentID,
	})
}

// UpdateStatus applies an admin status change.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	if !adminOrderStatuses[status] {
		return apperror.WithMessage(apperror.ErrValidation, "Invalid order status")
	}
	if _, err := s.GetOrder(ctx, orderID); err != nil {
		return err
	}
	if err := s.orders.UpdateStatus(ctx, orderID, bson.M{"status": status}); err != nil {
		return apperror.Wrap(apperror.ErrDatabaseQuery, err)
	}
	return nil
}
