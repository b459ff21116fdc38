package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Qwerty-Alisha/ShopEase/models"
)

// PaymentRepository stores the local mirror of provider payment intents.
type PaymentRepository interface {
	FindByStripeID(ctx context.Context, stripeID string) (*models.Payment, error)
	FindByOrderRef(ctx context.Context, orderRef string) (*models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, updates bson.M) error
}

type MongoPaymentRepository struct {
	collection *mongo.Collection
}

func NewMongoPaymentRepository(db *mongo.Database) *MongoPaymentRepository {
	return &MongoPaymentRepository{collection: db.Collection("payments")}
}

func (r *MongoPaymentRepository) FindByStripeID(ctx context.Context, stripeID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.collection.FindOne(ctx, bson.M{"stripe_payment_id": stripeID}).Decode(&payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *MongoPaymentRepository) FindByOrderRef(ctx context.Context, orderRef string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.collection.FindOne(ctx, bson.M{"order_ref": orderRef}).Decode(&payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *MongoPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	now := time.Now().UTC()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, payment)
	return err
}

func (r *MongoPaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, updates bson.M) error {
	updates["updated_at"] = time.Now().UTC()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	return err
}
