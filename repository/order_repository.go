package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Qwerty-Alisha/ShopEase/models"
)

// OrderRepository is the persistence surface the order and payment services
// depend on.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*models.Order, error)
	FindAll(ctx context.Context, limit, skip int64) ([]*models.Order, int64, error)
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, updates bson.M) error
}

type MongoOrderRepository struct {
	collection *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{collection: db.Collection("orders")}
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *MongoOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []*models.Order
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *MongoOrderRepository) FindAll(ctx context.Context, limit, skip int64) ([]*models.Order, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(skip)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var orders []*models.Order
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, order)
	return err
}

func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, updates bson.M) error {
	updates["updated_at"] = time.Now().UTC()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	return err
}
