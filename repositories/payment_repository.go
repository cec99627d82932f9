package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parcel-delivery/constants"
	"parcel-delivery/models/payment"
)

type MongoPaymentRepository struct {
	collection *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *MongoPaymentRepository {
	return &MongoPaymentRepository{collection: db.Collection(constants.CollectionPayments)}
}

// List returns matching payments, newest first.
func (r *MongoPaymentRepository) List(ctx context.Context, filter PaymentFilter) ([]payment.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "paid_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter.Query(), opts)
	if err != nil {
		return nil, fmt.Errorf("find payments: %w", err)
	}

	payments := []payment.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return payments, nil
}

func (r *MongoPaymentRepository) Insert(ctx context.Context, p *payment.Payment) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert payment: %w", err)
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	p.ID = id
	return id, nil
}

func (r *MongoPaymentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete payment %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
