package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parcel-delivery/constants"
	"parcel-delivery/models/rider"
)

type MongoRiderRepository struct {
	collection *mongo.Collection
}

func NewRiderRepository(db *mongo.Database) *MongoRiderRepository {
	return &MongoRiderRepository{collection: db.Collection(constants.CollectionRiders)}
}

func (r *MongoRiderRepository) List(ctx context.Context, filter RiderFilter) ([]rider.Rider, error) {
	opts := options.Find().SetSort(bson.D{{Key: "requested_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter.Query(), opts)
	if err != nil {
		return nil, fmt.Errorf("find riders: %w", err)
	}

	riders := []rider.Rider{}
	if err := cursor.All(ctx, &riders); err != nil {
		return nil, fmt.Errorf("decode riders: %w", err)
	}
	return riders, nil
}

func (r *MongoRiderRepository) Insert(ctx context.Context, rd *rider.Rider) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, rd)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert rider: %w", err)
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	rd.ID = id
	return id, nil
}

func (r *MongoRiderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status rider.Status, at time.Time) (rider.Status, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.Before).
		SetProjection(bson.M{"status": 1})

	var previous rider.Rider
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": at}},
		opts,
	).Decode(&previous)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("update rider %s status: %w", id.Hex(), err)
	}
	return previous.Status, nil
}
