package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parcel-delivery/constants"
	"parcel-delivery/models/tracking"
)

type MongoTrackingRepository struct {
	collection *mongo.Collection
}

func NewTrackingRepository(db *mongo.Database) *MongoTrackingRepository {
	return &MongoTrackingRepository{collection: db.Collection(constants.CollectionTrackingEvents)}
}

func (r *MongoTrackingRepository) Insert(ctx context.Context, e *tracking.Event) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, e)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert tracking event: %w", err)
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	e.ID = id
	return id, nil
}

// ListByTrackingID returns the event history for a tracking id, oldest first.
func (r *MongoTrackingRepository) ListByTrackingID(ctx context.Context, trackingID string) ([]tracking.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"tracking_id": trackingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find tracking events: %w", err)
	}

	events := []tracking.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode tracking events: %w", err)
	}
	return events, nil
}
