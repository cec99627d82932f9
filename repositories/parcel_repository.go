package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parcel-delivery/constants"
	"parcel-delivery/models/parcel"
)

type MongoParcelRepository struct {
	collection *mongo.Collection
}

func NewParcelRepository(db *mongo.Database) *MongoParcelRepository {
	return &MongoParcelRepository{collection: db.Collection(constants.CollectionParcels)}
}

func (r *MongoParcelRepository) List(ctx context.Context, filter ParcelFilter) ([]parcel.Parcel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter.Query(), opts)
	if err != nil {
		return nil, fmt.Errorf("find parcels: %w", err)
	}

	parcels := []parcel.Parcel{}
	if err := cursor.All(ctx, &parcels); err != nil {
		return nil, fmt.Errorf("decode parcels: %w", err)
	}
	return parcels, nil
}

func (r *MongoParcelRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*parcel.Parcel, error) {
	var p parcel.Parcel
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find parcel %s: %w", id.Hex(), err)
	}
	return &p, nil
}

func (r *MongoParcelRepository) Insert(ctx context.Context, p *parcel.Parcel) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert parcel: %w", err)
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	p.ID = id
	return id, nil
}

func (r *MongoParcelRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete parcel %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return 0, ErrNotFound
	}
	return result.DeletedCount, nil
}

func (r *MongoParcelRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status parcel.Status) (int64, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return 0, fmt.Errorf("set parcel %s status: %w", id.Hex(), err)
	}
	return result.ModifiedCount, nil
}
