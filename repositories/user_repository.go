package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"parcel-delivery/constants"
	"parcel-delivery/models/user"
)

type MongoUserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection(constants.CollectionUsers)}
}

func (r *MongoUserRepository) Insert(ctx context.Context, u *user.User) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, u)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert user: %w", err)
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	u.ID = id
	return id, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

func (r *MongoUserRepository) SetRoleByEmail(ctx context.Context, email, role string) (int64, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": role}},
	)
	if err != nil {
		return 0, fmt.Errorf("set role for user: %w", err)
	}
	return result.MatchedCount, nil
}
