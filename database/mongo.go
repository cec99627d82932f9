package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parcel-delivery/config"
	"parcel-delivery/logger"
)

const mongoConnectTimeout = 10 * time.Second

// Mongo wraps the document store client and the application database.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// ConnectMongo dials the document store and confirms the deployment answers a ping.
func ConnectMongo(ctx context.Context, cfg config.MongoConfig) (*Mongo, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).SetStrict(true)
	opts := options.Client().
		ApplyURI(cfg.ConnectionURI()).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(mongoConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	m := &Mongo{Client: client, Database: client.Database(cfg.Database)}
	if err := m.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Success("Pinged your deployment. You successfully connected to MongoDB!")
	return m, nil
}

// Ping runs the admin ping command; the health route uses it.
func (m *Mongo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	err := m.Client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	if err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	return nil
}

func (m *Mongo) Disconnect(ctx context.Context) error {
	if err := m.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}
