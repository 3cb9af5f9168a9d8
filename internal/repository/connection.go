package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// indexes on reservation code and cart_id are load-bearing: they are the
// collision backstop for generated codes and the idempotency guard for
// finalize.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	carts := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := db.Collection(cartCollection).Indexes().CreateMany(ctx, carts); err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}

	reservations := []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "cart_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "published", Value: 1}, {Key: "created_at", Value: 1}}},
	}
	if _, err := db.Collection(reservationCollection).Indexes().CreateMany(ctx, reservations); err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}

	menus := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}
	if _, err := db.Collection(menuCollection).Indexes().CreateMany(ctx, menus); err != nil {
		return fmt.Errorf("failed to create menu indexes: %w", err)
	}

	return nil
}
