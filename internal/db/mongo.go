package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

func NewMongoDatabase(ctx context.Context, uri, database string, log *zap.Logger) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second).
		SetMaxPoolSize(50)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info("mongo connected", zap.String("database", database))
	return client.Database(database), nil
}

// EnsureIndexes pre-declares the compound indexes the audit filter set
// needs, so every supported filter combination has an index prefix to
// run on instead of a collection scan.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	auditIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "action", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "resource", Value: 1}, {Key: "timestamp", Value: -1}}},
	}
	if _, err := db.Collection("audit_logs").Indexes().CreateMany(ctx, auditIndexes); err != nil {
		return err
	}

	profileIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}
	if _, err := db.Collection("userProfiles").Indexes().CreateMany(ctx, profileIndexes); err != nil {
		return err
	}

	log.Info("mongo indexes ensured")
	return nil
}
