package mongodb

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"sheetmerge/internal/errors"
)

// Connect opens a client against the store and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.StoreError("failed to connect to document store", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.StoreError("document store did not answer ping", err)
	}
	log.Printf("[Mongo] connected")
	return client, nil
}

// EnsureIndexes creates the unique index backing the student identifier
// invariant. Safe to call on every start; index creation is idempotent.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: fieldIdentifier, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.StoreError("failed to ensure student identifier index", err)
	}
	return nil
}
