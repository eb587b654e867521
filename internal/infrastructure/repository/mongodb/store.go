package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionEventResults = "event_results"
	CollectionScores       = "scores"
	CollectionAccounts     = "accounts"
	CollectionPredictions  = "predictions"
	CollectionAuditLogs    = "audit_logs"
)

// Store holds the document collections shared by the repositories.
type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		EventResults *mongo.Collection
		Scores       *mongo.Collection
		Accounts     *mongo.Collection
		Predictions  *mongo.Collection
		AuditLogs    *mongo.Collection
	}
}

func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	if uri == "" || dbName == "" {
		return nil, fmt.Errorf("mongo uri and database name are required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return NewStoreFromDatabase(client, client.Database(dbName)), nil
}

func NewStoreFromDatabase(client *mongo.Client, db *mongo.Database) *Store {
	store := &Store{Client: client, Database: db}
	store.Collections.EventResults = db.Collection(CollectionEventResults)
	store.Collections.Scores = db.Collection(CollectionScores)
	store.Collections.Accounts = db.Collection(CollectionAccounts)
	store.Collections.Predictions = db.Collection(CollectionPredictions)
	store.Collections.AuditLogs = db.Collection(CollectionAuditLogs)
	return store
}

// EnsureIndexes creates the secondary indexes the repositories query by.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		collection *mongo.Collection
		model      mongo.IndexModel
	}{
		{s.Collections.Scores, mongo.IndexModel{Keys: bson.D{{Key: "raceId", Value: 1}}}},
		{s.Collections.Predictions, mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "submittedAt", Value: 1}}}},
		{s.Collections.AuditLogs, mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}},
	}

	for _, item := range indexes {
		if _, err := item.collection.Indexes().CreateOne(ctx, item.model); err != nil {
			return fmt.Errorf("create index on %s: %w", item.collection.Name(), err)
		}
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}
