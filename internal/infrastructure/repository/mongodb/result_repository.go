package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/prix-six/internal/domain/race"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ResultRepository struct {
	store *Store
}

func NewResultRepository(store *Store) *ResultRepository {
	return &ResultRepository{store: store}
}

func (r *ResultRepository) ListResults(ctx context.Context) ([]race.Result, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.store.Collections.EventResults.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find event results: %w", err)
	}

	var docs []eventResultDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode event results: %w", err)
	}

	out := make([]race.Result, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}

func (r *ResultRepository) GetResult(ctx context.Context, eventID string) (race.Result, bool, error) {
	var doc eventResultDocument
	err := r.store.Collections.EventResults.FindOne(ctx, bson.M{"_id": eventID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return race.Result{}, false, nil
	}
	if err != nil {
		return race.Result{}, false, fmt.Errorf("find event result %s: %w", eventID, err)
	}
	return doc.toDomain(), true, nil
}

func (r *ResultRepository) UpsertResult(ctx context.Context, result race.Result) error {
	doc := newEventResultDocument(result)
	opts := options.Replace().SetUpsert(true)
	if _, err := r.store.Collections.EventResults.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return fmt.Errorf("upsert event result %s: %w", result.EventID, err)
	}
	return nil
}
