package mongodb

import (
	"context"
	"fmt"
	"regexp"

	"github.com/riskibarqy/prix-six/internal/domain/scoring"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ScoreRepository struct {
	store *Store
}

func NewScoreRepository(store *Store) *ScoreRepository {
	return &ScoreRepository{store: store}
}

func (r *ScoreRepository) ListScores(ctx context.Context) ([]scoring.Record, error) {
	return r.find(ctx, bson.M{})
}

func (r *ScoreRepository) ListScoresByEvent(ctx context.Context, eventID string) ([]scoring.Record, error) {
	return r.find(ctx, raceIDFilter(eventID))
}

func (r *ScoreRepository) UpsertScores(ctx context.Context, records []scoring.Record) error {
	if len(records) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(records))
	for _, item := range records {
		doc := newScoreDocument(item)
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc.ID}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	if _, err := r.store.Collections.Scores.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("bulk upsert scores: %w", err)
	}
	return nil
}

func (r *ScoreRepository) DeleteScoresByEvent(ctx context.Context, eventID string) (int, error) {
	res, err := r.store.Collections.Scores.DeleteMany(ctx, raceIDFilter(eventID))
	if err != nil {
		return 0, fmt.Errorf("delete scores for event %s: %w", eventID, err)
	}
	return int(res.DeletedCount), nil
}

func (r *ScoreRepository) find(ctx context.Context, filter bson.M) ([]scoring.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.store.Collections.Scores.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find scores: %w", err)
	}

	var docs []scoreDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}

	out := make([]scoring.Record, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}

// raceIDFilter matches raceId exactly but ignoring case.
func raceIDFilter(eventID string) bson.M {
	return bson.M{"raceId": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(eventID) + "$", Options: "i"}}
}
