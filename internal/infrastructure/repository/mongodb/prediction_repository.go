package mongodb

import (
	"context"
	"fmt"

	"github.com/riskibarqy/prix-six/internal/domain/prediction"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PredictionRepository struct {
	store *Store
}

func NewPredictionRepository(store *Store) *PredictionRepository {
	return &PredictionRepository{store: store}
}

// ListPredictions joins every submission with its account so the team key is
// derived once at load time.
func (r *PredictionRepository) ListPredictions(ctx context.Context) ([]prediction.Prediction, error) {
	accounts, err := r.accounts(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "userId", Value: 1}, {Key: "submittedAt", Value: 1}})
	cursor, err := r.store.Collections.Predictions.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find predictions: %w", err)
	}

	var docs []predictionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode predictions: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(docs))
	for _, doc := range docs {
		account, ok := accounts[doc.UserID]
		if !ok {
			account = prediction.Account{UserID: doc.UserID}
		}
		out = append(out, prediction.FromSubmission(account, doc.toSubmission()))
	}
	return out, nil
}

func (r *PredictionRepository) AppendSubmission(ctx context.Context, userID string, item prediction.Submission) error {
	if userID == "" || item.ID == "" {
		return fmt.Errorf("append submission: user id and submission id are required")
	}
	if _, err := r.store.Collections.Predictions.InsertOne(ctx, newPredictionDocument(userID, item)); err != nil {
		return fmt.Errorf("insert submission %s: %w", item.ID, err)
	}
	return nil
}

func (r *PredictionRepository) UpsertAccount(ctx context.Context, account prediction.Account) error {
	doc := accountDocument{
		ID:                account.UserID,
		TeamName:          account.TeamName,
		SecondaryTeamName: account.SecondaryTeamName,
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.store.Collections.Accounts.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return fmt.Errorf("upsert account %s: %w", account.UserID, err)
	}
	return nil
}

func (r *PredictionRepository) accounts(ctx context.Context) (map[string]prediction.Account, error) {
	cursor, err := r.store.Collections.Accounts.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find accounts: %w", err)
	}

	var docs []accountDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}

	out := make(map[string]prediction.Account, len(docs))
	for _, doc := range docs {
		out[doc.ID] = doc.toDomain()
	}
	return out, nil
}
