package prediction

import "context"

type Repository interface {
	// ListPredictions returns every stored submission with its team key
	// already derived from the owning account.
	ListPredictions(ctx context.Context) ([]Prediction, error)
	AppendSubmission(ctx context.Context, userID string, item Submission) error
	UpsertAccount(ctx context.Context, account Account) error
}
