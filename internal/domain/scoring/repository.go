package scoring

import "context"

type Repository interface {
	ListScores(ctx context.Context) ([]Record, error)
	ListScoresByEvent(ctx context.Context, eventID string) ([]Record, error)
	UpsertScores(ctx context.Context, records []Record) error
	DeleteScoresByEvent(ctx context.Context, eventID string) (int, error)
}
