package race

import "context"

type Repository interface {
	ListResults(ctx context.Context) ([]Result, error)
	GetResult(ctx context.Context, eventID string) (Result, bool, error)
	UpsertResult(ctx context.Context, result Result) error
}
