package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/prix-six/internal/domain/race"
	qb "github.com/riskibarqy/prix-six/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) ListResults(ctx context.Context) ([]race.Result, error) {
	query, args, err := qb.Select("*").From("event_results").OrderBy("event_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list results query: %w", err)
	}

	var rows []eventResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	out := make([]race.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ResultRepository) GetResult(ctx context.Context, eventID string) (race.Result, bool, error) {
	query, args, err := qb.Select("*").From("event_results").Where(qb.Eq("event_id", eventID)).ToSQL()
	if err != nil {
		return race.Result{}, false, fmt.Errorf("build get result query: %w", err)
	}

	var row eventResultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return race.Result{}, false, nil
		}
		return race.Result{}, false, fmt.Errorf("get result: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *ResultRepository) UpsertResult(ctx context.Context, result race.Result) error {
	rows := []eventResultInsertModel{{
		EventID:    result.EventID,
		TopSix:     pq.StringArray(result.TopSix),
		RecordedAt: result.RecordedAt,
	}}
	query, args, err := qb.InsertModels("event_results", rows, `ON CONFLICT (event_id) DO UPDATE SET
    top_six = EXCLUDED.top_six,
    recorded_at = EXCLUDED.recorded_at,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert result: %w", err)
	}
	return nil
}
