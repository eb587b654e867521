package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prix-six/internal/domain/scoring"
	qb "github.com/riskibarqy/prix-six/internal/platform/querybuilder"
)

const scoreUpsertSuffix = `ON CONFLICT (id) DO UPDATE SET
    user_id = EXCLUDED.user_id,
    race_id = EXCLUDED.race_id,
    team_key = EXCLUDED.team_key,
    total_points = EXCLUDED.total_points,
    breakdown = EXCLUDED.breakdown,
    calculated_at = EXCLUDED.calculated_at`

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) ListScores(ctx context.Context) ([]scoring.Record, error) {
	return r.list(ctx)
}

func (r *ScoreRepository) ListScoresByEvent(ctx context.Context, eventID string) ([]scoring.Record, error) {
	return r.list(ctx, qb.EqFold("race_id", eventID))
}

// UpsertScores writes all records in one transaction.
func (r *ScoreRepository) UpsertScores(ctx context.Context, records []scoring.Record) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]scoreTableModel, 0, len(records))
	for _, item := range records {
		rows = append(rows, newScoreTableModel(item))
	}
	query, args, err := qb.InsertModels("scores", rows, scoreUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert scores query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert scores tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert scores: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert scores tx: %w", err)
	}
	return nil
}

func (r *ScoreRepository) DeleteScoresByEvent(ctx context.Context, eventID string) (int, error) {
	query, args, err := qb.DeleteFrom("scores").Where(qb.EqFold("race_id", eventID)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete scores query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete scores for event %s: %w", eventID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted scores: %w", err)
	}
	return int(affected), nil
}

func (r *ScoreRepository) list(ctx context.Context, conditions ...qb.Condition) ([]scoring.Record, error) {
	query, args, err := qb.Select("id", "user_id", "race_id", "team_key", "total_points", "breakdown", "calculated_at").
		From("scores").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scores query: %w", err)
	}

	var rows []scoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}

	out := make([]scoring.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
