package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/prix-six/internal/domain/prediction"
	qb "github.com/riskibarqy/prix-six/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) ListPredictions(ctx context.Context) ([]prediction.Prediction, error) {
	accountQuery, accountArgs, err := qb.Select("*").From("accounts").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list accounts query: %w", err)
	}
	var accountRows []accountTableModel
	if err := r.db.SelectContext(ctx, &accountRows, accountQuery, accountArgs...); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	accounts := make(map[string]prediction.Account, len(accountRows))
	for _, row := range accountRows {
		accounts[row.UserID] = prediction.Account{
			UserID:            row.UserID,
			TeamName:          row.TeamName,
			SecondaryTeamName: row.SecondaryTeamName,
		}
	}

	query, args, err := qb.Select("*").From("predictions").OrderBy("user_id", "submitted_at", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions query: %w", err)
	}
	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		account, ok := accounts[row.UserID]
		if !ok {
			account = prediction.Account{UserID: row.UserID}
		}
		out = append(out, prediction.FromSubmission(account, row.toSubmission()))
	}
	return out, nil
}

func (r *PredictionRepository) AppendSubmission(ctx context.Context, userID string, item prediction.Submission) error {
	rows := []predictionTableModel{{
		ID:             item.ID,
		UserID:         userID,
		RaceID:         item.RaceID,
		TeamID:         item.TeamID,
		TeamName:       item.TeamName,
		Predictions:    pq.StringArray(item.Predictions),
		SubmittedAt:    item.SubmittedAt,
		IsCarryForward: item.IsCarryForward,
	}}
	query, args, err := qb.InsertModels("predictions", rows, "")
	if err != nil {
		return fmt.Errorf("build insert submission query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert submission %s: %w", item.ID, err)
	}
	return nil
}

func (r *PredictionRepository) UpsertAccount(ctx context.Context, account prediction.Account) error {
	rows := []accountTableModel{{
		UserID:            account.UserID,
		TeamName:          account.TeamName,
		SecondaryTeamName: account.SecondaryTeamName,
	}}
	query, args, err := qb.InsertModels("accounts", rows, `ON CONFLICT (user_id) DO UPDATE SET
    team_name = EXCLUDED.team_name,
    secondary_team_name = EXCLUDED.secondary_team_name`)
	if err != nil {
		return fmt.Errorf("build upsert account query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert account %s: %w", account.UserID, err)
	}
	return nil
}
