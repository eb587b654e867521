package postgres

import (
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/prix-six/internal/domain/prediction"
	"github.com/riskibarqy/prix-six/internal/domain/race"
	"github.com/riskibarqy/prix-six/internal/domain/scoring"
)

type eventResultTableModel struct {
	EventID    string         `db:"event_id"`
	TopSix     pq.StringArray `db:"top_six"`
	RecordedAt time.Time      `db:"recorded_at"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (m eventResultTableModel) toDomain() race.Result {
	return race.Result{
		EventID:    m.EventID,
		TopSix:     []string(m.TopSix),
		RecordedAt: m.RecordedAt,
	}
}

type eventResultInsertModel struct {
	EventID    string         `db:"event_id"`
	TopSix     pq.StringArray `db:"top_six"`
	RecordedAt time.Time      `db:"recorded_at"`
}

type scoreTableModel struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	RaceID       string    `db:"race_id"`
	TeamKey      string    `db:"team_key"`
	TotalPoints  int       `db:"total_points"`
	Breakdown    string    `db:"breakdown"`
	CalculatedAt time.Time `db:"calculated_at"`
}

func newScoreTableModel(item scoring.Record) scoreTableModel {
	return scoreTableModel{
		ID:           item.ID,
		UserID:       item.UserID,
		RaceID:       item.EventID,
		TeamKey:      item.TeamKey,
		TotalPoints:  item.TotalPoints,
		Breakdown:    item.Breakdown,
		CalculatedAt: item.CalculatedAt,
	}
}

func (m scoreTableModel) toDomain() scoring.Record {
	return scoring.Record{
		ID:           m.ID,
		UserID:       m.UserID,
		EventID:      m.RaceID,
		TeamKey:      m.TeamKey,
		TotalPoints:  m.TotalPoints,
		Breakdown:    m.Breakdown,
		CalculatedAt: m.CalculatedAt,
	}
}

type accountTableModel struct {
	UserID            string `db:"user_id"`
	TeamName          string `db:"team_name"`
	SecondaryTeamName string `db:"secondary_team_name"`
}

type predictionTableModel struct {
	ID             string         `db:"id"`
	UserID         string         `db:"user_id"`
	RaceID         string         `db:"race_id"`
	TeamID         string         `db:"team_id"`
	TeamName       string         `db:"team_name"`
	Predictions    pq.StringArray `db:"predictions"`
	SubmittedAt    time.Time      `db:"submitted_at"`
	IsCarryForward bool           `db:"is_carry_forward"`
}

func (m predictionTableModel) toSubmission() prediction.Submission {
	return prediction.Submission{
		ID:             m.ID,
		RaceID:         m.RaceID,
		TeamID:         m.TeamID,
		TeamName:       m.TeamName,
		Predictions:    []string(m.Predictions),
		SubmittedAt:    m.SubmittedAt,
		IsCarryForward: m.IsCarryForward,
	}
}

type auditLogTableModel struct {
	ID        string    `db:"id"`
	Type      string    `db:"type"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
}
