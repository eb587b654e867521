package mongodb

import (
	"time"

	"github.com/riskibarqy/prix-six/internal/domain/prediction"
	"github.com/riskibarqy/prix-six/internal/domain/race"
	"github.com/riskibarqy/prix-six/internal/domain/reconciliation"
	"github.com/riskibarqy/prix-six/internal/domain/scoring"
)

type eventResultDocument struct {
	ID         string    `bson:"_id"`
	EventID    string    `bson:"eventId"`
	Driver1    string    `bson:"driver1"`
	Driver2    string    `bson:"driver2"`
	Driver3    string    `bson:"driver3"`
	Driver4    string    `bson:"driver4"`
	Driver5    string    `bson:"driver5"`
	Driver6    string    `bson:"driver6"`
	RecordedAt time.Time `bson:"recordedAt,omitempty"`
}

func newEventResultDocument(item race.Result) eventResultDocument {
	slot := func(idx int) string {
		if idx < len(item.TopSix) {
			return item.TopSix[idx]
		}
		return ""
	}
	return eventResultDocument{
		ID:         item.EventID,
		EventID:    item.EventID,
		Driver1:    slot(0),
		Driver2:    slot(1),
		Driver3:    slot(2),
		Driver4:    slot(3),
		Driver5:    slot(4),
		Driver6:    slot(5),
		RecordedAt: item.RecordedAt,
	}
}

// toDomain keeps empty driver slots so malformed results stay detectable.
func (d eventResultDocument) toDomain() race.Result {
	eventID := d.EventID
	if eventID == "" {
		eventID = d.ID
	}
	return race.Result{
		EventID:    eventID,
		TopSix:     []string{d.Driver1, d.Driver2, d.Driver3, d.Driver4, d.Driver5, d.Driver6},
		RecordedAt: d.RecordedAt,
	}
}

type scoreDocument struct {
	ID           string    `bson:"_id"`
	UserID       string    `bson:"userId"`
	RaceID       string    `bson:"raceId"`
	TeamKey      string    `bson:"teamKey,omitempty"`
	TotalPoints  int       `bson:"totalPoints"`
	Breakdown    string    `bson:"breakdown"`
	CalculatedAt time.Time `bson:"calculatedAt,omitempty"`
}

func newScoreDocument(item scoring.Record) scoreDocument {
	return scoreDocument{
		ID:           item.ID,
		UserID:       item.UserID,
		RaceID:       item.EventID,
		TeamKey:      item.TeamKey,
		TotalPoints:  item.TotalPoints,
		Breakdown:    item.Breakdown,
		CalculatedAt: item.CalculatedAt,
	}
}

func (d scoreDocument) toDomain() scoring.Record {
	return scoring.Record{
		ID:           d.ID,
		UserID:       d.UserID,
		EventID:      d.RaceID,
		TeamKey:      d.TeamKey,
		TotalPoints:  d.TotalPoints,
		Breakdown:    d.Breakdown,
		CalculatedAt: d.CalculatedAt,
	}
}

type accountDocument struct {
	ID                string `bson:"_id"`
	TeamName          string `bson:"teamName"`
	SecondaryTeamName string `bson:"secondaryTeamName,omitempty"`
}

func (d accountDocument) toDomain() prediction.Account {
	return prediction.Account{UserID: d.ID, TeamName: d.TeamName, SecondaryTeamName: d.SecondaryTeamName}
}

type predictionDocument struct {
	ID             string    `bson:"_id"`
	UserID         string    `bson:"userId"`
	RaceID         string    `bson:"raceId"`
	TeamID         string    `bson:"teamId,omitempty"`
	TeamName       string    `bson:"teamName"`
	Predictions    []string  `bson:"predictions"`
	SubmittedAt    time.Time `bson:"submittedAt"`
	IsCarryForward bool      `bson:"isCarryForward,omitempty"`
}

func newPredictionDocument(userID string, item prediction.Submission) predictionDocument {
	return predictionDocument{
		ID:             item.ID,
		UserID:         userID,
		RaceID:         item.RaceID,
		TeamID:         item.TeamID,
		TeamName:       item.TeamName,
		Predictions:    item.Predictions,
		SubmittedAt:    item.SubmittedAt,
		IsCarryForward: item.IsCarryForward,
	}
}

func (d predictionDocument) toSubmission() prediction.Submission {
	return prediction.Submission{
		ID:             d.ID,
		RaceID:         d.RaceID,
		TeamID:         d.TeamID,
		TeamName:       d.TeamName,
		Predictions:    d.Predictions,
		SubmittedAt:    d.SubmittedAt,
		IsCarryForward: d.IsCarryForward,
	}
}

type auditDocument struct {
	ID         string             `bson:"_id"`
	Type       string             `bson:"type"`
	Summary    summaryDocument    `bson:"summary"`
	Mismatches []mismatchDocument `bson:"mismatches"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

type summaryDocument struct {
	TotalScores    int `bson:"totalScores"`
	Skipped        int `bson:"skipped"`
	NoResult       int `bson:"noResult"`
	NoPrediction   int `bson:"noPrediction"`
	MatchCount     int `bson:"matchCount"`
	MismatchCount  int `bson:"mismatchCount"`
	AmbiguousCount int `bson:"ambiguousCount"`
	InvalidCount   int `bson:"invalidCount"`
}

type mismatchDocument struct {
	ScoreID           string `bson:"scoreId"`
	EventID           string `bson:"eventId"`
	TeamKey           string `bson:"teamKey"`
	Stored            int    `bson:"stored"`
	Computed          int    `bson:"computed"`
	Ambiguous         bool   `bson:"ambiguous,omitempty"`
	CandidateCount    int    `bson:"candidateCount"`
	StoredBreakdown   string `bson:"storedBreakdown,omitempty"`
	ComputedBreakdown string `bson:"computedBreakdown,omitempty"`
}

func newAuditDocument(report reconciliation.Report) auditDocument {
	doc := auditDocument{
		ID:         report.ID,
		Type:       report.Type,
		Summary:    summaryDocument(report.Summary),
		Mismatches: make([]mismatchDocument, 0, len(report.Mismatches)),
		CreatedAt:  report.CreatedAt,
	}
	for _, item := range report.Mismatches {
		doc.Mismatches = append(doc.Mismatches, mismatchDocument(item))
	}
	return doc
}

func (d auditDocument) toDomain() reconciliation.Report {
	report := reconciliation.Report{
		ID:         d.ID,
		Type:       d.Type,
		Summary:    reconciliation.Summary(d.Summary),
		Mismatches: make([]reconciliation.Mismatch, 0, len(d.Mismatches)),
		CreatedAt:  d.CreatedAt,
	}
	for _, item := range d.Mismatches {
		report.Mismatches = append(report.Mismatches, reconciliation.Mismatch(item))
	}
	return report
}
