package memory

import (
	"sort"
	"time"

	"github.com/riskibarqy/prix-six/internal/domain/prediction"
	"github.com/riskibarqy/prix-six/internal/domain/race"
	"github.com/riskibarqy/prix-six/internal/domain/scoring"
)

const (
	EventAustralia     = "Australian-Grand-Prix"
	EventChinaSprint   = "Chinese-Grand-Prix-Sprint"
	EventChina         = "Chinese-Grand-Prix"
	UserAlice          = "u-alice"
	UserBruno          = "u-bruno"
	UserChen           = "u-chen"
	seedHandicapPoints = 12
)

var seedEpoch = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func SeedResults() []race.Result {
	return []race.Result{
		{
			EventID:    EventAustralia,
			TopSix:     []string{"norris", "verstappen", "russell", "antonelli", "albon", "stroll"},
			RecordedAt: seedEpoch.Add(56 * time.Hour),
		},
		{
			EventID:    EventChinaSprint,
			TopSix:     []string{"hamilton", "piastri", "verstappen", "russell", "leclerc", "tsunoda"},
			RecordedAt: seedEpoch.Add(7*24*time.Hour + 4*time.Hour),
		},
		{
			EventID:    EventChina,
			TopSix:     []string{"piastri", "norris", "russell", "verstappen", "ocon", "antonelli"},
			RecordedAt: seedEpoch.Add(9*24*time.Hour + 2*time.Hour),
		},
	}
}

func SeedAccounts() []prediction.Account {
	return []prediction.Account{
		{UserID: UserAlice, TeamName: "Box Box", SecondaryTeamName: "Undercut"},
		{UserID: UserBruno, TeamName: "Parc Ferme"},
		{UserID: UserChen, TeamName: "DRS Train"},
	}
}

// SeedSubmissions includes an edited resubmission, a secondary team, a
// carry-forward and separate sprint and grand prix picks so every resolver
// path has data.
func SeedSubmissions() map[string][]prediction.Submission {
	at := func(days, hours int) time.Time {
		return seedEpoch.Add(time.Duration(days)*24*time.Hour + time.Duration(hours)*time.Hour)
	}

	return map[string][]prediction.Submission{
		UserAlice: {
			{
				ID: "alice-aus-1", RaceID: EventAustralia, TeamID: UserAlice, TeamName: "Box Box",
				Predictions: []string{"verstappen", "norris", "piastri", "leclerc", "russell", "hamilton"},
				SubmittedAt: at(0, 0),
			},
			{
				ID: "alice-aus-2", RaceID: "australian grand prix", TeamID: UserAlice, TeamName: "Box Box",
				Predictions: []string{"norris", "verstappen", "russell", "piastri", "leclerc", "antonelli"},
				SubmittedAt: at(1, 0),
			},
			{
				ID: "alice-aus-secondary", RaceID: EventAustralia, TeamName: "Undercut",
				Predictions: []string{"leclerc", "hamilton", "norris", "verstappen", "russell", "albon"},
				SubmittedAt: at(1, 2),
			},
			{
				ID: "alice-chn-1", RaceID: "chinese-grand-prix", TeamID: UserAlice, TeamName: "Box Box",
				Predictions: []string{"piastri", "norris", "verstappen", "russell", "hamilton", "leclerc"},
				SubmittedAt: at(6, 0),
			},
		},
		UserBruno: {
			{
				ID: "bruno-aus-1", RaceID: EventAustralia, TeamID: UserBruno, TeamName: "Parc Ferme",
				Predictions: []string{"norris", "piastri", "verstappen", "russell", "leclerc", "hamilton"},
				SubmittedAt: at(0, 5),
			},
			{
				ID: "bruno-chn-carry", RaceID: EventChina, TeamID: UserBruno, TeamName: "Parc Ferme",
				Predictions:    []string{"norris", "piastri", "verstappen", "russell", "leclerc", "hamilton"},
				SubmittedAt:    at(6, 1),
				IsCarryForward: true,
			},
		},
		UserChen: {
			{
				ID: "chen-chn-1", RaceID: "Chinese Grand Prix - Sprint", TeamID: UserChen, TeamName: "DRS Train",
				Predictions: []string{"hamilton", "verstappen", "piastri", "norris", "russell", "leclerc"},
				SubmittedAt: at(6, 3),
			},
			{
				ID: "chen-chn-gp", RaceID: "Chinese-Grand-Prix-GP", TeamID: UserChen, TeamName: "DRS Train",
				Predictions: []string{"piastri", "russell", "norris", "verstappen", "antonelli", "hamilton"},
				SubmittedAt: at(8, 0),
			},
		},
	}
}

// SeedScores scores the seeded submissions the way a scoring pass would and
// adds the late joiner handicap document.
func SeedScores() []scoring.Record {
	calc := scoring.NewCalculator(nil)
	accounts := make(map[string]prediction.Account)
	for _, item := range SeedAccounts() {
		accounts[item.UserID] = item
	}

	predictions := make([]prediction.Prediction, 0)
	for userID, items := range SeedSubmissions() {
		for _, item := range items {
			predictions = append(predictions, prediction.FromSubmission(accounts[userID], item))
		}
	}

	out := make([]scoring.Record, 0)
	for _, result := range SeedResults() {
		byTeam, err := prediction.GroupForEvent(predictions, result.EventID)
		if err != nil {
			continue
		}
		for team, candidates := range byTeam {
			resolved, err := prediction.Resolve(calc, candidates, nil, result.TopSix)
			if err != nil {
				continue
			}
			out = append(out, scoring.Record{
				ID:           scoring.RecordID(result.EventID, team.String()),
				UserID:       team.UserID,
				EventID:      result.EventID,
				TeamKey:      team.String(),
				TotalPoints:  resolved.Outcome.Total,
				Breakdown:    resolved.Outcome.Breakdown.String(),
				CalculatedAt: result.RecordedAt.Add(time.Hour),
			})
		}
	}

	out = append(out, scoring.Record{
		ID:           scoring.LateJoinerHandicapID,
		UserID:       UserChen,
		TeamKey:      UserChen,
		TotalPoints:  seedHandicapPoints,
		Breakdown:    "Late joiner handicap",
		CalculatedAt: seedEpoch,
	})

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
