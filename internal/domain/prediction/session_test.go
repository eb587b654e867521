package prediction

import (
	"testing"
	"time"

	"github.com/riskibarqy/prix-six/internal/domain/race"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekendPrediction(id string, team TeamKey, eventID string, offset time.Duration) Prediction {
	return Prediction{
		ID:          id,
		Team:        team,
		EventID:     eventID,
		Order:       orderWorth10,
		SubmittedAt: base.Add(offset),
	}
}

func TestGroupForEvent_SeparatesSessions(t *testing.T) {
	predictions := []Prediction{
		weekendPrediction("u1-sprint", PrimaryTeam("u1"), "Chinese-Grand-Prix-Sprint", 0),
		weekendPrediction("u1-gp", PrimaryTeam("u1"), "chinese grand prix gp", 24*time.Hour),
		weekendPrediction("u2-weekend", PrimaryTeam("u2"), "chinese-grand-prix", time.Hour),
		weekendPrediction("u3-sprint", PrimaryTeam("u3"), "Chinese Grand Prix - Sprint", time.Hour),
		weekendPrediction("u1-other", PrimaryTeam("u1"), "Japanese-Grand-Prix-GP", 48*time.Hour),
	}

	sprint, err := GroupForEvent(predictions, "Chinese-Grand-Prix-Sprint")
	require.NoError(t, err)
	require.Len(t, sprint, 3)
	assert.Equal(t, []string{"u1-sprint"}, predictionIDs(sprint[PrimaryTeam("u1")]))
	assert.Equal(t, []string{"u2-weekend"}, predictionIDs(sprint[PrimaryTeam("u2")]))
	assert.Equal(t, []string{"u3-sprint"}, predictionIDs(sprint[PrimaryTeam("u3")]))

	grandPrix, err := GroupForEvent(predictions, "Chinese-Grand-Prix")
	require.NoError(t, err)
	require.Len(t, grandPrix, 2)
	assert.Equal(t, []string{"u1-gp"}, predictionIDs(grandPrix[PrimaryTeam("u1")]))
	assert.Equal(t, []string{"u2-weekend"}, predictionIDs(grandPrix[PrimaryTeam("u2")]))
	assert.NotContains(t, grandPrix, PrimaryTeam("u3"))
}

func TestGroupForEvent_TaggedBeatsNewerUntagged(t *testing.T) {
	predictions := []Prediction{
		weekendPrediction("tagged", PrimaryTeam("u1"), "Miami-Grand-Prix-Sprint", 0),
		weekendPrediction("untagged", PrimaryTeam("u1"), "Miami-Grand-Prix", time.Hour),
	}

	got, err := GroupForEvent(predictions, "miami grand prix sprint")
	require.NoError(t, err)
	assert.Equal(t, []string{"tagged"}, predictionIDs(got[PrimaryTeam("u1")]))
}

func TestGroupForEvent_InvalidEvent(t *testing.T) {
	_, err := GroupForEvent(nil, "  ")
	require.ErrorIs(t, err, race.ErrInvalidIdentifier)
}

func predictionIDs(items []Prediction) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}
