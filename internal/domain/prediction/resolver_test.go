package prediction

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/prix-six/internal/domain/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	topSix = []string{"verstappen", "norris", "piastri", "leclerc", "hamilton", "russell"}

	// 6 + 4 = 10 points against topSix.
	orderWorth10 = []string{"verstappen", "piastri", "alonso", "stroll", "gasly", "ocon"}
	// 6 + 6 + 3 + 2 = 17 points against topSix.
	orderWorth17 = []string{"verstappen", "norris", "hamilton", "alonso", "stroll", "piastri"}

	base = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
)

func candidate(id string, order []string, offset time.Duration) Prediction {
	return Prediction{
		ID:          id,
		Team:        PrimaryTeam("u1"),
		EventID:     "Australian-Grand-Prix",
		Order:       order,
		SubmittedAt: base.Add(offset),
	}
}

func intPtr(v int) *int { return &v }

func TestResolve_PicksCandidateMatchingStoredTotal(t *testing.T) {
	calc := scoring.NewCalculator(nil)
	candidates := []Prediction{
		candidate("newer", orderWorth10, time.Hour),
		candidate("older", orderWorth17, 0),
	}

	got, err := Resolve(calc, candidates, intPtr(17), topSix)
	require.NoError(t, err)

	assert.Equal(t, "older", got.Prediction.ID)
	assert.Equal(t, 17, got.Outcome.Total)
	assert.True(t, got.Exact)
	assert.Equal(t, 2, got.Candidates)
}

func TestResolve_LatestExactMatchWins(t *testing.T) {
	calc := scoring.NewCalculator(nil)
	candidates := []Prediction{
		candidate("first", orderWorth17, 0),
		candidate("second", orderWorth17, 2*time.Hour),
		candidate("third", orderWorth10, time.Hour),
	}

	got, err := Resolve(calc, candidates, intPtr(17), topSix)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Prediction.ID)
}

func TestResolve_WithoutExpectedTotalUsesLatest(t *testing.T) {
	calc := scoring.NewCalculator(nil)
	candidates := []Prediction{
		candidate("older", orderWorth17, 0),
		candidate("newer", orderWorth10, time.Hour),
	}

	got, err := Resolve(calc, candidates, nil, topSix)
	require.NoError(t, err)
	assert.Equal(t, "newer", got.Prediction.ID)
	assert.Equal(t, 10, got.Outcome.Total)
}

func TestResolve_NoCandidates(t *testing.T) {
	_, err := Resolve(scoring.NewCalculator(nil), nil, intPtr(10), topSix)
	require.ErrorIs(t, err, ErrNoPredictionFound)
}

func TestResolve_AmbiguousReturnsClosest(t *testing.T) {
	calc := scoring.NewCalculator(nil)
	candidates := []Prediction{
		candidate("ten", orderWorth10, time.Hour),
		candidate("seventeen", orderWorth17, 0),
	}

	got, err := Resolve(calc, candidates, intPtr(15), topSix)
	require.ErrorIs(t, err, ErrAmbiguousPrediction)
	assert.Equal(t, "seventeen", got.Prediction.ID)
	assert.False(t, got.Exact)
	assert.Equal(t, 17, got.Outcome.Total)
}

func TestResolve_SingleCandidateMismatchIsNotAmbiguous(t *testing.T) {
	calc := scoring.NewCalculator(nil)

	got, err := Resolve(calc, []Prediction{candidate("only", orderWorth10, 0)}, intPtr(12), topSix)
	require.NoError(t, err)
	assert.Equal(t, "only", got.Prediction.ID)
	assert.False(t, got.Exact)
}

func TestResolve_SkipsMalformedCandidates(t *testing.T) {
	calc := scoring.NewCalculator(nil)
	candidates := []Prediction{
		candidate("broken", []string{"verstappen"}, time.Hour),
		candidate("valid", orderWorth10, 0),
	}

	got, err := Resolve(calc, candidates, intPtr(10), topSix)
	require.NoError(t, err)
	assert.Equal(t, "valid", got.Prediction.ID)
}

func TestResolve_AllMalformed(t *testing.T) {
	calc := scoring.NewCalculator(nil)
	candidates := []Prediction{candidate("broken", []string{"a", "a", "b", "c", "d", "e"}, 0)}

	_, err := Resolve(calc, candidates, intPtr(10), topSix)
	require.Error(t, err)
	assert.True(t, errors.Is(err, scoring.ErrMalformedPredictionOrResult))
	assert.False(t, errors.Is(err, ErrAmbiguousPrediction))
}

func TestResolve_DoesNotReorderInput(t *testing.T) {
	calc := scoring.NewCalculator(nil)
	candidates := []Prediction{
		candidate("older", orderWorth17, 0),
		candidate("newer", orderWorth10, time.Hour),
	}

	_, err := Resolve(calc, candidates, intPtr(17), topSix)
	require.NoError(t, err)
	assert.Equal(t, "older", candidates[0].ID)
}
