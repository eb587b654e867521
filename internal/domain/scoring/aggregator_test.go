package scoring

import (
	"testing"

	"github.com/riskibarqy/prix-six/internal/domain/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var grid = []string{"verstappen", "norris", "piastri", "leclerc", "hamilton", "russell"}

func TestScore_PerfectPrediction(t *testing.T) {
	got, err := Score(grid, grid)
	require.NoError(t, err)

	assert.Equal(t, 46, got.Total)
	assert.Equal(t, 6, got.CorrectCount)
	assert.True(t, got.HasBonus())
	assert.Equal(t, "Verstappen+6, Norris+6, Piastri+6, Leclerc+6, Hamilton+6, Russell+6, BonusAll6+10", got.Breakdown.String())
}

func TestScore_SwappedPodium(t *testing.T) {
	topSix := []string{"norris", "verstappen", "piastri", "leclerc", "hamilton", "russell"}

	got, err := Score(grid, topSix)
	require.NoError(t, err)

	assert.Equal(t, 42, got.Total)
	assert.Equal(t, 6, got.CorrectCount)
	require.Len(t, got.Breakdown, 7)
	assert.Equal(t, 4, got.Breakdown[0].Points)
	assert.Equal(t, 1, got.Breakdown[0].ActualIndex)
	assert.Equal(t, 4, got.Breakdown[1].Points)
	assert.True(t, got.Breakdown[6].Bonus)
}

func TestScore_WinnerOutsideTopSixLosesBonus(t *testing.T) {
	topSix := []string{"alonso", "norris", "piastri", "leclerc", "hamilton", "russell"}

	got, err := Score(grid, topSix)
	require.NoError(t, err)

	assert.Equal(t, 30, got.Total)
	assert.Equal(t, 5, got.CorrectCount)
	assert.False(t, got.HasBonus())
	assert.Equal(t, 0, got.Breakdown[0].Points)
	assert.Equal(t, -1, got.Breakdown[0].ActualIndex)
	assert.Equal(t, "Verstappen+0, Norris+6, Piastri+6, Leclerc+6, Hamilton+6, Russell+6", got.Breakdown.String())
}

func TestScore_BonusAppliedOnceRegardlessOfOrder(t *testing.T) {
	reversed := []string{"russell", "hamilton", "leclerc", "piastri", "norris", "verstappen"}

	got, err := Score(reversed, grid)
	require.NoError(t, err)

	// distances 5,3,1,1,3,5 -> 2+2+4+4+2+2
	assert.Equal(t, 16+BonusAllSix, got.Total)

	bonusLines := 0
	for _, item := range got.Breakdown {
		if item.Bonus {
			bonusLines++
		}
	}
	assert.Equal(t, 1, bonusLines)
}

func TestScore_BreakdownIsReproducible(t *testing.T) {
	order := []string{"piastri", "verstappen", "sainz", "norris", "albon", "russell"}
	topSix := []string{"verstappen", "piastri", "norris", "russell", "hamilton", "albon"}

	first, err := Score(order, topSix)
	require.NoError(t, err)
	second, err := Score(order, topSix)
	require.NoError(t, err)

	assert.Equal(t, first.Breakdown.String(), second.Breakdown.String())
	assert.Equal(t, first.Total, second.Total)
}

func TestScore_UnknownDriverUsesID(t *testing.T) {
	calc := NewCalculator(driver.NewTable(nil))

	got, err := calc.Score(grid, grid)
	require.NoError(t, err)
	assert.Equal(t, "verstappen", got.Breakdown[0].Label)
	assert.Equal(t, "verstappen+6, norris+6, piastri+6, leclerc+6, hamilton+6, russell+6, BonusAll6+10", got.Breakdown.String())
}

func TestScore_MalformedInput(t *testing.T) {
	tests := []struct {
		name   string
		order  []string
		topSix []string
	}{
		{name: "short prediction", order: grid[:5], topSix: grid},
		{name: "long result", order: grid, topSix: append(append([]string(nil), grid...), "albon")},
		{name: "duplicate prediction", order: []string{"a", "a", "b", "c", "d", "e"}, topSix: grid},
		{name: "duplicate result", order: grid, topSix: []string{"a", "b", "c", "d", "e", "e"}},
		{name: "blank slot", order: []string{"a", "", "b", "c", "d", "e"}, topSix: grid},
		{name: "nil", order: nil, topSix: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Score(tt.order, tt.topSix)
			assert.ErrorIs(t, err, ErrMalformedPredictionOrResult)
		})
	}
}
