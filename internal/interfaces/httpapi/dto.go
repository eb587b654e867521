package httpapi

import (
	"github.com/riskibarqy/prix-six/internal/domain/reconciliation"
	"github.com/riskibarqy/prix-six/internal/domain/scoring"
)

// Drivers may be given as id, code, number or name.
type previewScoreRequest struct {
	Order  []string `json:"order" validate:"required,len=6,dive,required"`
	TopSix []string `json:"topSix" validate:"required,len=6,dive,required"`
}

type scoreOutcomeDTO struct {
	TotalPoints  int                  `json:"totalPoints"`
	CorrectCount int                  `json:"correctCount"`
	Bonus        bool                 `json:"bonus"`
	Breakdown    string               `json:"breakdown"`
	Lines        []scoreBreakdownLine `json:"lines"`
}

type scoreBreakdownLine struct {
	Slot        int    `json:"slot"`
	DriverID    string `json:"driverId,omitempty"`
	Label       string `json:"label"`
	ActualIndex int    `json:"actualIndex"`
	Points      int    `json:"points"`
}

type reconciliationRunDTO struct {
	Persisted bool                  `json:"persisted"`
	Report    reconciliation.Report `json:"report"`
}

func outcomeToDTO(v scoring.Outcome) scoreOutcomeDTO {
	lines := make([]scoreBreakdownLine, 0, len(v.Breakdown))
	for _, item := range v.Breakdown {
		lines = append(lines, scoreBreakdownLine{
			Slot:        item.Slot,
			DriverID:    item.DriverID,
			Label:       item.Label,
			ActualIndex: item.ActualIndex,
			Points:      item.Points,
		})
	}

	return scoreOutcomeDTO{
		TotalPoints:  v.Total,
		CorrectCount: v.CorrectCount,
		Bonus:        v.HasBonus(),
		Breakdown:    v.Breakdown.String(),
		Lines:        lines,
	}
}
