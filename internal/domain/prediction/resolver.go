package prediction

import (
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/prix-six/internal/domain/scoring"
)

var (
	ErrNoPredictionFound   = errors.New("no prediction found")
	ErrAmbiguousPrediction = errors.New("ambiguous prediction")
)

type Scorer interface {
	Score(order, topSix []string) (scoring.Outcome, error)
}

// Resolution is the candidate chosen for a (team, event) pair together with
// its computed outcome.
type Resolution struct {
	Prediction Prediction
	Outcome    scoring.Outcome
	Candidates int
	Exact      bool
}

// Resolve picks the authoritative prediction among candidates.
//
// With an expected total, candidates are scanned newest first and the first
// one whose computed total equals it wins. Otherwise the closest total is
// returned together with ErrAmbiguousPrediction when more than one candidate
// existed. Without an expected total the newest scorable candidate wins.
func Resolve(scorer Scorer, candidates []Prediction, expectedTotal *int, topSix []string) (Resolution, error) {
	if len(candidates) == 0 {
		return Resolution{}, ErrNoPredictionFound
	}

	ordered := make([]Prediction, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SubmittedAt.After(ordered[j].SubmittedAt)
	})

	var (
		best     Resolution
		bestDiff = -1
		lastErr  error
	)
	for _, item := range ordered {
		outcome, err := scorer.Score(item.Order, topSix)
		if err != nil {
			lastErr = err
			continue
		}
		current := Resolution{
			Prediction: item,
			Outcome:    outcome,
			Candidates: len(candidates),
		}
		if expectedTotal == nil {
			current.Exact = true
			return current, nil
		}

		diff := outcome.Total - *expectedTotal
		if diff < 0 {
			diff = -diff
		}
		if diff == 0 {
			current.Exact = true
			return current, nil
		}
		if bestDiff < 0 || diff < bestDiff {
			best = current
			bestDiff = diff
		}
	}

	if bestDiff < 0 {
		return Resolution{}, fmt.Errorf("no scorable candidate among %d: %w", len(candidates), lastErr)
	}
	if len(candidates) > 1 {
		return best, fmt.Errorf("%w: closest of %d candidates is off by %d", ErrAmbiguousPrediction, len(candidates), bestDiff)
	}
	return best, nil
}
