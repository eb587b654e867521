package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/prix-six/internal/domain/race"
)

type ResultRepository struct {
	mu      sync.RWMutex
	results map[string]race.Result
}

func NewResultRepository(results []race.Result) *ResultRepository {
	byID := make(map[string]race.Result, len(results))
	for _, item := range results {
		byID[item.EventID] = cloneResult(item)
	}
	return &ResultRepository{results: byID}
}

func (r *ResultRepository) ListResults(_ context.Context) ([]race.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]race.Result, 0, len(r.results))
	for _, item := range r.results {
		out = append(out, cloneResult(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventID < out[j].EventID })
	return out, nil
}

func (r *ResultRepository) GetResult(_ context.Context, eventID string) (race.Result, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.results[eventID]
	if !ok {
		return race.Result{}, false, nil
	}
	return cloneResult(item), true, nil
}

func (r *ResultRepository) UpsertResult(_ context.Context, result race.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.results[result.EventID] = cloneResult(result)
	return nil
}

func cloneResult(item race.Result) race.Result {
	item.TopSix = append([]string(nil), item.TopSix...)
	return item
}
