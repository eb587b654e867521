package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/prix-six/internal/domain/scoring"
)

type ScoreRepository struct {
	mu     sync.RWMutex
	scores map[string]scoring.Record
}

func NewScoreRepository(records []scoring.Record) *ScoreRepository {
	byID := make(map[string]scoring.Record, len(records))
	for _, item := range records {
		byID[item.ID] = item
	}
	return &ScoreRepository{scores: byID}
}

func (r *ScoreRepository) ListScores(_ context.Context) ([]scoring.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.Record, 0, len(r.scores))
	for _, item := range r.scores {
		out = append(out, item)
	}
	sortRecords(out)
	return out, nil
}

// ListScoresByEvent matches the event id case-insensitively, since stored ids
// do not share one casing convention.
func (r *ScoreRepository) ListScoresByEvent(_ context.Context, eventID string) ([]scoring.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.Record, 0)
	for _, item := range r.scores {
		if strings.EqualFold(item.EventID, eventID) {
			out = append(out, item)
		}
	}
	sortRecords(out)
	return out, nil
}

func (r *ScoreRepository) UpsertScores(_ context.Context, records []scoring.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range records {
		r.scores[item.ID] = item
	}
	return nil
}

func (r *ScoreRepository) DeleteScoresByEvent(_ context.Context, eventID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, item := range r.scores {
		if strings.EqualFold(item.EventID, eventID) {
			delete(r.scores, id)
			deleted++
		}
	}
	return deleted, nil
}

func sortRecords(items []scoring.Record) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}
