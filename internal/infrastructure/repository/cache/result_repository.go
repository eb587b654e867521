package cache

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/prix-six/internal/domain/race"
	basecache "github.com/riskibarqy/prix-six/internal/platform/cache"
)

const resultKeyPrefix = "result:"

// ResultRepository caches event results in front of a slower store. Results
// change only when a steward correction is recorded, which goes through
// UpsertResult and drops every cached entry.
type ResultRepository struct {
	next race.Repository
	list *basecache.Store[[]race.Result]
	byID *basecache.Store[cachedResult]
}

type cachedResult struct {
	value  race.Result
	exists bool
}

func NewResultRepository(next race.Repository, ttl time.Duration) *ResultRepository {
	return &ResultRepository{
		next: next,
		list: basecache.NewStore[[]race.Result](ttl),
		byID: basecache.NewStore[cachedResult](ttl),
	}
}

func (r *ResultRepository) ListResults(ctx context.Context) ([]race.Result, error) {
	items, err := r.list.GetOrLoad(ctx, resultKeyPrefix+"list", func(ctx context.Context) ([]race.Result, error) {
		items, err := r.next.ListResults(ctx)
		if err != nil {
			return nil, err
		}
		return cloneResults(items), nil
	})
	if err != nil {
		return nil, err
	}
	return cloneResults(items), nil
}

func (r *ResultRepository) GetResult(ctx context.Context, eventID string) (race.Result, bool, error) {
	key := resultKeyPrefix + "id:" + strings.ToLower(strings.TrimSpace(eventID))
	cached, err := r.byID.GetOrLoad(ctx, key, func(ctx context.Context) (cachedResult, error) {
		item, exists, err := r.next.GetResult(ctx, eventID)
		if err != nil {
			return cachedResult{}, err
		}
		return cachedResult{value: cloneResult(item), exists: exists}, nil
	})
	if err != nil {
		return race.Result{}, false, err
	}
	return cloneResult(cached.value), cached.exists, nil
}

func (r *ResultRepository) UpsertResult(ctx context.Context, result race.Result) error {
	if err := r.next.UpsertResult(ctx, result); err != nil {
		return err
	}
	r.list.DeletePrefix(resultKeyPrefix)
	r.byID.DeletePrefix(resultKeyPrefix)
	return nil
}

func cloneResult(item race.Result) race.Result {
	item.TopSix = append([]string(nil), item.TopSix...)
	return item
}

func cloneResults(items []race.Result) []race.Result {
	out := make([]race.Result, 0, len(items))
	for _, item := range items {
		out = append(out, cloneResult(item))
	}
	return out
}
