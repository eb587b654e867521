package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/prix-six/internal/domain/prediction"
	"github.com/riskibarqy/prix-six/internal/domain/race"
	"github.com/riskibarqy/prix-six/internal/domain/scoring"
	"github.com/riskibarqy/prix-six/internal/platform/cache"
	"github.com/riskibarqy/prix-six/internal/platform/logging"
	"github.com/riskibarqy/prix-six/internal/platform/resilience"
)

const standingsCacheKey = "standings:all"

type ScoringService struct {
	resultRepo     race.Repository
	scoreRepo      scoring.Repository
	predictionRepo prediction.Repository
	calculator     *scoring.Calculator
	standingsCache *cache.Store[[]Standing]
	logger         *logging.Logger
	now            func() time.Time
	eventFlight    resilience.Group[ScoreEventResult]
}

type ScoreEventResult struct {
	EventID string           `json:"eventId"`
	Deleted int              `json:"deleted"`
	Scored  int              `json:"scored"`
	Skipped int              `json:"skipped"`
	Changed int              `json:"changed"`
	Records []scoring.Record `json:"-"`
}

type PreviewInput struct {
	Order  []string
	TopSix []string
}

// Standing is one row of the running leaderboard. Teams on equal points share
// a rank and the next rank skips accordingly (1, 1, 3).
type Standing struct {
	Rank        int    `json:"rank"`
	TeamKey     string `json:"teamKey"`
	UserID      string `json:"userId"`
	TotalPoints int    `json:"totalPoints"`
	Events      int    `json:"events"`
}

func NewScoringService(
	resultRepo race.Repository,
	scoreRepo scoring.Repository,
	predictionRepo prediction.Repository,
	calculator *scoring.Calculator,
	standingsTTL time.Duration,
	logger *logging.Logger,
) *ScoringService {
	if calculator == nil {
		calculator = scoring.NewCalculator(nil)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		resultRepo:     resultRepo,
		scoreRepo:      scoreRepo,
		predictionRepo: predictionRepo,
		calculator:     calculator,
		standingsCache: cache.NewStore[[]Standing](standingsTTL),
		logger:         logger,
		now:            time.Now,
	}
}

// ScoreEvent scores the latest submission of every team that predicted the
// event and upserts one record per team. A prediction made for the other
// session of the same weekend is never used.
func (s *ScoringService) ScoreEvent(ctx context.Context, eventID string) (ScoreEventResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreEvent")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return ScoreEventResult{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	out, _, err := s.eventFlight.Do("score:"+strings.ToLower(eventID), func() (ScoreEventResult, error) {
		result, err := s.findResult(ctx, eventID)
		if err != nil {
			return ScoreEventResult{}, err
		}
		return s.scoreResult(ctx, result)
	})
	recordSpanError(span, err)
	return out, err
}

// RescoreEvent deletes the stored scores of an event and scores it again, for
// use after a result correction.
func (s *ScoringService) RescoreEvent(ctx context.Context, eventID string) (ScoreEventResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RescoreEvent")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return ScoreEventResult{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	out, _, err := s.eventFlight.Do("rescore:"+strings.ToLower(eventID), func() (ScoreEventResult, error) {
		result, err := s.findResult(ctx, eventID)
		if err != nil {
			return ScoreEventResult{}, err
		}

		previous, err := s.scoreRepo.ListScoresByEvent(ctx, result.EventID)
		if err != nil {
			return ScoreEventResult{}, fmt.Errorf("list scores for event %s: %w", result.EventID, err)
		}

		deleted, err := s.scoreRepo.DeleteScoresByEvent(ctx, result.EventID)
		if err != nil {
			return ScoreEventResult{}, fmt.Errorf("delete scores for event %s: %w", result.EventID, err)
		}
		s.standingsCache.DeletePrefix(standingsCacheKey)

		out, err := s.scoreResult(ctx, result)
		out.Deleted = deleted
		out.Changed = countChanged(previous, out.Records)
		return out, err
	})
	recordSpanError(span, err)
	return out, err
}

func (s *ScoringService) PreviewScore(ctx context.Context, input PreviewInput) (scoring.Outcome, error) {
	_, span := startUsecaseSpan(ctx, "usecase.ScoringService.PreviewScore")
	defer span.End()

	order, err := s.resolveDrivers("order", input.Order)
	if err != nil {
		return scoring.Outcome{}, err
	}
	topSix, err := s.resolveDrivers("topSix", input.TopSix)
	if err != nil {
		return scoring.Outcome{}, err
	}

	outcome, err := s.calculator.Score(order, topSix)
	if err != nil {
		return scoring.Outcome{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return outcome, nil
}

func (s *ScoringService) Standings(ctx context.Context) ([]Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Standings")
	defer span.End()

	return s.standingsCache.GetOrLoad(ctx, standingsCacheKey, s.loadStandings)
}

func (s *ScoringService) loadStandings(ctx context.Context) ([]Standing, error) {
	records, err := s.scoreRepo.ListScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scores for standings: %w", err)
	}
	return BuildStandings(records), nil
}

// BuildStandings sums record totals per team key and ranks teams by points,
// then by team key for a stable order.
func BuildStandings(records []scoring.Record) []Standing {
	byTeam := make(map[string]*Standing)
	for _, item := range records {
		key := recordTeamKey(item)
		if key == "" {
			continue
		}
		row, ok := byTeam[key]
		if !ok {
			userID := item.UserID
			if userID == "" {
				if parsed, err := prediction.ParseTeamKey(key); err == nil {
					userID = parsed.UserID
				}
			}
			row = &Standing{TeamKey: key, UserID: userID}
			byTeam[key] = row
		}
		row.TotalPoints += item.TotalPoints
		if item.ID != scoring.LateJoinerHandicapID {
			row.Events++
		}
	}

	out := make([]Standing, 0, len(byTeam))
	for _, row := range byTeam {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		return out[i].TeamKey < out[j].TeamKey
	})

	for i := range out {
		if i > 0 && out[i].TotalPoints == out[i-1].TotalPoints {
			out[i].Rank = out[i-1].Rank
			continue
		}
		out[i].Rank = i + 1
	}
	return out
}

func (s *ScoringService) findResult(ctx context.Context, eventID string) (race.Result, error) {
	result, ok, err := s.resultRepo.GetResult(ctx, eventID)
	if err != nil {
		return race.Result{}, fmt.Errorf("get result %s: %w", eventID, err)
	}
	if ok {
		return result, nil
	}

	results, err := s.resultRepo.ListResults(ctx)
	if err != nil {
		return race.Result{}, fmt.Errorf("list results: %w", err)
	}
	// Canonical keeps the session suffix, so a sprint never matches its grand prix.
	want, err := race.Canonical(eventID)
	if err != nil {
		return race.Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	for _, item := range results {
		got, err := race.Canonical(item.EventID)
		if err == nil && strings.EqualFold(got, want) {
			return item, nil
		}
	}
	return race.Result{}, fmt.Errorf("%w: no result for event %s", ErrNotFound, eventID)
}

func (s *ScoringService) scoreResult(ctx context.Context, result race.Result) (ScoreEventResult, error) {
	out := ScoreEventResult{EventID: result.EventID}
	if err := scoring.ValidateSix("result", result.TopSix); err != nil {
		return out, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	predictions, err := s.predictionRepo.ListPredictions(ctx)
	if err != nil {
		return out, fmt.Errorf("list predictions: %w", err)
	}

	byTeam, err := prediction.GroupForEvent(predictions, result.EventID)
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	calculatedAt := s.now().UTC()
	records := make([]scoring.Record, 0, len(byTeam))
	for team, candidates := range byTeam {
		resolved, err := prediction.Resolve(s.calculator, candidates, nil, result.TopSix)
		if err != nil {
			out.Skipped++
			s.logger.WarnContext(ctx, "skip unscorable prediction",
				"event_id", result.EventID,
				"team_key", team.String(),
				"error", err,
			)
			continue
		}
		records = append(records, scoring.Record{
			ID:           scoring.RecordID(result.EventID, team.String()),
			UserID:       team.UserID,
			EventID:      result.EventID,
			TeamKey:      team.String(),
			TotalPoints:  resolved.Outcome.Total,
			Breakdown:    resolved.Outcome.Breakdown.String(),
			CalculatedAt: calculatedAt,
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	if len(records) > 0 {
		if err := s.scoreRepo.UpsertScores(ctx, records); err != nil {
			return out, fmt.Errorf("upsert scores for event %s: %w", result.EventID, err)
		}
		s.standingsCache.DeletePrefix(standingsCacheKey)
	}

	out.Scored = len(records)
	out.Records = records
	s.logger.InfoContext(ctx, "event scored",
		"event_id", result.EventID,
		"scored", out.Scored,
		"skipped", out.Skipped,
	)
	return out, nil
}

// countChanged counts teams whose total differs from their previous record,
// including teams that were not scored before.
func countChanged(previous, current []scoring.Record) int {
	before := make(map[string]int, len(previous))
	for _, item := range previous {
		before[strings.ToLower(item.TeamKey)] = item.TotalPoints
	}

	changed := 0
	for _, item := range current {
		total, ok := before[strings.ToLower(item.TeamKey)]
		if !ok || total != item.TotalPoints {
			changed++
		}
	}
	return changed
}

// resolveDrivers accepts ids, codes, numbers or names and returns driver ids.
func (s *ScoringService) resolveDrivers(field string, values []string) ([]string, error) {
	if len(values) != scoring.SlotCount {
		return nil, fmt.Errorf("%w: %s must list %d drivers", ErrInvalidInput, field, scoring.SlotCount)
	}

	table := s.calculator.Drivers()
	out := make([]string, 0, len(values))
	for idx, value := range values {
		driverID, ok := table.ResolveID(value)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] %q is not a known driver", ErrInvalidInput, field, idx, value)
		}
		out = append(out, driverID)
	}
	return out, nil
}
