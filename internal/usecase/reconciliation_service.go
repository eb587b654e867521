package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/prix-six/internal/domain/prediction"
	"github.com/riskibarqy/prix-six/internal/domain/race"
	"github.com/riskibarqy/prix-six/internal/domain/reconciliation"
	"github.com/riskibarqy/prix-six/internal/domain/scoring"
	"github.com/riskibarqy/prix-six/internal/platform/id"
	"github.com/riskibarqy/prix-six/internal/platform/logging"
	"github.com/riskibarqy/prix-six/internal/platform/resilience"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultReconcileWorkers     = 4
	defaultReconcileMismatchCap = 50

	reconcileFlightKey = "reconcile:full"
)

type ReconciliationConfig struct {
	MaxWorkers int
	// MismatchCap bounds the mismatches written to the audit sink. The report
	// returned to the caller is never truncated.
	MismatchCap int
	SkipIDs     []string
}

type ReconciliationService struct {
	resultRepo     race.Repository
	scoreRepo      scoring.Repository
	predictionRepo prediction.Repository
	auditRepo      reconciliation.AuditRepository
	calculator     *scoring.Calculator
	idGen          id.Generator
	auditBreaker   *resilience.Breaker
	logger         *logging.Logger
	cfg            ReconciliationConfig
	skip           map[string]struct{}
	now            func() time.Time
	runFlight      resilience.Group[reconciliation.Report]
}

func NewReconciliationService(
	resultRepo race.Repository,
	scoreRepo scoring.Repository,
	predictionRepo prediction.Repository,
	auditRepo reconciliation.AuditRepository,
	calculator *scoring.Calculator,
	idGen id.Generator,
	auditBreaker *resilience.Breaker,
	logger *logging.Logger,
	cfg ReconciliationConfig,
) *ReconciliationService {
	if calculator == nil {
		calculator = scoring.NewCalculator(nil)
	}
	if idGen == nil {
		idGen = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MismatchCap == 0 {
		cfg.MismatchCap = defaultReconcileMismatchCap
	}
	if cfg.SkipIDs == nil {
		cfg.SkipIDs = []string{scoring.LateJoinerHandicapID}
	}

	skip := make(map[string]struct{}, len(cfg.SkipIDs))
	for _, item := range cfg.SkipIDs {
		if value := strings.ToLower(strings.TrimSpace(item)); value != "" {
			skip[value] = struct{}{}
		}
	}

	return &ReconciliationService{
		resultRepo:     resultRepo,
		scoreRepo:      scoreRepo,
		predictionRepo: predictionRepo,
		auditRepo:      auditRepo,
		calculator:     calculator,
		idGen:          idGen,
		auditBreaker:   auditBreaker,
		logger:         logger,
		cfg:            cfg,
		skip:           skip,
		now:            time.Now,
	}
}

// Run recomputes every stored score, compares it with the persisted total and
// writes a capped report to the audit sink. Concurrent calls share one run.
//
// A dataset that cannot be loaded aborts the run and nothing is written. When
// only the audit write fails, the complete report is returned with the error.
func (s *ReconciliationService) Run(ctx context.Context) (reconciliation.Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconciliationService.Run")
	defer span.End()

	report, _, err := s.runFlight.Do(reconcileFlightKey, func() (reconciliation.Report, error) {
		return s.run(ctx)
	})
	recordSpanError(span, err)
	return report, err
}

func (s *ReconciliationService) LatestReport(ctx context.Context) (reconciliation.Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconciliationService.LatestReport")
	defer span.End()

	report, ok, err := s.auditRepo.LatestReport(ctx)
	if err != nil {
		return reconciliation.Report{}, fmt.Errorf("get latest reconciliation report: %w", err)
	}
	if !ok {
		return reconciliation.Report{}, fmt.Errorf("%w: no reconciliation report yet", ErrNotFound)
	}
	return report, nil
}

func (s *ReconciliationService) run(ctx context.Context) (reconciliation.Report, error) {
	startedAt := s.now()

	data, err := s.load(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return reconciliation.Report{}, ctxErr
		}
		return reconciliation.Report{}, fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
	}

	index := newReconcileIndex(data.results, data.predictions)
	outcomes, err := s.classifyAll(ctx, data.scores, index)
	if err != nil {
		return reconciliation.Report{}, err
	}

	report := reconciliation.Report{
		Type:       reconciliation.ReportTypeFullCrossCheck,
		Mismatches: make([]reconciliation.Mismatch, 0),
		CreatedAt:  s.now().UTC(),
	}
	for _, item := range outcomes {
		report.Summary.Add(item.class, item.ambiguous)
		if item.mismatch != nil {
			report.Mismatches = append(report.Mismatches, *item.mismatch)
		}
	}

	reportID, err := s.idGen.NewID()
	if err != nil {
		return reconciliation.Report{}, fmt.Errorf("generate report id: %w", err)
	}
	report.ID = reportID

	s.logger.InfoContext(ctx, "reconciliation run classified",
		"report_id", report.ID,
		"total_scores", report.Summary.TotalScores,
		"match_count", report.Summary.MatchCount,
		"mismatch_count", report.Summary.MismatchCount,
		"ambiguous_count", report.Summary.AmbiguousCount,
		"no_result", report.Summary.NoResult,
		"no_prediction", report.Summary.NoPrediction,
		"duration_ms", time.Since(startedAt).Milliseconds(),
	)

	persisted := report.Capped(s.cfg.MismatchCap)
	saveErr := s.auditBreaker.Do(ctx, func(ctx context.Context) error {
		return s.auditRepo.SaveReport(ctx, persisted)
	})
	if saveErr != nil {
		s.logger.ErrorContext(ctx, "save reconciliation report failed", "report_id", report.ID, "error", saveErr)
		return report, fmt.Errorf("%w: %w: %w", ErrReportNotPersisted, ErrDependencyUnavailable, saveErr)
	}

	return report, nil
}

type reconcileDataset struct {
	results     []race.Result
	scores      []scoring.Record
	predictions []prediction.Prediction
}

func (s *ReconciliationService) load(ctx context.Context) (reconcileDataset, error) {
	var data reconcileDataset

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		items, err := s.resultRepo.ListResults(ctx)
		if err != nil {
			return errors.Wrapf(err, "load event results")
		}
		data.results = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.scoreRepo.ListScores(ctx)
		if err != nil {
			return errors.Wrapf(err, "load scores")
		}
		data.scores = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.predictionRepo.ListPredictions(ctx)
		if err != nil {
			return errors.Wrapf(err, "load predictions")
		}
		data.predictions = items
		return nil
	})

	if err := p.Wait(); err != nil {
		return reconcileDataset{}, err
	}
	return data, nil
}

type recordOutcome struct {
	class     reconciliation.Classification
	ambiguous bool
	mismatch  *reconciliation.Mismatch
}

// classifyAll checks every record on a bounded worker pool. Each task writes
// only its own slot so the reduce step sees records in load order.
func (s *ReconciliationService) classifyAll(ctx context.Context, records []scoring.Record, index *reconcileIndex) ([]recordOutcome, error) {
	outcomes := make([]recordOutcome, len(records))
	if len(records) == 0 {
		return outcomes, nil
	}

	workers, err := ants.NewPool(normalizeReconcileWorkerCount(s.cfg.MaxWorkers, len(records)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	for i := range records {
		idx := i
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			outcomes[idx] = s.classify(records[idx], index)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit record to worker pool: %w", err)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (s *ReconciliationService) classify(record scoring.Record, index *reconcileIndex) recordOutcome {
	if _, ok := s.skip[strings.ToLower(record.ID)]; ok {
		return recordOutcome{class: reconciliation.ClassSkipped}
	}

	result, ok := index.result(record.EventID)
	if !ok {
		return recordOutcome{class: reconciliation.ClassNoResult}
	}
	if err := scoring.ValidateSix("result", result.TopSix); err != nil {
		s.logger.Warn("stored result is malformed", "event_id", result.EventID, "error", err)
		return recordOutcome{class: reconciliation.ClassInvalid}
	}

	teamKey := recordTeamKey(record)
	candidates := index.candidates(record.EventID, teamKey)
	if len(candidates) == 0 {
		return recordOutcome{class: reconciliation.ClassNoPrediction}
	}

	stored := record.TotalPoints
	resolved, err := prediction.Resolve(s.calculator, candidates, &stored, result.TopSix)
	ambiguous := false
	switch {
	case err == nil:
	case errors.Is(err, prediction.ErrAmbiguousPrediction):
		ambiguous = true
	case errors.Is(err, prediction.ErrNoPredictionFound):
		return recordOutcome{class: reconciliation.ClassNoPrediction}
	default:
		s.logger.Warn("no scorable prediction for score", "score_id", record.ID, "error", err)
		return recordOutcome{class: reconciliation.ClassInvalid}
	}

	computed := resolved.Outcome.Total
	if computed == stored {
		return recordOutcome{class: reconciliation.ClassMatch, ambiguous: ambiguous}
	}

	return recordOutcome{
		class:     reconciliation.ClassMismatch,
		ambiguous: ambiguous,
		mismatch: &reconciliation.Mismatch{
			ScoreID:           record.ID,
			EventID:           record.EventID,
			TeamKey:           teamKey,
			Stored:            stored,
			Computed:          computed,
			Ambiguous:         ambiguous,
			CandidateCount:    resolved.Candidates,
			StoredBreakdown:   record.Breakdown,
			ComputedBreakdown: resolved.Outcome.Breakdown.String(),
		},
	}
}

func recordTeamKey(record scoring.Record) string {
	if key := strings.TrimSpace(record.TeamKey); key != "" {
		return key
	}
	return scoring.SplitRecordID(record.ID, record.EventID)
}

// reconcileIndex holds results by raw and lower-cased id and prediction
// positions by normalized and raw lower-cased event key.
type reconcileIndex struct {
	results     map[string]race.Result
	predictions []prediction.Prediction
	byKey       map[string][]int
}

func newReconcileIndex(results []race.Result, predictions []prediction.Prediction) *reconcileIndex {
	index := &reconcileIndex{
		results:     make(map[string]race.Result, len(results)*2),
		predictions: predictions,
		byKey:       make(map[string][]int, len(predictions)*2),
	}

	for _, item := range results {
		index.results[item.EventID] = item
	}
	for _, item := range results {
		lower := strings.ToLower(item.EventID)
		if _, exists := index.results[lower]; !exists {
			index.results[lower] = item
		}
	}

	for pos, item := range predictions {
		team := item.Team.String()
		raw := strings.ToLower(strings.TrimSpace(item.EventID)) + "_" + team
		index.byKey[raw] = append(index.byKey[raw], pos)
		if normalized, err := race.Normalize(item.EventID); err == nil {
			key := normalized + "_" + team
			if key != raw {
				index.byKey[key] = append(index.byKey[key], pos)
			}
		}
	}
	return index
}

func (x *reconcileIndex) result(eventID string) (race.Result, bool) {
	if item, ok := x.results[eventID]; ok {
		return item, true
	}
	item, ok := x.results[strings.ToLower(eventID)]
	return item, ok
}

// candidates unions the predictions found under the normalized key and the raw
// lower-cased key, each prediction at most once.
func (x *reconcileIndex) candidates(eventID, teamKey string) []prediction.Prediction {
	keys := []string{strings.ToLower(strings.TrimSpace(eventID)) + "_" + teamKey}
	if normalized, err := race.Normalize(eventID); err == nil {
		keys = append(keys, normalized+"_"+teamKey)
	}

	seen := make(map[int]struct{})
	out := make([]prediction.Prediction, 0)
	for _, key := range keys {
		for _, pos := range x.byKey[key] {
			if _, dup := seen[pos]; dup {
				continue
			}
			seen[pos] = struct{}{}
			out = append(out, x.predictions[pos])
		}
	}
	return out
}

func normalizeReconcileWorkerCount(value, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = defaultReconcileWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
