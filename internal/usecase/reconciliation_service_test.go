package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/prix-six/internal/domain/prediction"
	"github.com/riskibarqy/prix-six/internal/domain/race"
	"github.com/riskibarqy/prix-six/internal/domain/reconciliation"
	"github.com/riskibarqy/prix-six/internal/domain/scoring"
	"github.com/riskibarqy/prix-six/internal/infrastructure/repository/memory"
	predictionmock "github.com/riskibarqy/prix-six/internal/mocks/domain/prediction"
	racemock "github.com/riskibarqy/prix-six/internal/mocks/domain/race"
	reconciliationmock "github.com/riskibarqy/prix-six/internal/mocks/domain/reconciliation"
	scoringmock "github.com/riskibarqy/prix-six/internal/mocks/domain/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reconcileFixture struct {
	results     *memory.ResultRepository
	scores      *memory.ScoreRepository
	predictions *memory.PredictionRepository
	audit       *memory.AuditRepository
}

func newReconcileFixture(records []scoring.Record) reconcileFixture {
	return reconcileFixture{
		results:     memory.NewResultRepository(memory.SeedResults()),
		scores:      memory.NewScoreRepository(records),
		predictions: memory.NewPredictionRepository(memory.SeedAccounts(), memory.SeedSubmissions()),
		audit:       memory.NewAuditRepository(),
	}
}

func (f reconcileFixture) service(cfg ReconciliationConfig) *ReconciliationService {
	return NewReconciliationService(f.results, f.scores, f.predictions, f.audit, nil, nil, nil, nil, cfg)
}

func corrupt(records []scoring.Record, id string, delta int) []scoring.Record {
	out := append([]scoring.Record(nil), records...)
	for i := range out {
		if out[i].ID == id {
			out[i].TotalPoints += delta
		}
	}
	return out
}

func storedTotal(t *testing.T, records []scoring.Record, id string) int {
	t.Helper()
	for _, item := range records {
		if item.ID == id {
			return item.TotalPoints
		}
	}
	t.Fatalf("record %s not seeded", id)
	return 0
}

func TestReconciliationService_Run_CleanDataset(t *testing.T) {
	t.Parallel()

	fixture := newReconcileFixture(memory.SeedScores())
	report, err := fixture.service(ReconciliationConfig{MaxWorkers: 3}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, reconciliation.ReportTypeFullCrossCheck, report.Type)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, reconciliation.Summary{TotalScores: 10, Skipped: 1, MatchCount: 9}, report.Summary)
	assert.Empty(t, report.Mismatches)

	saved := fixture.audit.Reports()
	require.Len(t, saved, 1)
	assert.Equal(t, report.ID, saved[0].ID)
}

func TestReconciliationService_Run_OffByOneIsReportedOnce(t *testing.T) {
	t.Parallel()

	seeded := memory.SeedScores()
	target := scoring.RecordID(memory.EventAustralia, memory.UserBruno)
	want := storedTotal(t, seeded, target)

	fixture := newReconcileFixture(corrupt(seeded, target, 1))
	report, err := fixture.service(ReconciliationConfig{}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.MismatchCount)
	assert.Equal(t, 8, report.Summary.MatchCount)
	assert.Equal(t, 0, report.Summary.AmbiguousCount)
	require.Len(t, report.Mismatches, 1)

	got := report.Mismatches[0]
	assert.Equal(t, target, got.ScoreID)
	assert.Equal(t, memory.EventAustralia, got.EventID)
	assert.Equal(t, memory.UserBruno, got.TeamKey)
	assert.Equal(t, want+1, got.Stored)
	assert.Equal(t, want, got.Computed)
	assert.Equal(t, -1, got.Delta())
	assert.False(t, got.Ambiguous)
	assert.Equal(t, 1, got.CandidateCount)
}

func TestReconciliationService_Run_EditedSubmissionIsAmbiguousWhenNothingMatches(t *testing.T) {
	t.Parallel()

	seeded := memory.SeedScores()
	target := scoring.RecordID(memory.EventAustralia, memory.UserAlice)
	want := storedTotal(t, seeded, target)

	fixture := newReconcileFixture(corrupt(seeded, target, 1))
	report, err := fixture.service(ReconciliationConfig{}).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Mismatches, 1)
	got := report.Mismatches[0]
	assert.True(t, got.Ambiguous)
	assert.Equal(t, 2, got.CandidateCount)
	assert.Equal(t, want, got.Computed)
	assert.Equal(t, 1, report.Summary.AmbiguousCount)
}

func TestReconciliationService_Run_OlderSubmissionMatchingStoredTotal(t *testing.T) {
	t.Parallel()

	results := memory.SeedResults()
	first := memory.SeedSubmissions()[memory.UserAlice][0]
	older, err := scoring.Score(first.Predictions, results[0].TopSix)
	require.NoError(t, err)

	seeded := memory.SeedScores()
	target := scoring.RecordID(memory.EventAustralia, memory.UserAlice)
	for i := range seeded {
		if seeded[i].ID == target {
			seeded[i].TotalPoints = older.Total
		}
	}

	fixture := newReconcileFixture(seeded)
	report, err := fixture.service(ReconciliationConfig{}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Summary.MismatchCount)
	assert.Equal(t, 9, report.Summary.MatchCount)
}

func TestReconciliationService_Run_ClassifiesMissingData(t *testing.T) {
	t.Parallel()

	records := []scoring.Record{
		{ID: "Monaco-Grand-Prix_u-alice", EventID: "Monaco-Grand-Prix", TeamKey: "u-alice", TotalPoints: 20},
		{ID: "Australian-Grand-Prix_u-ghost", EventID: memory.EventAustralia, TeamKey: "u-ghost", TotalPoints: 4},
		{ID: "LATE-JOINER-HANDICAP", TotalPoints: 12},
	}
	fixture := newReconcileFixture(records)

	report, err := fixture.service(ReconciliationConfig{}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reconciliation.Summary{TotalScores: 3, Skipped: 1, NoResult: 1, NoPrediction: 1}, report.Summary)
}

func TestReconciliationService_Run_LowercaseEventIDAndDerivedTeamKey(t *testing.T) {
	t.Parallel()

	var bruno scoring.Record
	for _, item := range memory.SeedScores() {
		if item.ID == scoring.RecordID(memory.EventAustralia, memory.UserBruno) {
			bruno = item
		}
	}
	bruno.EventID = "australian-grand-prix"
	bruno.ID = "australian-grand-prix_" + memory.UserBruno
	bruno.TeamKey = ""

	fixture := newReconcileFixture([]scoring.Record{bruno})
	report, err := fixture.service(ReconciliationConfig{}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.MatchCount)
}

func TestReconciliationService_Run_MalformedResultIsInvalid(t *testing.T) {
	t.Parallel()

	fixture := newReconcileFixture([]scoring.Record{{ID: "Broken-GP_u-alice", EventID: "Broken-GP", TeamKey: "u-alice", TotalPoints: 1}})
	require.NoError(t, fixture.results.UpsertResult(context.Background(), race.Result{EventID: "Broken-GP", TopSix: []string{"norris", "norris"}}))

	report, err := fixture.service(ReconciliationConfig{}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.InvalidCount)
}

func TestReconciliationService_Run_CapsPersistedMismatches(t *testing.T) {
	t.Parallel()

	seeded := memory.SeedScores()
	records := corrupt(seeded, scoring.RecordID(memory.EventAustralia, memory.UserBruno), 2)
	records = corrupt(records, scoring.RecordID(memory.EventChina, memory.UserChen), -3)
	records = corrupt(records, scoring.RecordID(memory.EventChinaSprint, memory.UserChen), 5)

	fixture := newReconcileFixture(records)
	report, err := fixture.service(ReconciliationConfig{MismatchCap: 2}).Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, report.Mismatches, 3)
	assert.Equal(t, 3, report.Summary.MismatchCount)

	saved, ok, err := fixture.audit.LatestReport(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, saved.Mismatches, 2)
	assert.Equal(t, 3, saved.Summary.MismatchCount)
}

func TestReconciliationService_Run_CancelledPersistsNothing(t *testing.T) {
	t.Parallel()

	fixture := newReconcileFixture(memory.SeedScores())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fixture.service(ReconciliationConfig{}).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fixture.audit.Reports())
}

func TestReconciliationService_Run_LoadFailureIsFatal(t *testing.T) {
	t.Parallel()

	loadErr := errors.New("scores collection unavailable")
	resultRepo := racemock.NewRepository(t)
	scoreRepo := scoringmock.NewRepository(t)
	predictionRepo := predictionmock.NewRepository(t)
	auditRepo := reconciliationmock.NewAuditRepository(t)

	resultRepo.On("ListResults", mock.Anything).Return(memory.SeedResults(), nil).Maybe()
	predictionRepo.On("ListPredictions", mock.Anything).Return([]prediction.Prediction{}, nil).Maybe()
	scoreRepo.On("ListScores", mock.Anything).Return(nil, loadErr).Once()

	service := NewReconciliationService(resultRepo, scoreRepo, predictionRepo, auditRepo, nil, nil, nil, nil, ReconciliationConfig{})
	_, err := service.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
	assert.ErrorIs(t, err, loadErr)
	assert.Contains(t, err.Error(), "load scores")
	assert.NotErrorIs(t, err, ErrReportNotPersisted)
	auditRepo.AssertNotCalled(t, "SaveReport", mock.Anything, mock.Anything)
}

func TestReconciliationService_Run_AuditFailureReturnsReport(t *testing.T) {
	t.Parallel()

	fixture := newReconcileFixture(memory.SeedScores())
	auditRepo := reconciliationmock.NewAuditRepository(t)
	saveErr := errors.New("audit_logs write refused")
	auditRepo.On("SaveReport", mock.Anything, mock.AnythingOfType("reconciliation.Report")).Return(saveErr).Once()

	service := NewReconciliationService(fixture.results, fixture.scores, fixture.predictions, auditRepo, nil, nil, nil, nil, ReconciliationConfig{})
	report, err := service.Run(context.Background())

	require.ErrorIs(t, err, saveErr)
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
	assert.ErrorIs(t, err, ErrReportNotPersisted)
	assert.Equal(t, 9, report.Summary.MatchCount)
}

func TestReconciliationService_LatestReport(t *testing.T) {
	t.Parallel()

	fixture := newReconcileFixture(memory.SeedScores())
	service := fixture.service(ReconciliationConfig{})

	_, err := service.LatestReport(context.Background())
	require.ErrorIs(t, err, ErrNotFound)

	report, err := service.Run(context.Background())
	require.NoError(t, err)

	latest, err := service.LatestReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.ID, latest.ID)
}

func TestNormalizeReconcileWorkerCount(t *testing.T) {
	t.Parallel()

	cases := []struct{ value, tasks, want int }{
		{value: 0, tasks: 10, want: defaultReconcileWorkers},
		{value: 8, tasks: 3, want: 3},
		{value: 2, tasks: 0, want: 1},
		{value: -1, tasks: 2, want: 2},
	}
	for _, tc := range cases {
		if got := normalizeReconcileWorkerCount(tc.value, tc.tasks); got != tc.want {
			t.Fatalf("normalizeReconcileWorkerCount(%d, %d) = %d, want %d", tc.value, tc.tasks, got, tc.want)
		}
	}
}
