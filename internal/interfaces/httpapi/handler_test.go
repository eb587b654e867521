package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/prix-six/internal/domain/reconciliation"
	"github.com/riskibarqy/prix-six/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/prix-six/internal/platform/logging"
	"github.com/riskibarqy/prix-six/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJobToken = "job-secret"

type testEnvelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func newTestRouter(t *testing.T, jobToken string) http.Handler {
	t.Helper()

	results := memory.NewResultRepository(memory.SeedResults())
	scores := memory.NewScoreRepository(memory.SeedScores())
	predictions := memory.NewPredictionRepository(memory.SeedAccounts(), memory.SeedSubmissions())
	audit := memory.NewAuditRepository()

	scoringSvc := usecase.NewScoringService(results, scores, predictions, nil, time.Minute, logging.NewNop())
	reconcileSvc := usecase.NewReconciliationService(results, scores, predictions, audit, nil, nil, nil, logging.NewNop(), usecase.ReconciliationConfig{})

	return NewRouter(NewHandler(scoringSvc, reconcileSvc, logging.NewNop()), logging.NewNop(), jobToken)
}

func serve(router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()

	var out testEnvelope[T]
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHandler_Healthz(t *testing.T) {
	rec := serve(newTestRouter(t, testJobToken), http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_PreviewScore(t *testing.T) {
	router := newTestRouter(t, testJobToken)

	rec := serve(router, http.MethodPost, "/v1/scores/preview",
		`{"order":["VER","Lando Norris","81","leclerc","Hamilton","russell"],"topSix":["verstappen","norris","piastri","leclerc","hamilton","russell"]}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeEnvelope[scoreOutcomeDTO](t, rec)
	assert.Equal(t, 46, body.Data.TotalPoints)
	assert.Equal(t, 6, body.Data.CorrectCount)
	assert.True(t, body.Data.Bonus)
	assert.Len(t, body.Data.Lines, 7)
	assert.True(t, strings.HasSuffix(body.Data.Breakdown, "BonusAll6+10"), body.Data.Breakdown)
}

func TestHandler_PreviewScore_RejectsInvalidPayload(t *testing.T) {
	router := newTestRouter(t, testJobToken)

	tests := []struct {
		name string
		body string
	}{
		{name: "five drivers", body: `{"order":["a","b","c","d","e"],"topSix":["a","b","c","d","e","f"]}`},
		{name: "unknown field", body: `{"order":[],"topSix":[],"extra":true}`},
		{name: "not json", body: `order=verstappen`},
		{name: "duplicate driver", body: `{"order":["verstappen","verstappen","piastri","leclerc","hamilton","russell"],"topSix":["verstappen","norris","piastri","leclerc","hamilton","russell"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, http.MethodPost, "/v1/scores/preview", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_ListStandings(t *testing.T) {
	rec := serve(newTestRouter(t, testJobToken), http.MethodGet, "/v1/standings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope[[]usecase.Standing](t, rec)
	require.NotEmpty(t, body.Data)
	assert.Equal(t, 1, body.Data[0].Rank)
	for i := 1; i < len(body.Data); i++ {
		assert.GreaterOrEqual(t, body.Data[i-1].TotalPoints, body.Data[i].TotalPoints)
	}
}

func TestHandler_InternalRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t, testJobToken)

	rec := serve(router, http.MethodPost, "/v1/internal/reconciliation/runs", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(router, http.MethodPost, "/v1/internal/reconciliation/runs", "", map[string]string{internalJobTokenHeader: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	unconfigured := newTestRouter(t, "")
	rec = serve(unconfigured, http.MethodPost, "/v1/internal/reconciliation/runs", "", map[string]string{internalJobTokenHeader: testJobToken})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandler_ReconciliationRunAndLatest(t *testing.T) {
	router := newTestRouter(t, testJobToken)
	auth := map[string]string{internalJobTokenHeader: testJobToken}

	rec := serve(router, http.MethodGet, "/v1/internal/reconciliation/runs/latest", "", auth)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(router, http.MethodPost, "/v1/internal/reconciliation/runs", "", auth)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	run := decodeEnvelope[reconciliationRunDTO](t, rec)
	assert.True(t, run.Data.Persisted)
	assert.Equal(t, reconciliation.ReportTypeFullCrossCheck, run.Data.Report.Type)
	assert.Equal(t, 9, run.Data.Report.Summary.MatchCount)
	assert.Equal(t, 1, run.Data.Report.Summary.Skipped)
	assert.Empty(t, run.Data.Report.Mismatches)

	rec = serve(router, http.MethodGet, "/v1/internal/reconciliation/runs/latest", "", auth)
	require.Equal(t, http.StatusOK, rec.Code)

	latest := decodeEnvelope[reconciliation.Report](t, rec)
	assert.Equal(t, run.Data.Report.ID, latest.Data.ID)
}

func TestHandler_ScoreEvent(t *testing.T) {
	router := newTestRouter(t, testJobToken)
	auth := map[string]string{internalJobTokenHeader: testJobToken}

	rec := serve(router, http.MethodPost, "/v1/internal/events/"+memory.EventAustralia+"/rescore", "", auth)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeEnvelope[usecase.ScoreEventResult](t, rec)
	assert.Equal(t, memory.EventAustralia, body.Data.EventID)
	assert.Equal(t, 3, body.Data.Scored)

	rec = serve(router, http.MethodPost, "/v1/internal/events/Las-Vegas-Grand-Prix/score", "", auth)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
