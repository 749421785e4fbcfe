package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lotogen/app"
	"lotogen/domain/filter"
	"lotogen/domain/run"
	"lotogen/internal"
	"lotogen/internal/config"
	"lotogen/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *testkit.TestKit) {
	t.Helper()
	return newTestServerPersist(t, true)
}

func newTestServerPersist(t *testing.T, persist bool) (*Server, *testkit.TestKit) {
	t.Helper()
	kit := testkit.NewTestKit()
	corpus, err := kit.SyntheticCorpus(80, 3)
	require.NoError(t, err)
	loader := &testkit.StaticCorpusLoader{Corpus: corpus}
	logger := internal.NewLogger(internal.LogLevelError)

	defaults := config.GeneratorConfig{
		TargetCount: 3,
		MaxAttempts: 50000,
		Workers:     1,
		Seed:        11,
		SeedSet:     true,
		Deduplicate: true,
		CheckEvery:  256,
		Timeout:     10 * time.Second,
	}
	s := NewServer(Deps{
		Generation: app.NewGenerationService(loader, kit.RunRepository(), kit.RNGAdapter(), logger),
		Stats:      app.NewStatsService(loader, logger),
		Defaults:   defaults,
		Persist:    persist,
		Logger:     logger,
	})
	return s, kit
}

func do(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestStats(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/stats?window=20", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report app.StatsReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Equal(t, 20, report.Summary.Draws)

	rec = do(t, s, http.MethodGet, "/api/stats?window=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeriveFilter(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/filter/derive?low=5&high=95", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cfg filter.Config
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cfg))
	assert.NoError(t, cfg.Validate())
}

func TestGenerate_PersistsAndCanBeFetched(t *testing.T) {
	s, kit := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/generate", GenerateBody{TargetCount: 2, Rank: true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result app.GenerateResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Len(t, result.Games, 2)
	assert.True(t, result.Persisted)
	assert.Equal(t, int64(11), result.Fingerprint.Seed)
	assert.Equal(t, 1, kit.RunRepository().Count())

	rec = do(t, s, http.MethodGet, "/api/runs/"+result.RunID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var stored run.Run
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stored))
	assert.Len(t, stored.Games, 2)

	rec = do(t, s, http.MethodGet, "/api/runs?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []run.Summary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, result.RunID, list[0].ID)
}

func TestGenerate_PersistOptOut(t *testing.T) {
	s, kit := newTestServer(t)
	no := false

	rec := do(t, s, http.MethodPost, "/api/generate", GenerateBody{TargetCount: 1, Persist: &no})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 0, kit.RunRepository().Count())
}

func TestGenerate_FilterOverrides(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/generate", GenerateBody{
		TargetCount: 2,
		FilterBase:  "open",
		Filter:      map[string][]int{"pares": {7, 7}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result app.GenerateResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	for _, g := range result.Games {
		assert.Equal(t, 7, g.Stats.Pares)
	}
}

func TestGenerate_InvalidFilterIsBadRequest(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/generate", GenerateBody{
		Filter: map[string][]int{"soma": {300, 100}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Error)
	assert.NotEmpty(t, resp.Code)
}

func TestGenerate_MalformedBody(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "INVALID_INPUT", resp.Code)
	assert.Contains(t, resp.Error, "malformed body")
}

func TestGenerate_PersistWithoutDatabase(t *testing.T) {
	s, _ := newTestServerPersist(t, false)

	yes := true
	rec := do(t, s, http.MethodPost, "/api/generate", GenerateBody{TargetCount: 1, Persist: &yes})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "INVALID_INPUT", resp.Code)
	assert.Contains(t, resp.Error, "no database")

	// omitted persist falls back to the server default
	rec = do(t, s, http.MethodPost, "/api/generate", GenerateBody{TargetCount: 1})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result app.GenerateResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.False(t, result.Persisted)
}

func TestGenerate_UnknownFilterBase(t *testing.T) {
	s, _ := newTestServer(t)

	for _, base := range []string{"weird", "OPEN", "none"} {
		rec := do(t, s, http.MethodPost, "/api/generate", GenerateBody{TargetCount: 1, FilterBase: base})
		assert.Equal(t, http.StatusBadRequest, rec.Code, base)
	}
	rec := do(t, s, http.MethodPost, "/api/generate", GenerateBody{TargetCount: 1, FilterBase: "open"})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestGetRun_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/runs/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/runs/0190b3f0-0000-7000-8000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEvaluate(t *testing.T) {
	s, kit := newTestServer(t)
	ctx := context.Background()

	rec := do(t, s, http.MethodPost, "/api/generate", GenerateBody{TargetCount: 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result app.GenerateResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))

	stored, err := kit.RunRepository().GetRun(ctx, result.RunID)
	require.NoError(t, err)
	first := stored.Games[0].Numbers.Numbers()

	rec = do(t, s, http.MethodPost, "/api/runs/"+result.RunID.String()+"/evaluate", EvaluateBody{Numbers: first})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var eval EvaluateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&eval))
	require.Len(t, eval.Hits, 2)
	assert.Equal(t, 15, eval.Hits[0])
	assert.Equal(t, 15, eval.Best)

	rec = do(t, s, http.MethodPost, "/api/runs/"+result.RunID.String()+"/evaluate", EvaluateBody{Numbers: []int{1, 2, 3}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
