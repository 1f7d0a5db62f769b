package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/triaged/internal/analytics"
	"github.com/fyrsmithlabs/triaged/internal/calibrate"
	"github.com/fyrsmithlabs/triaged/internal/detectors"
	"github.com/fyrsmithlabs/triaged/internal/extraction"
	"github.com/fyrsmithlabs/triaged/internal/followup"
	"github.com/fyrsmithlabs/triaged/internal/logging"
	"github.com/fyrsmithlabs/triaged/internal/pipeline"
	"github.com/fyrsmithlabs/triaged/internal/triage"
)

func newTestServer(t *testing.T, cfg *Config) (*Server, *analytics.Service) {
	t.Helper()

	svc := analytics.NewService()
	pipe := pipeline.NewPipeline(
		extraction.NewExtractor(),
		triage.NewEngine(),
		calibrate.NewCalibrator(),
		followup.NewSelector(),
		logging.NewNop(),
		pipeline.WithDetectors(detectors.All()...),
		pipeline.WithRecorder(svc),
	)

	s, err := NewServer(pipe, svc, logging.NewNop(), cfg)
	require.NoError(t, err)
	return s, svc
}

func doJSON(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestNewServer_RequiresCollaborators(t *testing.T) {
	_, err := NewServer(nil, analytics.NewService(), logging.NewNop(), nil)
	assert.Error(t, err)

	svc := analytics.NewService()
	pipe := pipeline.NewPipeline(
		extraction.NewExtractor(), triage.NewEngine(),
		calibrate.NewCalibrator(), followup.NewSelector(), logging.NewNop(),
	)
	_, err = NewServer(pipe, nil, logging.NewNop(), nil)
	assert.Error(t, err)
	_, err = NewServer(pipe, svc, nil, nil)
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := doJSON(s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := doJSON(s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAnalyze(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := doJSON(s, http.MethodPost, "/api/v1/analyze",
		`{"text": "severe chest pain and shortness of breath"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result pipeline.Context
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotNil(t, result.Triage)
	assert.Equal(t, "EMERGENCY", result.Triage.Level.String())
	assert.True(t, result.Triage.HighRisk)
}

func TestAnalyze_EmptyTextRejected(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := doJSON(s, http.MethodPost, "/api/v1/analyze", `{"text": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedback(t *testing.T) {
	s, svc := newTestServer(t, nil)
	rec := doJSON(s, http.MethodPost, "/api/v1/feedback",
		`{"query_type": "symptom_check", "urgency": "URGENT", "rating": 8}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	snap := svc.Dashboard()
	assert.Contains(t, snap.Metrics, "symptom_check|URGENT")
}

func TestFeedback_ValidatesRating(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := doJSON(s, http.MethodPost, "/api/v1/feedback",
		`{"query_type": "symptom_check", "rating": 11}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(s, http.MethodPost, "/api/v1/feedback", `{"rating": 5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedback_RateLimited(t *testing.T) {
	s, _ := newTestServer(t, &Config{
		Host: "127.0.0.1", Port: 8087,
		FeedbackRPS: 0.001, FeedbackBurst: 1,
	})

	body := `{"query_type": "q", "rating": 8}`
	rec := doJSON(s, http.MethodPost, "/api/v1/feedback", body)
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = doJSON(s, http.MethodPost, "/api/v1/feedback", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestDashboard(t *testing.T) {
	s, svc := newTestServer(t, nil)
	svc.RecordFeedback(analytics.Feedback{QueryType: "q", Rating: 9})

	rec := doJSON(s, http.MethodGet, "/api/v1/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap analytics.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.EqualValues(t, 1, snap.TotalFeedback)
}
