package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/triaged/internal/pipeline"
)

func TestRecordFeedback_FirstSampleMovesAlphaTowardValue(t *testing.T) {
	s := NewService()
	s.RecordFeedback(Feedback{QueryType: "symptom_check", Urgency: pipeline.LevelNonUrgent, Rating: 8})

	snap := s.Dashboard()
	m, ok := snap.Metrics["symptom_check|NON_URGENT"]
	require.True(t, ok)
	assert.InDelta(t, 0.8, m.Satisfaction, 1e-9, "0 + 0.1*(8-0)")
	assert.InDelta(t, 0.1, m.SuccessRate, 1e-9, "rating 8 counts as success")
	assert.EqualValues(t, 1, m.SampleCount)
}

func TestRecordFeedback_RatingSevenIsSuccess(t *testing.T) {
	s := NewService(WithAlpha(1.0))
	s.RecordFeedback(Feedback{QueryType: "q", Rating: 7})

	m := s.Dashboard().Metrics["q|NON_URGENT"]
	assert.InDelta(t, 1.0, m.SuccessRate, 1e-9)

	s.RecordFeedback(Feedback{QueryType: "q", Rating: 6})
	m = s.Dashboard().Metrics["q|NON_URGENT"]
	assert.InDelta(t, 0.0, m.SuccessRate, 1e-9)
}

func TestRecordFeedback_EMAConverges(t *testing.T) {
	s := NewService()
	for i := 0; i < 200; i++ {
		s.RecordFeedback(Feedback{QueryType: "q", Rating: 9})
	}
	m := s.Dashboard().Metrics["q|NON_URGENT"]
	assert.InDelta(t, 9.0, m.Satisfaction, 0.01)
	assert.InDelta(t, 1.0, m.SuccessRate, 0.01)
}

func TestRecordFeedback_ClampsRating(t *testing.T) {
	s := NewService(WithAlpha(1.0))
	s.RecordFeedback(Feedback{QueryType: "q", Rating: 42})
	m := s.Dashboard().Metrics["q|NON_URGENT"]
	assert.InDelta(t, 10.0, m.Satisfaction, 1e-9)
}

func TestRecordQuery_SeparateKeysPerUrgency(t *testing.T) {
	s := NewService()
	s.RecordQuery(Query{Type: "symptom_check", Urgency: pipeline.LevelNonUrgent, ResponseTime: 10 * time.Millisecond})
	s.RecordQuery(Query{Type: "symptom_check", Urgency: pipeline.LevelEmergency, ResponseTime: 10 * time.Millisecond})

	snap := s.Dashboard()
	assert.Contains(t, snap.Metrics, "symptom_check|NON_URGENT")
	assert.Contains(t, snap.Metrics, "symptom_check|EMERGENCY")
	assert.EqualValues(t, 2, snap.TotalQueries)
}

func TestRecordTurn_FeedsQueryMetrics(t *testing.T) {
	s := NewService()
	var _ pipeline.Recorder = s

	s.RecordTurn("emergency", pipeline.LevelEmergency, 5*time.Millisecond)
	assert.EqualValues(t, 1, s.Dashboard().TotalQueries)
}

func TestAnalyze_WindowAndDistributions(t *testing.T) {
	s := NewService()
	old := time.Now().Add(-2 * time.Hour)
	s.RecordQuery(Query{Type: "stale", Urgency: pipeline.LevelNonUrgent, At: old})
	s.RecordQuery(Query{Type: "symptom_check", Urgency: pipeline.LevelUrgent, ResponseTime: 100 * time.Millisecond})
	s.RecordQuery(Query{Type: "symptom_check", Urgency: pipeline.LevelNonUrgent, ResponseTime: 300 * time.Millisecond})

	r := s.Analyze(time.Hour)
	assert.Equal(t, 2, r.QueryCount, "stale entry falls outside the window")
	assert.Equal(t, 2, r.ByType["symptom_check"])
	assert.Equal(t, 1, r.ByUrgency["URGENT"])
	assert.Equal(t, 200*time.Millisecond, r.AvgResponseTime)
	assert.Empty(t, r.Recommendations)
}

func TestAnalyze_SlowResponsesRecommendTuning(t *testing.T) {
	s := NewService()
	s.RecordQuery(Query{Type: "q", ResponseTime: 3 * time.Second})

	r := s.Analyze(time.Hour)
	require.Len(t, r.Recommendations, 1)
	assert.Contains(t, r.Recommendations[0], "response time")
}

func TestAnalyze_LowSatisfactionRecommendsReview(t *testing.T) {
	s := NewService()
	s.RecordFeedback(Feedback{QueryType: "q", Rating: 3, Improvements: []string{"clearer questions"}})

	r := s.Analyze(time.Hour)
	require.NotEmpty(t, r.Recommendations)
	assert.Contains(t, r.Recommendations[0], "satisfaction")
	assert.Equal(t, 1, r.Improvements["clearer questions"])
}

func TestReset(t *testing.T) {
	s := NewService()
	s.RecordQuery(Query{Type: "q"})
	s.RecordFeedback(Feedback{QueryType: "q", Rating: 8})
	s.Reset()

	snap := s.Dashboard()
	assert.Empty(t, snap.Metrics)
	assert.Zero(t, snap.TotalQueries)
	assert.Zero(t, snap.TotalFeedback)
	assert.Zero(t, s.Analyze(time.Hour).QueryCount)
}

func TestRingBounded(t *testing.T) {
	s := NewService(WithRingSize(5))
	for i := 0; i < 20; i++ {
		s.RecordQuery(Query{Type: "q"})
	}
	r := s.Analyze(time.Hour)
	assert.Equal(t, 5, r.QueryCount, "ring drops oldest entries")
	assert.EqualValues(t, 20, s.Dashboard().TotalQueries)
}
