package analytics

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fyrsmithlabs/triaged/internal/pipeline"
)

// Defaults for the analytics service.
const (
	DefaultAlpha       = 0.1
	DefaultRingSize    = 1000
	successRatingFloor = 7
)

// Query is one recorded pipeline turn.
type Query struct {
	TurnID       uuid.UUID
	Type         string
	Urgency      pipeline.TriageLevel
	ResponseTime time.Duration
	At           time.Time
}

// Feedback is one user rating for a past turn. Rating runs 1 to 10; a
// rating at or above 7 counts as a successful interaction.
type Feedback struct {
	QueryType    string
	Urgency      pipeline.TriageLevel
	Rating       int
	Improvements []string
	At           time.Time
}

// Metric holds the learned averages for one (query type, urgency) pair.
// Satisfaction, Accuracy and SuccessRate are exponential moving
// averages; SampleCount is the number of feedback submissions folded in.
type Metric struct {
	Satisfaction float64       `json:"satisfaction"`
	Accuracy     float64       `json:"accuracy"`
	ResponseTime time.Duration `json:"response_time"`
	SuccessRate  float64       `json:"success_rate"`
	SampleCount  int64         `json:"sample_count"`
}

// Snapshot is the dashboard view of the service's state.
type Snapshot struct {
	Metrics       map[string]Metric `json:"metrics"`
	TotalQueries  int64             `json:"total_queries"`
	TotalFeedback int64             `json:"total_feedback"`
	GeneratedAt   time.Time         `json:"generated_at"`
}

// Report is the output of Analyze over a recent window.
type Report struct {
	Window          time.Duration  `json:"window"`
	QueryCount      int            `json:"query_count"`
	FeedbackCount   int            `json:"feedback_count"`
	ByUrgency       map[string]int `json:"by_urgency"`
	ByType          map[string]int `json:"by_type"`
	AvgResponseTime time.Duration  `json:"avg_response_time"`
	AvgSatisfaction float64        `json:"avg_satisfaction"`
	Recommendations []string       `json:"recommendations,omitempty"`
	Improvements    map[string]int `json:"improvement_mentions,omitempty"`
}

// Service learns per-query-type quality metrics from recorded turns and
// feedback. All methods are safe for concurrent use. The recent-entry
// rings are bounded; the oldest entry is dropped when a ring is full.
type Service struct {
	mu       sync.RWMutex
	alpha    float64
	ringSize int

	metrics  map[string]*Metric
	queries  []Query
	feedback []Feedback

	totalQueries  int64
	totalFeedback int64
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithAlpha overrides the EMA smoothing factor.
func WithAlpha(a float64) ServiceOption {
	return func(s *Service) {
		if a > 0 && a <= 1 {
			s.alpha = a
		}
	}
}

// WithRingSize bounds the recent-entry rings.
func WithRingSize(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.ringSize = n
		}
	}
}

// NewService creates an analytics service.
func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		alpha:    DefaultAlpha,
		ringSize: DefaultRingSize,
		metrics:  make(map[string]*Metric),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// metricKey joins query type and urgency into the metrics map key.
func metricKey(queryType string, urgency pipeline.TriageLevel) string {
	return queryType + "|" + urgency.String()
}

// RecordQuery folds one completed turn into the response-time average
// for its (type, urgency) pair.
func (s *Service) RecordQuery(q Query) {
	if q.At.IsZero() {
		q.At = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.metric(metricKey(q.Type, q.Urgency))
	m.ResponseTime = time.Duration(s.ema(float64(m.ResponseTime), float64(q.ResponseTime)))

	s.queries = appendBounded(s.queries, q, s.ringSize)
	s.totalQueries++
	Prom().QueriesRecorded.WithLabelValues(q.Type, q.Urgency.String()).Inc()
}

// RecordTurn implements pipeline.Recorder.
func (s *Service) RecordTurn(queryType string, level pipeline.TriageLevel, took time.Duration) {
	s.RecordQuery(Query{
		TurnID:       uuid.New(),
		Type:         queryType,
		Urgency:      level,
		ResponseTime: took,
	})
}

// RecordFeedback folds one rating into the satisfaction, accuracy and
// success-rate averages for its (type, urgency) pair. Ratings outside
// 1..10 are clamped.
func (s *Service) RecordFeedback(f Feedback) {
	if f.At.IsZero() {
		f.At = time.Now()
	}
	if f.Rating < 1 {
		f.Rating = 1
	}
	if f.Rating > 10 {
		f.Rating = 10
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	success := 0.0
	if f.Rating >= successRatingFloor {
		success = 1.0
	}

	m := s.metric(metricKey(f.QueryType, f.Urgency))
	m.Satisfaction = s.ema(m.Satisfaction, float64(f.Rating))
	m.Accuracy = s.ema(m.Accuracy, float64(f.Rating)/10)
	m.SuccessRate = s.ema(m.SuccessRate, success)
	m.SampleCount++

	s.feedback = appendBounded(s.feedback, f, s.ringSize)
	s.totalFeedback++
	Prom().FeedbackReceived.WithLabelValues(f.QueryType, strconv.FormatBool(success == 1)).Inc()
}

// Analyze summarizes the entries recorded within the window and derives
// advisory recommendations. The recommendations never feed back into
// triage; they exist for operators reading the dashboard.
func (s *Service) Analyze(window time.Duration) Report {
	cutoff := time.Now().Add(-window)

	s.mu.RLock()
	defer s.mu.RUnlock()

	r := Report{
		Window:    window,
		ByUrgency: map[string]int{},
		ByType:    map[string]int{},
	}

	var totalResponse time.Duration
	for _, q := range s.queries {
		if q.At.Before(cutoff) {
			continue
		}
		r.QueryCount++
		r.ByUrgency[q.Urgency.String()]++
		r.ByType[q.Type]++
		totalResponse += q.ResponseTime
	}
	if r.QueryCount > 0 {
		r.AvgResponseTime = totalResponse / time.Duration(r.QueryCount)
	}

	var totalRating int
	improvements := map[string]int{}
	for _, f := range s.feedback {
		if f.At.Before(cutoff) {
			continue
		}
		r.FeedbackCount++
		totalRating += f.Rating
		for _, imp := range f.Improvements {
			improvements[imp]++
		}
	}
	if r.FeedbackCount > 0 {
		r.AvgSatisfaction = float64(totalRating) / float64(r.FeedbackCount)
	}
	if len(improvements) > 0 {
		r.Improvements = improvements
	}

	if r.QueryCount > 0 && r.AvgResponseTime > time.Second {
		r.Recommendations = append(r.Recommendations,
			fmt.Sprintf("average response time %s exceeds 1s; consider raising the extraction cache TTL", r.AvgResponseTime.Round(time.Millisecond)))
	}
	if r.FeedbackCount > 0 && r.AvgSatisfaction < float64(successRatingFloor) {
		r.Recommendations = append(r.Recommendations,
			fmt.Sprintf("average satisfaction %.1f is below %d; review follow-up question templates for the busiest query types", r.AvgSatisfaction, successRatingFloor))
	}

	return r
}

// Dashboard returns a copy of the current learned metrics.
func (s *Service) Dashboard() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := Snapshot{
		Metrics:       make(map[string]Metric, len(s.metrics)),
		TotalQueries:  s.totalQueries,
		TotalFeedback: s.totalFeedback,
		GeneratedAt:   time.Now(),
	}
	for key, m := range s.metrics {
		out.Metrics[key] = *m
	}
	return out
}

// Reset discards all learned metrics and recent entries.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = make(map[string]*Metric)
	s.queries = nil
	s.feedback = nil
	s.totalQueries = 0
	s.totalFeedback = 0
}

// metric returns the entry for key, creating it at zero. Caller holds
// s.mu.
func (s *Service) metric(key string) *Metric {
	m, ok := s.metrics[key]
	if !ok {
		m = &Metric{}
		s.metrics[key] = m
	}
	return m
}

// ema moves current a step of alpha toward value.
func (s *Service) ema(current, value float64) float64 {
	return (1-s.alpha)*current + s.alpha*value
}

// appendBounded appends to a ring-bounded slice, dropping the oldest
// entry when full.
func appendBounded[T any](ring []T, v T, max int) []T {
	ring = append(ring, v)
	if len(ring) > max {
		copy(ring, ring[1:])
		ring = ring[:len(ring)-1]
	}
	return ring
}
