package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/triaged/internal/cache"
	"github.com/fyrsmithlabs/triaged/internal/calibrate"
	"github.com/fyrsmithlabs/triaged/internal/detectors"
	"github.com/fyrsmithlabs/triaged/internal/extraction"
	"github.com/fyrsmithlabs/triaged/internal/followup"
	"github.com/fyrsmithlabs/triaged/internal/logging"
	"github.com/fyrsmithlabs/triaged/internal/pipeline"
	"github.com/fyrsmithlabs/triaged/internal/triage"
)

func newPipeline(t *testing.T, opts ...pipeline.PipelineOption) *pipeline.Pipeline {
	t.Helper()
	return pipeline.NewPipeline(
		extraction.NewExtractor(),
		triage.NewEngine(),
		calibrate.NewCalibrator(),
		followup.NewSelector(),
		logging.NewNop(),
		opts...,
	)
}

func TestRun_BenignSymptomCheck(t *testing.T) {
	p := newPipeline(t, pipeline.WithDetectors(detectors.All()...))
	c := p.Run(context.Background(), "I've had a headache for 3 days", nil)

	require.NotNil(t, c.Intent)
	assert.Equal(t, pipeline.IntentSymptomCheck, c.Intent.Type)

	require.NotEmpty(t, c.Symptoms)
	assert.Equal(t, "headache", c.Symptoms[0].Name)
	assert.Equal(t, pipeline.LocationHead, c.Symptoms[0].Location)
	require.NotNil(t, c.Symptoms[0].Duration)

	require.NotNil(t, c.Triage)
	assert.Equal(t, pipeline.LevelNonUrgent, c.Triage.Level)
	assert.NotEmpty(t, c.FollowUps)
	assert.NotZero(t, c.Metadata.ProcessingTime)
}

func TestRun_EmergencyPresentation(t *testing.T) {
	p := newPipeline(t, pipeline.WithDetectors(detectors.All()...))
	c := p.Run(context.Background(), "severe chest pain and shortness of breath", nil)

	require.NotNil(t, c.Triage)
	assert.Equal(t, pipeline.LevelEmergency, c.Triage.Level)
	assert.True(t, c.Triage.HighRisk)
	assert.Contains(t, c.Triage.SymptomNames, "chest pain")
}

func TestRun_EmptyInputIsSafe(t *testing.T) {
	p := newPipeline(t)
	c := p.Run(context.Background(), "", nil)

	require.NotNil(t, c.Triage)
	assert.Equal(t, pipeline.LevelNonUrgent, c.Triage.Level)
	assert.False(t, c.Triage.HighRisk)
	assert.Empty(t, c.Symptoms)
}

func TestRun_DemographicCalibrationRaisesLevel(t *testing.T) {
	age := 80
	p := newPipeline(t, pipeline.WithDetectors(detectors.All()...))
	c := p.Run(context.Background(), "I keep having palpitations",
		&pipeline.Demographics{Age: &age})

	require.NotNil(t, c.Triage)
	// Arrhythmia alone is URGENT; the elderly cardiovascular multiplier
	// pushes it over the EMERGENCY threshold.
	assert.Equal(t, pipeline.LevelEmergency, c.Triage.Level)
	assert.Contains(t, c.Triage.Reasons, "demographic risk calibration")
}

type panickyDetector struct{}

func (panickyDetector) Name() string { return "panicky" }
func (panickyDetector) Detect(string, *pipeline.Demographics) pipeline.Match {
	panic("boom")
}

func TestRun_DetectorPanicIsRecovered(t *testing.T) {
	p := newPipeline(t, pipeline.WithDetectors(panickyDetector{}))

	var c *pipeline.Context
	require.NotPanics(t, func() {
		c = p.Run(context.Background(), "I have a mild headache", nil)
	})
	require.NotNil(t, c.Triage)
	assert.Equal(t, pipeline.LevelNonUrgent, c.Triage.Level)
}

type countingExtractor struct {
	inner pipeline.Extractor
	calls int
}

func (e *countingExtractor) Extract(text string) pipeline.Extraction {
	e.calls++
	return e.inner.Extract(text)
}

func TestRun_CacheSkipsRepeatExtraction(t *testing.T) {
	ext := &countingExtractor{inner: extraction.NewExtractor()}
	extCache := cache.New()
	t.Cleanup(extCache.Close)

	p := pipeline.NewPipeline(
		ext,
		triage.NewEngine(),
		calibrate.NewCalibrator(),
		followup.NewSelector(),
		logging.NewNop(),
		pipeline.WithCache(extCache),
	)

	p.Run(context.Background(), "I have a fever", nil)
	p.Run(context.Background(), "I have a fever", nil)
	p.Run(context.Background(), "  i HAVE a fever  ", nil)

	assert.Equal(t, 1, ext.calls, "normalized repeats should hit the cache")
}

type countingRecorder struct {
	turns []pipeline.TriageLevel
}

func (r *countingRecorder) RecordTurn(_ string, level pipeline.TriageLevel, _ time.Duration) {
	r.turns = append(r.turns, level)
}

func TestRun_RecorderObservesTurns(t *testing.T) {
	rec := &countingRecorder{}
	p := newPipeline(t, pipeline.WithRecorder(rec))

	p.Run(context.Background(), "I can't breathe", nil)

	require.Len(t, rec.turns, 1)
	assert.Equal(t, pipeline.LevelEmergency, rec.turns[0])
}

func TestRun_MonotonicAcrossStages(t *testing.T) {
	// No stage after triage may lower the level, whatever the input.
	inputs := []string{
		"severe chest pain and shortness of breath",
		"mild rash on my arm",
		"chest pain",
		"I want to die",
	}
	age := 25
	p := newPipeline(t, pipeline.WithDetectors(detectors.All()...))

	for _, in := range inputs {
		base := p.Run(context.Background(), in, nil)
		calibrated := p.Run(context.Background(), in, &pipeline.Demographics{Age: &age})
		require.NotNil(t, base.Triage)
		require.NotNil(t, calibrated.Triage)
		assert.GreaterOrEqual(t, int(calibrated.Triage.Level), int(base.Triage.Level), "input %q", in)
	}
}
