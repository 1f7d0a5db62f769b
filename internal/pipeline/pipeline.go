package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/triaged/internal/logging"
)

// Extraction is the extractor stage's output in pipeline terms.
type Extraction struct {
	Intent        Intent
	Symptoms      []Symptom
	ConditionType string
	BodySystem    string
}

// Extractor turns raw text into an intent and symptoms. Implementations
// must be pure and must tolerate empty or garbage input without error.
type Extractor interface {
	Extract(text string) Extraction
}

// Match is a domain detector's finding. It is ephemeral: produced by a
// detector, folded into the verdict by the triage engine, never stored.
type Match struct {
	Condition     string
	Symptoms      []string
	RiskFactors   []string
	Urgency       TriageLevel
	Complications []string
	FollowUp      []string
	OK            bool
}

// Detector is a specialized symptom-to-condition mapper. Detect must not
// mutate any shared state; a panic inside Detect is recovered by the
// pipeline and treated as no match.
type Detector interface {
	Name() string
	Detect(text string, hint *Demographics) Match
}

// Engine computes the base triage verdict from the context and any
// detector matches.
type Engine interface {
	Evaluate(c *Context, matches []Match) Verdict
}

// Calibration is the demographic calibrator's output.
type Calibration struct {
	AdjustedLevel   TriageLevel
	RiskMultiplier  float64
	Considerations  []string
	Recommendations []string
}

// Calibrator adjusts a base verdict for demographic risk. It composes
// with the engine's invariant: the adjusted level can only be higher.
type Calibrator interface {
	Calibrate(condition string, demo Demographics, base TriageLevel) Calibration
}

// Selector chooses clarifying follow-up questions. extras are candidate
// questions contributed upstream (detector findings); the selector folds
// them into its own de-duplication, ordering, and cap.
type Selector interface {
	Select(conditionType string, level TriageLevel, symptoms []string, age *int, extras ...string) []string
}

// Cache is the subset of the adaptive cache the pipeline uses to avoid
// re-extracting repeated inputs.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, data any, ttl ...time.Duration)
}

// Recorder observes completed turns for the usage-learning loop.
type Recorder interface {
	RecordTurn(queryType string, level TriageLevel, took time.Duration)
}

// Pipeline runs the interpretation and safety-triage stages for one
// user turn. Construct it explicitly with NewPipeline; there is no
// package-level singleton so tests can build isolated instances.
type Pipeline struct {
	extractor  Extractor
	detectors  []Detector
	engine     Engine
	calibrator Calibrator
	selector   Selector
	cache      Cache
	recorder   Recorder
	logger     *logging.Logger
}

// PipelineOption configures optional collaborators.
type PipelineOption func(*Pipeline)

// WithCache enables extraction-result caching.
func WithCache(c Cache) PipelineOption {
	return func(p *Pipeline) { p.cache = c }
}

// WithRecorder enables usage analytics recording.
func WithRecorder(r Recorder) PipelineOption {
	return func(p *Pipeline) { p.recorder = r }
}

// WithDetectors sets the domain condition detectors.
func WithDetectors(ds ...Detector) PipelineOption {
	return func(p *Pipeline) { p.detectors = ds }
}

// NewPipeline wires the stages together. extractor, engine, calibrator
// and selector are required; detectors, cache and recorder are optional.
func NewPipeline(extractor Extractor, engine Engine, calibrator Calibrator, selector Selector, logger *logging.Logger, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		extractor:  extractor,
		engine:     engine,
		calibrator: calibrator,
		selector:   selector,
		logger:     logger.Named("pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one full pipeline pass: extraction, domain detection,
// triage, calibration, follow-up selection. It never panics outward;
// the worst case for any internal failure is the safest default verdict.
// The returned Context is owned by the caller and carries no references
// to pipeline-internal state.
func (p *Pipeline) Run(ctx context.Context, text string, hint *Demographics) *Context {
	start := time.Now()

	c := NewContext(text)
	if hint != nil {
		c.Demographics = *hint
	}

	// Stage 1: extraction (cached for repeated inputs).
	ex := p.extract(text)
	c.Intent = &Intent{Type: ex.Intent.Type, Confidence: ex.Intent.Confidence}
	c.Symptoms = ex.Symptoms
	c.Metadata.IntentConfidence = ex.Intent.Confidence
	c.Metadata.BodySystem = ex.BodySystem
	c.Metadata.ConditionType = ex.ConditionType

	// Stage 2: domain detectors. Each runs behind a recover boundary: a
	// single failed heuristic must not block triage.
	matches := p.runDetectors(ctx, text, &c.Demographics)

	// Stage 3: base triage verdict.
	triageStart := time.Now()
	v := p.engine.Evaluate(c, matches)
	Metrics().ObserveStage("triage", time.Since(triageStart))
	c.Triage = &v

	// Stage 4: demographic calibration, raise-only.
	cond := primaryCondition(matches)
	cal := p.calibrator.Calibrate(cond, c.Demographics, c.Triage.Level)
	adjusted := Escalate(c.Triage.Level, cal.AdjustedLevel)
	if adjusted != c.Triage.Level {
		c.Triage.Level = adjusted
		c.Triage.Reasons = append(c.Triage.Reasons, "demographic risk calibration")
	}
	c.Triage.HighRisk = c.Triage.Level != LevelNonUrgent
	c.Considerations = cal.Considerations
	c.Recommendations = cal.Recommendations

	// Stage 5: follow-up questions. Detector findings contribute their
	// own targeted questions alongside the selector's templates.
	c.FollowUps = p.selector.Select(ex.ConditionType, c.Triage.Level, symptomNames(c.Symptoms), c.Demographics.Age, detectorFollowUps(matches)...)

	c.Metadata.ProcessingTime = time.Since(start)

	Metrics().ObserveTurn(c.Triage.Level.String(), c.Metadata.ProcessingTime)
	if p.recorder != nil {
		p.recorder.RecordTurn(string(c.Intent.Type), c.Triage.Level, c.Metadata.ProcessingTime)
	}

	p.logger.Debug(ctx, "turn processed",
		zap.String("turn_id", c.TurnID.String()),
		zap.String("level", c.Triage.Level.String()),
		zap.Int("symptoms", len(c.Symptoms)),
		zap.Duration("took", c.Metadata.ProcessingTime),
	)

	return c
}

// extract runs extraction behind a cache wrapper. The cache key is a
// digest of the normalized input so trivially repeated turns (retries,
// double-sends) skip the regex pass.
func (p *Pipeline) extract(text string) Extraction {
	key := extractionKey(text)
	if p.cache != nil {
		if v, ok := p.cache.Get(key); ok {
			if ex, ok := v.(Extraction); ok {
				return ex
			}
		}
	}

	start := time.Now()
	ex := p.extractor.Extract(text)
	Metrics().ObserveStage("extract", time.Since(start))

	if p.cache != nil {
		p.cache.Set(key, ex)
	}
	return ex
}

// runDetectors executes every detector behind a recover boundary.
func (p *Pipeline) runDetectors(ctx context.Context, text string, hint *Demographics) []Match {
	matches := make([]Match, 0, len(p.detectors))
	for _, d := range p.detectors {
		m := p.safeDetect(ctx, d, text, hint)
		if m.OK {
			matches = append(matches, m)
		}
	}
	return matches
}

// safeDetect runs a single detector, converting panics into no-match.
func (p *Pipeline) safeDetect(ctx context.Context, d Detector, text string, hint *Demographics) (m Match) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn(ctx, "detector panicked, treated as no match",
				zap.String("detector", d.Name()),
				zap.Any("panic", r),
			)
			m = Match{}
		}
	}()

	start := time.Now()
	m = d.Detect(text, hint)
	Metrics().ObserveStage("detect_"+d.Name(), time.Since(start))
	return m
}

// primaryCondition picks the condition from the most urgent match, so
// calibration keys off the finding that is already driving the verdict.
func primaryCondition(matches []Match) string {
	best := ""
	bestLevel := TriageLevel(-1)
	for _, m := range matches {
		if m.Condition != "" && m.Urgency > bestLevel {
			best = m.Condition
			bestLevel = m.Urgency
		}
	}
	return best
}

// detectorFollowUps flattens the follow-up questions carried by detector
// matches, in match order. De-duplication is the selector's job.
func detectorFollowUps(matches []Match) []string {
	var qs []string
	for _, m := range matches {
		qs = append(qs, m.FollowUp...)
	}
	return qs
}

// symptomNames lists non-negated symptom names in insertion order.
func symptomNames(symptoms []Symptom) []string {
	names := make([]string, 0, len(symptoms))
	for _, s := range symptoms {
		if !s.Negated {
			names = append(names, s.Name)
		}
	}
	return names
}

// extractionKey hashes the normalized input for cache lookup.
func extractionKey(text string) string {
	norm := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	sum := sha256.Sum256([]byte(norm))
	return "extract:" + hex.EncodeToString(sum[:16])
}
