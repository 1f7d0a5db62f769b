package calibrate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fyrsmithlabs/triaged/internal/pipeline"
)

func intp(v int) *int { return &v }

func TestCalibrate_NoDemographicsIsIdentity(t *testing.T) {
	out := NewCalibrator().Calibrate("possible heart failure", pipeline.Demographics{}, pipeline.LevelUrgent)
	assert.Equal(t, pipeline.LevelUrgent, out.AdjustedLevel)
	assert.InDelta(t, 1.0, out.RiskMultiplier, 1e-9)
	assert.Empty(t, out.Considerations)
}

func TestCalibrate_ElderlyCardiacEscalatesUrgentToEmergency(t *testing.T) {
	demo := pipeline.Demographics{Age: intp(75)}
	out := NewCalibrator().Calibrate("suspected acute coronary syndrome", demo, pipeline.LevelUrgent)
	assert.InDelta(t, 2.0, out.RiskMultiplier, 1e-9)
	assert.Equal(t, pipeline.LevelEmergency, out.AdjustedLevel)
}

func TestCalibrate_MiddleAgedCardiacStaysUrgent(t *testing.T) {
	demo := pipeline.Demographics{Age: intp(45)}
	out := NewCalibrator().Calibrate("arrhythmia", demo, pipeline.LevelUrgent)
	assert.InDelta(t, 1.2, out.RiskMultiplier, 1e-9)
	assert.Equal(t, pipeline.LevelUrgent, out.AdjustedLevel)
}

func TestCalibrate_ElderlyCardiacRaisesNonUrgentOneStep(t *testing.T) {
	// 2.0 clears both thresholds, but escalation moves at most one step
	// per calibration pass.
	demo := pipeline.Demographics{Age: intp(80)}
	out := NewCalibrator().Calibrate("cardiac concern", demo, pipeline.LevelNonUrgent)
	assert.Equal(t, pipeline.LevelUrgent, out.AdjustedLevel)
}

func TestCalibrate_NeverDowngrades(t *testing.T) {
	demo := pipeline.Demographics{Age: intp(30)}
	out := NewCalibrator().Calibrate("arrhythmia", demo, pipeline.LevelEmergency)
	assert.Equal(t, pipeline.LevelEmergency, out.AdjustedLevel)
}

func TestCalibrate_SexConsiderationsAreAdvisoryOnly(t *testing.T) {
	demo := pipeline.Demographics{Age: intp(30), Sex: pipeline.SexFemale}
	out := NewCalibrator().Calibrate("chest discomfort", demo, pipeline.LevelUrgent)
	assert.NotEmpty(t, out.Considerations)
	assert.InDelta(t, 1.0, out.RiskMultiplier, 1e-9)
	assert.Equal(t, pipeline.LevelUrgent, out.AdjustedLevel)
}

func TestCalibrate_SocioeconomicOnlyWhenNonUrgent(t *testing.T) {
	demo := pipeline.Demographics{Socioeconomic: []string{"no insurance"}}

	base := NewCalibrator().Calibrate("general concern", demo, pipeline.LevelNonUrgent)
	assert.InDelta(t, 1.3, base.RiskMultiplier, 1e-9)
	assert.NotEmpty(t, base.Recommendations)

	urgent := NewCalibrator().Calibrate("general concern", demo, pipeline.LevelUrgent)
	assert.InDelta(t, 1.0, urgent.RiskMultiplier, 1e-9)
	assert.Empty(t, urgent.Recommendations)
}

func TestCalibrate_SocioeconomicFactorsCompose(t *testing.T) {
	demo := pipeline.Demographics{Socioeconomic: []string{"no insurance", "no transportation"}}
	out := NewCalibrator().Calibrate("general concern", demo, pipeline.LevelNonUrgent)
	// 1.3 * 1.2 crosses the URGENT threshold.
	assert.InDelta(t, 1.56, out.RiskMultiplier, 1e-9)
	assert.Equal(t, pipeline.LevelUrgent, out.AdjustedLevel)
	assert.Len(t, out.Recommendations, 2)
}

func TestCalibrate_YoungAdultMentalHealth(t *testing.T) {
	demo := pipeline.Demographics{Age: intp(19), Sex: pipeline.SexMale}
	out := NewCalibrator().Calibrate("possible depression", demo, pipeline.LevelNonUrgent)
	assert.InDelta(t, 1.5, out.RiskMultiplier, 1e-9)
	assert.Equal(t, pipeline.LevelUrgent, out.AdjustedLevel)
	assert.NotEmpty(t, out.Considerations)
}

func TestCategoryFor(t *testing.T) {
	assert.Equal(t, categoryCardiovascular, categoryFor("suspected acute coronary syndrome"))
	assert.Equal(t, categoryNeurological, categoryFor("acute confusion"))
	assert.Equal(t, categoryMentalHealth, categoryFor("suicidal ideation"))
	assert.Equal(t, categoryGeneralHealth, categoryFor("pediatric fever"))
	assert.Equal(t, categoryGeneralHealth, categoryFor(""))
}
