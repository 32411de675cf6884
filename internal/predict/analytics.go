// Package predict forecasts team performance, conflict, satisfaction and
// velocity from member profiles.
package predict

import (
	"fmt"
	"log/slog"

	"github.com/ZanzyTHEbar/teamsynth/internal/errors"
	"github.com/ZanzyTHEbar/teamsynth/internal/outcome"
	"github.com/ZanzyTHEbar/teamsynth/internal/stats"
	"github.com/ZanzyTHEbar/teamsynth/internal/synthesis"
)

// Prediction types.
const (
	TypeAll          = "all"
	TypePerformance  = "performance"
	TypeConflict     = "conflict"
	TypeSatisfaction = "satisfaction"
	TypeVelocity     = "velocity"
	TypeGeneral      = "general"
)

// Assessment keys read from member data.
const (
	UnifiedProfileKey = "unified_profile"
	BigFiveKey        = "big_five"
)

// Feature names extracted per member.
var Features = []string{
	synthesis.Openness,
	synthesis.Conscientiousness,
	synthesis.Extraversion,
	synthesis.Agreeableness,
	synthesis.Neuroticism,
	"leadership_potential",
	"collaboration_index",
	"stress_tolerance",
	"adaptability",
}

const (
	defaultFeature     = 0.5
	fallbackConfidence = 0.3
	fallbackMessage    = "Insufficient data for detailed predictions; collect assessments for every team member"
)

// MemberData is the behavioral input for one team member.
type MemberData struct {
	MemberID    string                    `json:"member_id"`
	Assessments map[string]map[string]any `json:"assessments"`
}

// FromProfile wraps a synthesized profile as member data.
func FromProfile(memberID string, p synthesis.Profile) MemberData {
	return MemberData{
		MemberID: memberID,
		Assessments: map[string]map[string]any{
			UnifiedProfileKey: {
				synthesis.Openness:          p.Openness,
				synthesis.Conscientiousness: p.Conscientiousness,
				synthesis.Extraversion:      p.Extraversion,
				synthesis.Agreeableness:     p.Agreeableness,
				synthesis.Neuroticism:       p.Neuroticism,
				"leadership_potential":      p.LeadershipPotential,
				"collaboration_index":       p.CollaborationIndex,
				"stress_tolerance":          p.StressTolerance,
				"adaptability":              p.Adaptability,
			},
		},
	}
}

// Range is the reported interval around a velocity estimate.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Prediction is one forecast.
type Prediction struct {
	Type            string   `json:"type"`
	Score           float64  `json:"score"`
	Level           string   `json:"level,omitempty"`
	Confidence      float64  `json:"confidence"`
	Drivers         []string `json:"drivers"`
	Recommendations []string `json:"recommendations"`
	Range           *Range   `json:"range,omitempty"`
	Message         string   `json:"message,omitempty"`
}

// Analytics generates predictions. It holds no mutable state.
type Analytics struct {
	logger *slog.Logger
}

// NewAnalytics creates the predictor set. A nil logger uses slog.Default().
func NewAnalytics(logger *slog.Logger) *Analytics {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analytics{logger: logger}
}

// FallbackPrediction is the general prediction returned without usable data.
func FallbackPrediction() Prediction {
	return Prediction{
		Type:            TypeGeneral,
		Confidence:      fallbackConfidence,
		Message:         fallbackMessage,
		Drivers:         []string{},
		Recommendations: []string{"Complete personality assessments for all team members"},
	}
}

// Predict runs the predictors selected by predictionType ("" means all). An
// unknown type yields no predictions. It never fails: empty input yields the
// general fallback, and a fault appends the fallback to whatever was already
// produced.
func (a *Analytics) Predict(data []MemberData, predictionType string) (out outcome.Outcome[[]Prediction]) {
	if len(data) == 0 {
		return outcome.Fallback([]Prediction{FallbackPrediction()}, "no behavioral data")
	}
	if predictionType == "" {
		predictionType = TypeAll
	}

	predictions := []Prediction{}
	errors.SafeExecute(func() {
		f := teamFeatures(data)
		if !stats.Finite(f.values()...) {
			a.logger.Warn("Prediction fell back", "reason", "non-finite features", "members", len(data))
			out = outcome.Fallback([]Prediction{FallbackPrediction()}, "non-finite features")
			return
		}
		want := func(t string) bool { return predictionType == TypeAll || predictionType == t }

		if want(TypePerformance) {
			predictions = append(predictions, performance(f))
		}
		if want(TypeConflict) {
			predictions = append(predictions, conflict(f))
		}
		if want(TypeSatisfaction) {
			predictions = append(predictions, satisfaction(f))
		}
		if want(TypeVelocity) {
			predictions = append(predictions, velocity(f, len(data)))
		}
		out = outcome.Computed(predictions)
	}, func(r interface{}) {
		a.logger.Warn("Prediction fell back", "panic", r, "partial", len(predictions))
		out = outcome.Fallback(append(predictions, FallbackPrediction()), fmt.Sprintf("prediction panicked: %v", r))
	})
	return out
}

// features are team averages of the nine member features.
type features map[string]float64

func (f features) values() []float64 {
	out := make([]float64, 0, len(f))
	for _, v := range f {
		out = append(out, v)
	}
	return out
}

// memberFeatures prefers the unified profile and falls back to raw Big Five
// scores. Anything missing reads as 0.5.
func memberFeatures(m MemberData) features {
	f := make(features, len(Features))
	for _, name := range Features {
		f[name] = defaultFeature
	}

	source, ok := m.Assessments[UnifiedProfileKey]
	if !ok {
		source = m.Assessments[BigFiveKey]
	}
	for _, name := range Features {
		if v, ok := toFloat(source[name]); ok {
			f[name] = v
		}
	}
	return f
}

func teamFeatures(data []MemberData) features {
	sums := make(map[string][]float64, len(Features))
	for _, m := range data {
		for name, v := range memberFeatures(m) {
			sums[name] = append(sums[name], v)
		}
	}
	f := make(features, len(Features))
	for _, name := range Features {
		f[name] = stats.Mean(sums[name])
	}
	return f
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
