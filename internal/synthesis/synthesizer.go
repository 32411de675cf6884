package synthesis

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/ZanzyTHEbar/teamsynth/internal/errors"
	"github.com/ZanzyTHEbar/teamsynth/internal/outcome"
	"github.com/ZanzyTHEbar/teamsynth/internal/scoring"
	"github.com/ZanzyTHEbar/teamsynth/internal/stats"
)

// FrameworkWeight is one row of the blending table.
type FrameworkWeight struct {
	Framework scoring.Framework
	Weight    float64
}

// Weights is the blending table in application order. Each framework blends
// into the already-updated dimensions, so order matters.
var Weights = []FrameworkWeight{
	{scoring.BigFive, 0.3},
	{scoring.MBTI, 0.25},
	{scoring.Enneagram, 0.2},
	{scoring.PredictiveIndex, 0.15},
	{scoring.Strengths, 0.1},
}

const (
	defaultConfidence  = 0.3
	baseConfidence     = 0.4
	perFramework       = 0.1
	coreBonus          = 0.1
	missingCorePenalty = 0.2
	maxConfidence      = 0.95
	minConfidence      = 0.1
)

// mbtiLetterValues maps each MBTI letter to the Big Five dimension it informs.
var mbtiLetterValues = map[byte]struct {
	dim   string
	value float64
}{
	'E': {Extraversion, 0.75},
	'I': {Extraversion, 0.25},
	'N': {Openness, 0.7},
	'S': {Openness, 0.3},
	'F': {Agreeableness, 0.7},
	'T': {Agreeableness, 0.3},
	'J': {Conscientiousness, 0.7},
	'P': {Conscientiousness, 0.3},
}

// Synthesizer combines framework results into a unified profile.
type Synthesizer struct {
	logger *slog.Logger
}

// NewSynthesizer creates a synthesizer. A nil logger uses slog.Default().
func NewSynthesizer(logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{logger: logger}
}

// Synthesize blends the bundle into a profile. It never fails: an empty
// bundle or an internal fault yields the default profile marked as fallback.
func (s *Synthesizer) Synthesize(bundle Bundle) (out outcome.Outcome[Profile]) {
	if len(bundle) == 0 {
		return outcome.Fallback(DefaultProfile(), "no assessments provided")
	}

	errors.SafeExecute(func() {
		p, err := s.weighted(bundle)
		if err != nil {
			s.logger.Warn("Synthesis fell back to default profile", "error", err)
			out = outcome.Fallback(DefaultProfile(), err.Error())
			return
		}
		out = outcome.Computed(p)
	}, func(r interface{}) {
		s.logger.Warn("Synthesis panicked, using default profile", "panic", r)
		out = outcome.Fallback(DefaultProfile(), fmt.Sprintf("synthesis panicked: %v", r))
	})
	return out
}

func (s *Synthesizer) weighted(bundle Bundle) (Profile, error) {
	dims := map[string]float64{
		Openness:          0.5,
		Conscientiousness: 0.5,
		Extraversion:      0.5,
		Agreeableness:     0.5,
		Neuroticism:       0.5,
	}

	for _, fw := range Weights {
		res, ok := bundle[fw.Framework]
		if !ok {
			continue
		}
		for dim, v := range sourceValues(fw.Framework, res) {
			dims[dim] = dims[dim]*(1-fw.Weight) + v*fw.Weight
		}
	}

	for dim, v := range dims {
		if !stats.Finite(v) {
			return Profile{}, fmt.Errorf("dimension %s is not finite", dim)
		}
	}

	p := FromDimensions(dims)
	p.FrameworksUsed = frameworksUsed(bundle)
	p.Confidence = confidence(bundle, len(p.FrameworksUsed))
	p.SynthesisMethod = MethodWeighted

	s.logger.Debug("Profile synthesized",
		"frameworks", p.FrameworksUsed,
		"confidence", p.Confidence,
	)
	return p, nil
}

// sourceValues extracts the Big Five values a framework contributes. Frameworks
// without a mapping contribute nothing.
func sourceValues(f scoring.Framework, res *scoring.Result) map[string]float64 {
	if res == nil {
		return nil
	}
	switch f {
	case scoring.BigFive:
		out := make(map[string]float64, len(BigFive))
		for _, dim := range BigFive {
			out[dim] = res.Dimension(dim)
		}
		return out
	case scoring.MBTI:
		label := res.Label
		if len(label) != 4 {
			label = scoring.DetermineType(res.Dimensions)
		}
		out := make(map[string]float64, 4)
		for i := 0; i < len(label); i++ {
			if lv, ok := mbtiLetterValues[upper(label[i])]; ok {
				out[lv.dim] = lv.value
			}
		}
		return out
	default:
		return nil
	}
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// frameworksUsed lists weighted frameworks in table order, then the rest alphabetically.
func frameworksUsed(bundle Bundle) []string {
	used := make([]string, 0, len(bundle))
	seen := make(map[scoring.Framework]bool, len(bundle))
	for _, fw := range Weights {
		if _, ok := bundle[fw.Framework]; ok {
			used = append(used, string(fw.Framework))
			seen[fw.Framework] = true
		}
	}

	var rest []string
	for f := range bundle {
		if !seen[f] {
			rest = append(rest, string(f))
		}
	}
	sort.Strings(rest)
	return append(used, rest...)
}

func confidence(bundle Bundle, count int) float64 {
	conf := baseConfidence + perFramework*float64(count)

	for _, f := range []scoring.Framework{scoring.BigFive, scoring.MBTI, scoring.PredictiveIndex} {
		if _, ok := bundle[f]; ok {
			conf += coreBonus
		}
	}
	_, hasBigFive := bundle[scoring.BigFive]
	_, hasMBTI := bundle[scoring.MBTI]
	if !hasBigFive && !hasMBTI {
		conf -= missingCorePenalty
	}

	return math.Max(minConfidence, math.Min(maxConfidence, conf))
}
