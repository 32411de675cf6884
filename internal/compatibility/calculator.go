// Package compatibility scores how well two unified profiles are likely to
// work together.
package compatibility

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/ZanzyTHEbar/teamsynth/internal/errors"
	"github.com/ZanzyTHEbar/teamsynth/internal/outcome"
	"github.com/ZanzyTHEbar/teamsynth/internal/stats"
	"github.com/ZanzyTHEbar/teamsynth/internal/synthesis"
)

// Component weights of the final score.
const (
	BigFiveWeight       = 0.5
	WorkStyleWeight     = 0.3
	CommunicationWeight = 0.2
)

const (
	neutralScore         = 0.5
	emptyPreferenceScore = 0.6
	unknownPairScore     = 0.6
	overlapScale         = 1.5
	differencePenalty    = 0.3
)

// Score is a pairwise compatibility and its weighted components.
type Score struct {
	Score         float64 `json:"score"`
	BigFive       float64 `json:"big_five"`
	WorkStyle     float64 `json:"work_style"`
	Communication float64 `json:"communication"`
}

type stylePair struct {
	a, b synthesis.CommunicationStyle
}

// communicationScores lists each unordered pair once.
var communicationScores = map[stylePair]float64{
	{synthesis.Collaborative, synthesis.Collaborative}: 0.9,
	{synthesis.Collaborative, synthesis.Supportive}:    0.85,
	{synthesis.Collaborative, synthesis.Analytical}:    0.7,
	{synthesis.Collaborative, synthesis.Assertive}:     0.6,
	{synthesis.Assertive, synthesis.Assertive}:         0.5,
	{synthesis.Assertive, synthesis.Supportive}:        0.7,
	{synthesis.Assertive, synthesis.Analytical}:        0.65,
	{synthesis.Supportive, synthesis.Supportive}:       0.8,
	{synthesis.Supportive, synthesis.Analytical}:       0.75,
	{synthesis.Analytical, synthesis.Analytical}:       0.8,
}

// Calculator computes pairwise compatibility. It holds no mutable state and
// is safe for concurrent use.
type Calculator struct {
	logger *slog.Logger
}

// NewCalculator creates a calculator. A nil logger uses slog.Default().
func NewCalculator(logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{logger: logger}
}

// Calculate scores a pair of profiles. The result is symmetric in a and b. An
// internal fault yields a neutral 0.5 marked as fallback.
func (c *Calculator) Calculate(a, b synthesis.Profile) (out outcome.Outcome[Score]) {
	errors.SafeExecute(func() {
		s := Score{
			BigFive:       BigFiveScore(a, b),
			WorkStyle:     WorkStyleScore(a.WorkPreferences, b.WorkPreferences),
			Communication: CommunicationScore(a.CommunicationStyle, b.CommunicationStyle),
		}
		total := BigFiveWeight*s.BigFive + WorkStyleWeight*s.WorkStyle + CommunicationWeight*s.Communication
		if !stats.Finite(total) {
			out = c.fallback("compatibility is not finite")
			return
		}
		s.Score = stats.Unit(total)
		out = outcome.Computed(s)
	}, func(r interface{}) {
		out = c.fallback(fmt.Sprintf("compatibility panicked: %v", r))
	})
	return out
}

func (c *Calculator) fallback(reason string) outcome.Outcome[Score] {
	c.logger.Warn("Compatibility fell back to neutral score", "reason", reason)
	return outcome.Fallback(Score{
		Score:         neutralScore,
		BigFive:       neutralScore,
		WorkStyle:     neutralScore,
		Communication: neutralScore,
	}, reason)
}

// BigFiveScore averages one clamped term per dimension.
func BigFiveScore(a, b synthesis.Profile) float64 {
	terms := []float64{
		(a.Agreeableness + b.Agreeableness) / 2,
		1 - (a.Neuroticism+b.Neuroticism)/2,
		1 - math.Abs(a.Conscientiousness-b.Conscientiousness),
		levelMinusGap(a.Openness, b.Openness),
		levelMinusGap(a.Extraversion, b.Extraversion),
	}
	for i, t := range terms {
		terms[i] = stats.Unit(t)
	}
	return stats.Mean(terms)
}

func levelMinusGap(x, y float64) float64 {
	return (x+y)/2 - differencePenalty*math.Abs(x-y)
}

// WorkStyleScore is the scaled Jaccard overlap of two preference sets, or
// 0.6 when either set is empty.
func WorkStyleScore(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return emptyPreferenceScore
	}

	setA := make(map[string]bool, len(a))
	for _, p := range a {
		setA[p] = true
	}
	union := make(map[string]bool, len(a)+len(b))
	for p := range setA {
		union[p] = true
	}

	intersection := 0
	seenB := make(map[string]bool, len(b))
	for _, p := range b {
		if seenB[p] {
			continue
		}
		seenB[p] = true
		union[p] = true
		if setA[p] {
			intersection++
		}
	}

	return math.Min(1, float64(intersection)/float64(len(union))*overlapScale)
}

// CommunicationScore looks an unordered style pair up in the fixed table.
func CommunicationScore(a, b synthesis.CommunicationStyle) float64 {
	if v, ok := communicationScores[stylePair{a, b}]; ok {
		return v
	}
	if v, ok := communicationScores[stylePair{b, a}]; ok {
		return v
	}
	return unknownPairScore
}
