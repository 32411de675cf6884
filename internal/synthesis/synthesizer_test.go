package synthesis

import (
	"math"
	"testing"

	"github.com/ZanzyTHEbar/teamsynth/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bigFive(o, c, e, a, n float64) *scoring.Result {
	return &scoring.Result{
		Framework: scoring.BigFive,
		Dimensions: map[string]float64{
			Openness:          o,
			Conscientiousness: c,
			Extraversion:      e,
			Agreeableness:     a,
			Neuroticism:       n,
		},
	}
}

func TestSynthesize_EmptyBundleIsDefault(t *testing.T) {
	s := NewSynthesizer(nil)

	first := s.Synthesize(Bundle{})
	second := s.Synthesize(nil)

	assert.True(t, first.Fallback)
	assert.Equal(t, first, second)

	p := first.Value
	for _, dim := range BigFive {
		assert.Equal(t, 0.5, p.Dimension(dim))
	}
	assert.Equal(t, 0.3, p.Confidence)
	assert.Equal(t, MethodDefault, p.SynthesisMethod)
	assert.Empty(t, p.FrameworksUsed)
	assert.Equal(t, Analytical, p.CommunicationStyle)
	assert.Equal(t, []string{"focused_work", "minimal_interruptions"}, p.WorkPreferences)
}

func TestSynthesize_BigFiveOnly(t *testing.T) {
	out := NewSynthesizer(nil).Synthesize(Bundle{
		scoring.BigFive: bigFive(0.8, 0.7, 0.6, 0.9, 0.2),
	})
	require.False(t, out.Fallback)

	p := out.Value
	assert.InDelta(t, 0.59, p.Openness, 1e-9)
	assert.InDelta(t, 0.56, p.Conscientiousness, 1e-9)
	assert.InDelta(t, 0.53, p.Extraversion, 1e-9)
	assert.InDelta(t, 0.62, p.Agreeableness, 1e-9)
	assert.InDelta(t, 0.41, p.Neuroticism, 1e-9)

	// extraversion 0.53 is not above 0.6
	assert.Equal(t, Analytical, p.CommunicationStyle)
	assert.InDelta(t, 0.6, p.Confidence, 1e-9)
	assert.Equal(t, []string{"big_five"}, p.FrameworksUsed)
	assert.Equal(t, MethodWeighted, p.SynthesisMethod)

	assert.InDelta(t, 0.3*0.53+0.25*0.56+0.2*0.59+0.15*0.62+0.1*0.59, p.LeadershipPotential, 1e-9)
	assert.InDelta(t, 0.4*0.62+0.3*0.53+0.2*0.59+0.1*0.59, p.CollaborationIndex, 1e-9)
	assert.InDelta(t, 0.5*0.59+0.3*0.56+0.2*0.53, p.StressTolerance, 1e-9)
	assert.InDelta(t, 0.4*0.59+0.3*0.59+0.2*0.53+0.1*0.44, p.Adaptability, 1e-9)
}

func TestSynthesize_BlendOrderFollowsWeightTable(t *testing.T) {
	out := NewSynthesizer(nil).Synthesize(Bundle{
		scoring.MBTI:    {Framework: scoring.MBTI, Label: "ENFJ"},
		scoring.BigFive: bigFive(0.8, 0.8, 0.8, 0.8, 0.8),
	})
	require.False(t, out.Fallback)

	// big_five first: 0.5*0.7+0.8*0.3 = 0.59, then mbti E: 0.59*0.75+0.75*0.25
	assert.InDelta(t, 0.59*0.75+0.75*0.25, out.Value.Extraversion, 1e-9)
	// neuroticism has no MBTI source
	assert.InDelta(t, 0.59, out.Value.Neuroticism, 1e-9)
	assert.Equal(t, []string{"big_five", "mbti"}, out.Value.FrameworksUsed)
	assert.InDelta(t, 0.8, out.Value.Confidence, 1e-9)
}

func TestSynthesize_MBTILabelDerivedFromDimensions(t *testing.T) {
	out := NewSynthesizer(nil).Synthesize(Bundle{
		scoring.MBTI: {
			Framework:  scoring.MBTI,
			Dimensions: map[string]float64{"E": 0.2, "I": 0.8, "S": 0.9, "N": 0.1, "T": 0.4, "F": 0.6, "J": 0.7, "P": 0.3},
		},
	})
	require.False(t, out.Fallback)

	// ISFJ
	assert.InDelta(t, 0.5*0.75+0.25*0.25, out.Value.Extraversion, 1e-9)
	assert.InDelta(t, 0.5*0.75+0.3*0.25, out.Value.Openness, 1e-9)
	assert.InDelta(t, 0.5*0.75+0.7*0.25, out.Value.Agreeableness, 1e-9)
	assert.InDelta(t, 0.5*0.75+0.7*0.25, out.Value.Conscientiousness, 1e-9)
}

func TestSynthesize_Confidence(t *testing.T) {
	tests := []struct {
		name   string
		bundle Bundle
		want   float64
	}{
		{
			name:   "inert framework without core penalty",
			bundle: Bundle{scoring.Enneagram: {}},
			want:   0.3,
		},
		{
			name:   "predictive index only",
			bundle: Bundle{scoring.PredictiveIndex: {}},
			want:   0.4,
		},
		{
			name:   "unknown frameworks still count",
			bundle: Bundle{scoring.BigFive: bigFive(0.5, 0.5, 0.5, 0.5, 0.5), "astrology": {}},
			want:   0.7,
		},
		{
			name: "capped at 0.95",
			bundle: Bundle{
				scoring.BigFive:         bigFive(0.5, 0.5, 0.5, 0.5, 0.5),
				scoring.MBTI:            {Label: "INTJ"},
				scoring.PredictiveIndex: {},
				scoring.Strengths:       {},
			},
			want: 0.95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewSynthesizer(nil).Synthesize(tt.bundle)
			require.False(t, out.Fallback)
			assert.InDelta(t, tt.want, out.Value.Confidence, 1e-9)
		})
	}
}

func TestSynthesize_FrameworksUsedOrder(t *testing.T) {
	out := NewSynthesizer(nil).Synthesize(Bundle{
		scoring.SocialStyles: {},
		scoring.DISC:         {},
		scoring.Strengths:    {},
		scoring.BigFive:      bigFive(0.5, 0.5, 0.5, 0.5, 0.5),
	})
	assert.Equal(t, []string{"big_five", "strengths", "disc", "social_styles"}, out.Value.FrameworksUsed)
}

func TestSynthesize_NonFiniteFallsBack(t *testing.T) {
	out := NewSynthesizer(nil).Synthesize(Bundle{
		scoring.BigFive: bigFive(math.NaN(), 0.5, 0.5, 0.5, 0.5),
	})
	assert.True(t, out.Fallback)
	assert.Equal(t, DefaultProfile(), out.Value)
	assert.Contains(t, out.Reason, "openness")
}

func TestCommunicationStyle(t *testing.T) {
	tests := []struct {
		e, a float64
		want CommunicationStyle
	}{
		{0.7, 0.7, Collaborative},
		{0.7, 0.3, Assertive},
		{0.3, 0.7, Supportive},
		{0.7, 0.5, Analytical},
		{0.6, 0.6, Analytical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, communicationStyle(tt.e, tt.a))
	}
}

func TestFromDimensions_Bounds(t *testing.T) {
	for _, v := range []float64{0, 1} {
		p := FromDimensions(map[string]float64{
			Openness: v, Conscientiousness: v, Extraversion: v, Agreeableness: v, Neuroticism: 1 - v,
		})
		for _, trait := range []float64{p.LeadershipPotential, p.CollaborationIndex, p.StressTolerance, p.Adaptability} {
			assert.GreaterOrEqual(t, trait, 0.0)
			assert.LessOrEqual(t, trait, 1.0)
		}
	}

	p := FromDimensions(map[string]float64{Openness: 0.9, Conscientiousness: 0.9, Extraversion: 0.9})
	assert.Equal(t, []string{
		"creative_projects", "innovation",
		"structured_environment", "clear_deadlines",
		"team_collaboration", "public_speaking",
	}, p.WorkPreferences)
}
