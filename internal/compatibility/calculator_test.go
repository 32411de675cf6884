package compatibility

import (
	"testing"

	"github.com/ZanzyTHEbar/teamsynth/internal/synthesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profile(o, c, e, a, n float64) synthesis.Profile {
	return synthesis.FromDimensions(map[string]float64{
		synthesis.Openness:          o,
		synthesis.Conscientiousness: c,
		synthesis.Extraversion:      e,
		synthesis.Agreeableness:     a,
		synthesis.Neuroticism:       n,
	})
}

func TestCalculate_Symmetric(t *testing.T) {
	profiles := []synthesis.Profile{
		profile(0.8, 0.7, 0.6, 0.9, 0.2),
		profile(0.2, 0.3, 0.9, 0.1, 0.8),
		profile(0.5, 0.5, 0.5, 0.5, 0.5),
		profile(0.9, 0.9, 0.2, 0.8, 0.1),
		synthesis.DefaultProfile(),
	}

	calc := NewCalculator(nil)
	for i := range profiles {
		for j := range profiles {
			ab := calc.Calculate(profiles[i], profiles[j])
			ba := calc.Calculate(profiles[j], profiles[i])
			require.False(t, ab.Fallback)
			assert.Equal(t, ab.Value, ba.Value, "pair %d,%d", i, j)
			assert.GreaterOrEqual(t, ab.Value.Score, 0.0)
			assert.LessOrEqual(t, ab.Value.Score, 1.0)
		}
	}
}

func TestBigFiveScore_IdenticalAgreeableCalmProfiles(t *testing.T) {
	p := profile(0.7, 0.6, 0.8, 0.9, 0.1)

	// agreeableness 0.9, neuroticism 0.9, conscientiousness 1.0, openness 0.7, extraversion 0.8
	got := BigFiveScore(p, p)
	assert.InDelta(t, (0.9+0.9+1.0+0.7+0.8)/5, got, 1e-9)
	assert.Greater(t, got, 0.85)
}

func TestBigFiveScore_TermsClamped(t *testing.T) {
	a := profile(1, 0, 1, 0, 1)
	b := profile(0, 1, 0, 0, 1)

	// openness and extraversion: 0.5 - 0.3 = 0.2; conscientiousness 0; agreeableness 0; neuroticism 0
	assert.InDelta(t, 0.4/5, BigFiveScore(a, b), 1e-9)
}

func TestWorkStyleScore(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"either empty", nil, []string{"focused_work"}, 0.6},
		{"both empty", []string{}, []string{}, 0.6},
		{"identical", []string{"x", "y"}, []string{"y", "x"}, 1.0},
		{"disjoint", []string{"x"}, []string{"y"}, 0.0},
		{"partial overlap", []string{"x", "y"}, []string{"y", "z"}, 0.5},
		{"duplicates ignored", []string{"x", "x", "y"}, []string{"y", "z", "z", "w"}, 1.5 / 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WorkStyleScore(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.want, WorkStyleScore(tt.b, tt.a), 1e-9)
		})
	}
}

func TestCommunicationScore(t *testing.T) {
	tests := []struct {
		a, b synthesis.CommunicationStyle
		want float64
	}{
		{synthesis.Collaborative, synthesis.Collaborative, 0.9},
		{synthesis.Supportive, synthesis.Collaborative, 0.85},
		{synthesis.Analytical, synthesis.Assertive, 0.65},
		{synthesis.Assertive, synthesis.Assertive, 0.5},
		{synthesis.Analytical, "", 0.6},
		{"unknown", "other", 0.6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CommunicationScore(tt.a, tt.b))
		assert.Equal(t, tt.want, CommunicationScore(tt.b, tt.a))
	}
}

func TestCalculate_Weighting(t *testing.T) {
	p := profile(0.5, 0.5, 0.5, 0.5, 0.5)
	out := NewCalculator(nil).Calculate(p, p)
	require.False(t, out.Fallback)

	// big five: a 0.5, n 0.5, c 1.0, o 0.5, e 0.5 -> 0.6; identical preferences; analytical pair
	assert.InDelta(t, 0.6, out.Value.BigFive, 1e-9)
	assert.InDelta(t, 1.0, out.Value.WorkStyle, 1e-9)
	assert.InDelta(t, 0.8, out.Value.Communication, 1e-9)
	assert.InDelta(t, 0.5*0.6+0.3*1.0+0.2*0.8, out.Value.Score, 1e-9)
}
