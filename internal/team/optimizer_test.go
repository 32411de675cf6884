package team

import (
	"fmt"
	"testing"

	"github.com/ZanzyTHEbar/teamsynth/internal/synthesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func member(id string, o, c, e, a, n float64) Member {
	return Member{
		ID: id,
		Profile: synthesis.FromDimensions(map[string]float64{
			synthesis.Openness:          o,
			synthesis.Conscientiousness: c,
			synthesis.Extraversion:      e,
			synthesis.Agreeableness:     a,
			synthesis.Neuroticism:       n,
		}),
	}
}

func TestOptimize_EmptyRoster(t *testing.T) {
	out := NewOptimizer(nil, nil).Optimize(nil, nil, nil)
	require.False(t, out.Fallback)

	r := out.Value
	assert.Equal(t, 0, r.TeamSize)
	assert.Empty(t, r.Matrix)
	assert.Equal(t, 0.0, r.OverallScore)
	assert.Equal(t, 0.0, r.AverageCompatibility)
	assert.Empty(t, r.ConflictPairs)
	assert.Equal(t, EmptyReport(), r)
}

func TestOptimize_MatrixShape(t *testing.T) {
	members := []Member{
		member("a", 0.8, 0.7, 0.6, 0.9, 0.2),
		member("b", 0.2, 0.3, 0.9, 0.1, 0.8),
		member("c", 0.5, 0.5, 0.5, 0.5, 0.5),
		member("d", 0.9, 0.9, 0.2, 0.8, 0.1),
	}

	out := NewOptimizer(nil, nil).Optimize(members, map[string]any{"deadline": "q3"}, []string{"velocity"})
	require.False(t, out.Fallback)

	r := out.Value
	require.Len(t, r.Matrix, 4)
	for i := range r.Matrix {
		require.Len(t, r.Matrix[i], 4)
		assert.Equal(t, 1.0, r.Matrix[i][i])
		for j := range r.Matrix {
			assert.Equal(t, r.Matrix[i][j], r.Matrix[j][i])
			assert.GreaterOrEqual(t, r.Matrix[i][j], 0.0)
			assert.LessOrEqual(t, r.Matrix[i][j], 1.0)
		}
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, r.MemberIDs)
	assert.Equal(t, []string{"velocity"}, r.Goals)
	assert.Equal(t, "q3", r.Requirements["deadline"])

	assert.InDelta(t, 0.4*r.AverageCompatibility+0.3*r.Diversity+0.3*r.Balance, r.OverallScore, 1e-9)
	assert.InDelta(t, 20*r.AverageCompatibility, r.Performance.PredictedVelocity, 1e-9)
	assert.InDelta(t, 1-r.AverageCompatibility, r.Performance.ConflictProbability, 1e-9)
}

func TestOptimize_SingleMember(t *testing.T) {
	out := NewOptimizer(nil, nil).Optimize([]Member{member("solo", 0.5, 0.5, 0.5, 0.5, 0.5)}, nil, nil)
	require.False(t, out.Fallback)

	r := out.Value
	assert.Equal(t, [][]float64{{1.0}}, r.Matrix)
	assert.Equal(t, 1.0, r.AverageCompatibility)
	assert.Equal(t, 0.0, r.Diversity)
	assert.Equal(t, TrendIncreasing, r.Performance.Trend)
	assert.Equal(t, []string{"Balanced team composition"}, r.Strengths)
	assert.Equal(t, []string{"No significant weaknesses identified"}, r.Weaknesses)
	assert.Empty(t, r.Recommendations)
}

func TestDiversity(t *testing.T) {
	members := []Member{
		member("a", 0, 0, 0, 0, 0),
		member("b", 1, 1, 1, 1, 1),
	}
	assert.InDelta(t, 0.5, Diversity(members), 1e-9)
	assert.Equal(t, 0.0, Diversity(members[:1]))
}

func TestBalance(t *testing.T) {
	m := member("a", 0.5, 0.5, 0.5, 0.5, 0.5)
	m.Profile.LeadershipPotential = 0.6
	m.Profile.CollaborationIndex = 0.7
	assert.InDelta(t, 1.0, Balance([]Member{m}), 1e-9)

	m.Profile.LeadershipPotential = 0.1
	m.Profile.CollaborationIndex = 0.2
	assert.InDelta(t, 0.5, Balance([]Member{m}), 1e-9)
}

func TestConflictPairs(t *testing.T) {
	ids := []string{"a", "b", "c"}
	matrix := [][]float64{
		{1, 0.1, 0.25},
		{0.1, 1, 0.3},
		{0.25, 0.3, 1},
	}

	pairs := conflictPairs(ids, matrix)
	require.Len(t, pairs, 2)
	assert.Equal(t, ConflictPair{MemberA: "a", MemberB: "b", Compatibility: 0.1, RiskLevel: RiskHigh}, pairs[0])
	assert.Equal(t, ConflictPair{MemberA: "a", MemberB: "c", Compatibility: 0.25, RiskLevel: RiskMedium}, pairs[1])

	recs := recommendations(pairs)
	require.Len(t, recs, 1)
	assert.Equal(t, "conflict_resolution", recs[0].Type)
	assert.Len(t, recs[0].Pairs, 2)
}

func TestStrengthsAndWeaknesses(t *testing.T) {
	strong := member("a", 0.9, 0.9, 0.9, 0.9, 0.1)
	strengths, weaknesses := strengthsAndWeaknesses([]Member{strong})
	assert.Equal(t, []string{
		"Strong leadership potential",
		"Excellent collaboration skills",
		"High adaptability to change",
	}, strengths)
	assert.Equal(t, []string{defaultWeakness}, weaknesses)

	fragile := member("b", 0.5, 0.1, 0.1, 0.5, 0.9)
	_, weaknesses = strengthsAndWeaknesses([]Member{fragile})
	assert.Equal(t, []string{"May struggle under high-pressure situations"}, weaknesses)
}

func TestFallbackReport(t *testing.T) {
	r := FallbackReport(3)
	assert.Equal(t, 3, r.TeamSize)
	assert.Equal(t, 0.6, r.OverallScore)
	assert.Equal(t, 0.6, r.AverageCompatibility)
	assert.Equal(t, 0.6, r.Diversity)
	assert.Equal(t, 0.6, r.Balance)
	assert.InDelta(t, 12, r.Performance.PredictedVelocity, 1e-9)
	assert.InDelta(t, 0.4, r.Performance.ConflictProbability, 1e-9)
	assert.Equal(t, TrendStable, r.Performance.Trend)
}

func BenchmarkOptimizer_Matrix(b *testing.B) {
	sizes := []int{5, 20, 50}
	for _, size := range sizes {
		members := make([]Member, size)
		for i := range members {
			v := float64(i%10) / 10
			members[i] = member(fmt.Sprintf("m%d", i), v, 1-v, v, 0.5, 1-v)
		}
		opt := NewOptimizer(nil, nil)

		b.Run(fmt.Sprintf("members_%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				opt.Matrix(members)
			}
		})
	}
}
