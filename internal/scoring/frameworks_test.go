package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMBTIScorer_Type(t *testing.T) {
	tests := []struct {
		name     string
		answers  AnswerSet
		wantType string
		wantConf float64
	}{
		{
			name: "clear extravert sensing thinking judging",
			answers: answerSet(20, func(i int) any {
				if i%2 == 0 {
					return 5
				}
				return 1
			}),
			wantType: "ESTJ",
			wantConf: 1.0,
		},
		{
			name:     "ties go to the second letter",
			answers:  answerSet(20, constant(3)),
			wantType: "INFP",
			wantConf: 0.9,
		},
		{
			name: "pole letters vote for their pole",
			answers: answerSet(20, func(i int) any {
				return []string{"E", "N", "F", "P"}[i%4]
			}),
			wantType: "ENFP",
			wantConf: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewMBTIScorer().Score(tt.answers)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, res.Label)
			assert.InDelta(t, tt.wantConf, res.Confidence, 1e-9)
			assert.NotEmpty(t, res.Description.Name)
		})
	}
}

func TestDetermineType(t *testing.T) {
	dims := map[string]float64{"E": 0.2, "I": 0.8, "S": 0.6, "N": 0.6, "T": 0.9, "F": 0.1, "J": 0.5}
	// P is missing and reads as 0.5, so J does not win
	assert.Equal(t, "INTP", DetermineType(dims))
}

func TestEnneagramScorer_PrimaryAndWing(t *testing.T) {
	scoresFor := func(byType map[int]int) AnswerSet {
		return answerSet(18, func(i int) any {
			if v, ok := byType[i%9+1]; ok {
				return v
			}
			return 1
		})
	}

	tests := []struct {
		name      string
		answers   AnswerSet
		wantType  int
		wantWing  int
		wantLabel string
		wantConf  float64
	}{
		{
			name:      "type 1 wraps to wing 9",
			answers:   scoresFor(map[int]int{1: 5, 9: 4, 2: 2}),
			wantType:  1,
			wantWing:  9,
			wantLabel: "1w9",
			wantConf:  1.0,
		},
		{
			name:      "type 9 wraps to wing 1",
			answers:   scoresFor(map[int]int{9: 5, 1: 3, 8: 2}),
			wantType:  9,
			wantWing:  1,
			wantLabel: "9w1",
			wantConf:  1.0,
		},
		{
			name:      "close runner-up lowers confidence",
			answers:   scoresFor(map[int]int{4: 5, 5: 5}),
			wantType:  4,
			wantWing:  5,
			wantLabel: "4w5",
			wantConf:  0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewEnneagramScorer().Score(tt.answers)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, res.Type)
			assert.Equal(t, tt.wantWing, res.Wing)
			assert.Equal(t, tt.wantLabel, res.Secondary)
			assert.InDelta(t, tt.wantConf, res.Confidence, 1e-9)
		})
	}
}

func TestEnneagramNeighbors(t *testing.T) {
	tests := []struct {
		typ        int
		prev, next int
	}{
		{1, 9, 2},
		{5, 4, 6},
		{9, 8, 1},
	}
	for _, tt := range tests {
		prev, next := EnneagramNeighbors(tt.typ)
		assert.Equal(t, tt.prev, prev)
		assert.Equal(t, tt.next, next)
	}
}

func TestEnneagramWing_OnlyAdjacent(t *testing.T) {
	dims := map[string]float64{}
	for i := 1; i <= 9; i++ {
		dims[enneagramKey(i)] = float64(i) / 10
	}
	assert.Contains(t, []int{9, 2}, EnneagramWing(1, dims))
	assert.Contains(t, []int{8, 1}, EnneagramWing(9, dims))
	// equal neighbors resolve to the lower type
	assert.Equal(t, 4, EnneagramWing(5, map[string]float64{"type_4": 0.5, "type_6": 0.5}))
}

func TestDISCPattern(t *testing.T) {
	tests := []struct {
		name string
		dims map[string]float64
		want string
	}{
		{"flat profile", map[string]float64{"dominance": 0.5, "influence": 0.52, "steadiness": 0.55, "conscientiousness": 0.5}, "Balanced"},
		{"pure dominance", map[string]float64{"dominance": 0.9, "influence": 0.5, "steadiness": 0.2, "conscientiousness": 0.3}, "Developer"},
		{"dominance with influence", map[string]float64{"dominance": 0.9, "influence": 0.8, "steadiness": 0.2, "conscientiousness": 0.3}, "Result-Oriented"},
		{"influence with steadiness", map[string]float64{"dominance": 0.2, "influence": 0.9, "steadiness": 0.8, "conscientiousness": 0.3}, "Counselor"},
		{"steadiness with influence", map[string]float64{"dominance": 0.2, "influence": 0.8, "steadiness": 0.9, "conscientiousness": 0.3}, "Agent"},
		{"conscientiousness with steadiness", map[string]float64{"dominance": 0.2, "influence": 0.3, "steadiness": 0.8, "conscientiousness": 0.9}, "Perfectionist"},
		{"conscientiousness with influence", map[string]float64{"dominance": 0.2, "influence": 0.8, "steadiness": 0.3, "conscientiousness": 0.9}, "Practitioner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DISCPattern(tt.dims))
		})
	}
}

func TestDISCScorer(t *testing.T) {
	answers := answerSet(12, func(i int) any {
		return []any{5, 4.6, 1, 2}[i%4]
	})
	res, err := NewDISCScorer().Score(answers)
	require.NoError(t, err)
	assert.Equal(t, "D", res.Label)
	assert.Equal(t, "I", res.Secondary)
	assert.Equal(t, "Result-Oriented", res.Pattern)
	assert.Equal(t, "Dominance", res.Description.Name)
}

func TestReferenceProfile(t *testing.T) {
	tests := []struct {
		name string
		dims map[string]float64
		want string
	}{
		{"flat", map[string]float64{"dominance": 0.5, "extraversion": 0.5, "patience": 0.5, "formality": 0.5}, "Adapter"},
		{"pure A", map[string]float64{"dominance": 0.9, "extraversion": 0.4, "patience": 0.3, "formality": 0.2}, "Captain"},
		{"A and D", map[string]float64{"dominance": 0.9, "extraversion": 0.2, "patience": 0.3, "formality": 0.8}, "Strategist"},
		{"B and C", map[string]float64{"dominance": 0.2, "extraversion": 0.8, "patience": 0.9, "formality": 0.3}, "Altruist"},
		{"C and D", map[string]float64{"dominance": 0.2, "extraversion": 0.3, "patience": 0.8, "formality": 0.9}, "Specialist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReferenceProfile(tt.dims))
		})
	}
}

func TestSocialStyle(t *testing.T) {
	assert.Equal(t, "Expressive", SocialStyle(0.8, 0.8))
	assert.Equal(t, "Driver", SocialStyle(0.8, 0.2))
	assert.Equal(t, "Amiable", SocialStyle(0.2, 0.8))
	assert.Equal(t, "Analytical", SocialStyle(0.5, 0.5))
}

func TestStrengthsScorer(t *testing.T) {
	// themes in declaration order; the first five are answered highest
	answers := answerSet(34, func(i int) any {
		if i < 5 {
			return 5
		}
		return 2
	})

	res, err := NewStrengthsScorer().Score(answers)
	require.NoError(t, err)
	assert.Equal(t, []string{"achiever", "arranger", "belief", "consistency", "deliberative"}, res.TopThemes)
	assert.Equal(t, "achiever", res.Label)
	assert.Len(t, res.Facets, 4)
	assert.Greater(t, res.Facets["executing"], res.Facets["influencing"])
}

func TestBigFiveScorer_FactorScores(t *testing.T) {
	answers := answerSet(25, func(i int) any {
		return []int{5, 4, 3, 2, 1}[i%5]
	})

	res, err := NewBigFiveScorer().Score(answers)
	require.NoError(t, err)
	assert.Equal(t, "openness", res.Label)
	assert.Equal(t, 100.0, res.FactorScores["openness"])
	assert.Equal(t, 75.0, res.FactorScores["conscientiousness"])
	assert.Equal(t, 0.0, res.FactorScores["neuroticism"])
	assert.Len(t, res.Facets, 30)
}
