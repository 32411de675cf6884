package scoring

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/ZanzyTHEbar/teamsynth/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// answerSet builds q1..qn with value(i) for the zero-based position i.
func answerSet(n int, value func(i int) any) AnswerSet {
	out := make(AnswerSet, n)
	for i := 0; i < n; i++ {
		out[fmt.Sprintf("q%d", i+1)] = value(i)
	}
	return out
}

func constant(v any) func(int) any {
	return func(int) any { return v }
}

func TestScorers_Validation(t *testing.T) {
	tests := []struct {
		name      string
		scorer    Scorer
		answers   AnswerSet
		wantMsg   string
		wantField string
	}{
		{
			name:      "rejects empty answers",
			scorer:    NewEnneagramScorer(),
			answers:   AnswerSet{},
			wantMsg:   "Invalid Enneagram assessment data",
			wantField: "answers",
		},
		{
			name:      "rejects too few questions",
			scorer:    NewBigFiveScorer(),
			answers:   answerSet(24, constant(3)),
			wantMsg:   "Invalid Big Five assessment data",
			wantField: "answers",
		},
		{
			name:   "rejects out-of-range answers",
			scorer: NewSocialStylesScorer(),
			answers: answerSet(8, func(i int) any {
				if i == 2 {
					return 7
				}
				return 3
			}),
			wantMsg:   "Invalid Social Styles assessment data",
			wantField: "q3",
		},
		{
			name:   "rejects non-numeric answers",
			scorer: NewPredictiveIndexScorer(),
			answers: answerSet(12, func(i int) any {
				if i == 0 {
					return "sometimes"
				}
				return 4
			}),
			wantMsg:   "Invalid Predictive Index assessment data",
			wantField: "q1",
		},
		{
			name:      "rejects pole letters outside MBTI",
			scorer:    NewDISCScorer(),
			answers:   answerSet(12, constant("E")),
			wantMsg:   "Invalid DISC assessment data",
			wantField: "q1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.scorer.Score(tt.answers)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantMsg)

			var appErr *errors.AppError
			require.True(t, stderrors.As(err, &appErr))
			assert.Contains(t, appErr.Fields, tt.wantField)
		})
	}
}

func TestScorers_AllDimensionsPresent(t *testing.T) {
	for _, f := range Frameworks {
		t.Run(string(f), func(t *testing.T) {
			def, ok := DefinitionFor(f)
			require.True(t, ok)

			res, err := DefaultRegistry().Score(f, answerSet(def.MinQuestions, constant(4)))
			require.NoError(t, err)
			require.NotNil(t, res)

			assert.Equal(t, f, res.Framework)
			assert.Len(t, res.Dimensions, len(def.Dimensions))
			for _, d := range def.Dimensions {
				v, ok := res.Dimensions[d]
				assert.True(t, ok, "missing dimension %s", d)
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
			assert.GreaterOrEqual(t, res.Confidence, 0.0)
			assert.LessOrEqual(t, res.Confidence, 1.0)
			assert.NotEmpty(t, res.Label)
		})
	}
}

func TestScorers_UnansweredDimensionsStayNeutral(t *testing.T) {
	// 25 questions, only the first of each factor answered
	answers := answerSet(25, func(i int) any {
		if i < 5 {
			return 5
		}
		return nil
	})

	res, err := NewBigFiveScorer().Score(answers)
	require.NoError(t, err)

	for _, d := range bigFiveDefinition.Dimensions {
		assert.Equal(t, 1.0, res.Dimensions[d])
	}
	assert.Equal(t, 5, res.AnsweredQuestions)
	assert.Equal(t, 25, res.TotalQuestions)
	assert.InDelta(t, 0.18, res.Confidence, 1e-9)
	// only the first facet of each factor was reached by an answered question
	assert.Equal(t, 1.0, res.Facets["fantasy"])
	assert.Equal(t, neutral, res.Facets["values"])
}

func TestScorers_AnswerCoercion(t *testing.T) {
	answers := answerSet(8, func(i int) any {
		switch i % 4 {
		case 0:
			return true
		case 1:
			return "5"
		case 2:
			return 5.0
		default:
			return int64(5)
		}
	})

	res, err := NewSocialStylesScorer().Score(answers)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Dimensions["assertiveness"])
	assert.Equal(t, 1.0, res.Dimensions["responsiveness"])
	assert.Equal(t, "Expressive", res.Label)
}

func TestRegistry_ScoreAll(t *testing.T) {
	registry := DefaultRegistry()

	results, failures := registry.ScoreAll(map[Framework]AnswerSet{
		SocialStyles: answerSet(8, constant(2)),
		Enneagram:    answerSet(3, constant(2)),
		"astrology":  answerSet(10, constant(2)),
	})

	assert.Len(t, results, 1)
	assert.Contains(t, results, SocialStyles)
	assert.Len(t, failures, 1)
	assert.True(t, errors.IsValidation(failures[Enneagram]))
}

func TestRegistry_UnknownFramework(t *testing.T) {
	_, err := DefaultRegistry().Score("astrology", answerSet(10, constant(2)))
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestNeutralResult(t *testing.T) {
	res := NeutralResult(DISC)
	require.NotNil(t, res)
	assert.Len(t, res.Dimensions, 4)
	for _, v := range res.Dimensions {
		assert.Equal(t, 0.5, v)
	}
	assert.Equal(t, 0.0, res.Confidence)

	assert.Nil(t, NeutralResult("astrology"))
}

func TestDescribe_UnknownLabel(t *testing.T) {
	d := describe(MBTI, "XXXX")
	assert.Equal(t, "XXXX", d.Name)
	assert.NotNil(t, d.Strengths)
	assert.Empty(t, d.Strengths)
	assert.Empty(t, d.DevelopmentAreas)
}
