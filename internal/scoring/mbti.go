package scoring

import (
	"math"
	"strings"
)

// mbtiAxes pairs the poles of each preference axis; the first pole wins only
// when strictly greater.
var mbtiAxes = [4][2]string{{"E", "I"}, {"S", "N"}, {"T", "F"}, {"J", "P"}}

var mbtiDefinition = Definition{
	Framework:    MBTI,
	DisplayName:  "MBTI",
	Dimensions:   []string{"E", "I", "S", "N", "T", "F", "J", "P"},
	MinQuestions: 20,
	MinScale:     defaultMinScale,
	MaxScale:     defaultMaxScale,
}

// clarity bonus per unit of average axis margin
const mbtiClarityWeight = 0.3

// MBTIScorer scores the eight preference poles and derives the four-letter type.
type MBTIScorer struct {
	base
}

// NewMBTIScorer creates an MBTI scorer. Answers may be scale values or pole letters.
func NewMBTIScorer(opts ...Option) *MBTIScorer {
	b := newBase(mbtiDefinition, opts)
	b.pre.WithPoles(mbtiDefinition.Dimensions...)
	return &MBTIScorer{base: b}
}

// Score implements Scorer.
func (s *MBTIScorer) Score(answers AnswerSet) (*Result, error) {
	cleaned, err := s.prepare(answers)
	if err != nil {
		return nil, err
	}

	t := s.tally(cleaned)
	for _, a := range cleaned {
		if a.Pole == "" {
			continue
		}
		t.add(a.Pole, 1)
		t.add(mbtiOpposite(a.Pole), 0)
	}
	dims := t.scores(s.def.Dimensions)

	label := DetermineType(dims)
	res := s.newResult(cleaned, dims)
	res.Label = label
	res.Facets = make(map[string]float64, len(mbtiAxes))

	var margin float64
	for _, axis := range mbtiAxes {
		m := math.Abs(dims[axis[0]] - dims[axis[1]])
		res.Facets[axis[0]+axis[1]] = m
		margin += m
	}
	margin /= float64(len(mbtiAxes))

	res.Confidence = math.Min(1, res.Confidence+mbtiClarityWeight*margin)
	res.Description = describe(MBTI, label)
	return res, nil
}

// DetermineType picks one letter per axis. Ties go to the second letter.
func DetermineType(dims map[string]float64) string {
	var b strings.Builder
	for _, axis := range mbtiAxes {
		first, second := axis[0], axis[1]
		if valueOr(dims, first) > valueOr(dims, second) {
			b.WriteString(first)
		} else {
			b.WriteString(second)
		}
	}
	return b.String()
}

func mbtiOpposite(pole string) string {
	for _, axis := range mbtiAxes {
		switch pole {
		case axis[0]:
			return axis[1]
		case axis[1]:
			return axis[0]
		}
	}
	return ""
}

func valueOr(dims map[string]float64, key string) float64 {
	if v, ok := dims[key]; ok {
		return v
	}
	return neutral
}
