package scoring

import "math"

var bigFiveDefinition = Definition{
	Framework:    BigFive,
	DisplayName:  "Big Five",
	Dimensions:   []string{"openness", "conscientiousness", "extraversion", "agreeableness", "neuroticism"},
	MinQuestions: 25,
	MinScale:     defaultMinScale,
	MaxScale:     defaultMaxScale,
}

// bigFiveFacets are the six facets of each factor. The k-th question a factor
// receives feeds facet k mod 6.
var bigFiveFacets = map[string][]string{
	"openness":          {"fantasy", "aesthetics", "feelings", "actions", "ideas", "values"},
	"conscientiousness": {"competence", "order", "dutifulness", "achievement_striving", "self_discipline", "deliberation"},
	"extraversion":      {"warmth", "gregariousness", "assertiveness", "activity", "excitement_seeking", "positive_emotions"},
	"agreeableness":     {"trust", "straightforwardness", "altruism", "compliance", "modesty", "tender_mindedness"},
	"neuroticism":       {"anxiety", "angry_hostility", "depression", "self_consciousness", "impulsiveness", "vulnerability"},
}

// BigFiveScorer scores the five factors and their thirty facets.
type BigFiveScorer struct {
	base
}

// NewBigFiveScorer creates a Big Five scorer.
func NewBigFiveScorer(opts ...Option) *BigFiveScorer {
	return &BigFiveScorer{base: newBase(bigFiveDefinition, opts)}
}

// Score implements Scorer.
func (s *BigFiveScorer) Score(answers AnswerSet) (*Result, error) {
	cleaned, err := s.prepare(answers)
	if err != nil {
		return nil, err
	}

	factors := newTally()
	facets := newTally()
	assigned := make(map[string]int, len(s.def.Dimensions))

	for _, a := range cleaned {
		dim := s.mapping.Dimension(a.QuestionID, a.Position)
		names, ok := bigFiveFacets[dim]
		if !ok {
			continue
		}
		facet := names[assigned[dim]%len(names)]
		assigned[dim]++
		if !a.Answered {
			continue
		}
		factors.add(dim, a.Value)
		facets.add(facet, a.Value)
	}

	dims := factors.scores(s.def.Dimensions)
	res := s.newResult(cleaned, dims)
	res.Facets = facets.scores(allBigFiveFacets())
	res.FactorScores = make(map[string]float64, len(dims))
	for dim, v := range dims {
		res.FactorScores[dim] = math.Round(v*1000) / 10
	}

	res.Label = rank(s.def.Dimensions, dims)[0]
	res.Description = describe(BigFive, res.Label)
	return res, nil
}

func allBigFiveFacets() []string {
	var names []string
	for _, dim := range bigFiveDefinition.Dimensions {
		names = append(names, bigFiveFacets[dim]...)
	}
	return names
}
