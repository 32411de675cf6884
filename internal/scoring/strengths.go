package scoring

import "github.com/ZanzyTHEbar/teamsynth/internal/stats"

const topThemeCount = 5

var strengthsDefinition = Definition{
	Framework:    Strengths,
	DisplayName:  "Strengths",
	Dimensions:   strengthsThemeNames(),
	MinQuestions: 34,
	MinScale:     defaultMinScale,
	MaxScale:     defaultMaxScale,
}

func strengthsThemeNames() []string {
	var names []string
	for _, group := range strengthsThemes {
		names = append(names, group.Themes...)
	}
	return names
}

// StrengthsScorer ranks the 34 themes and rolls them up into four domains.
type StrengthsScorer struct {
	base
}

// NewStrengthsScorer creates a Strengths scorer.
func NewStrengthsScorer(opts ...Option) *StrengthsScorer {
	return &StrengthsScorer{base: newBase(strengthsDefinition, opts)}
}

// Score implements Scorer.
func (s *StrengthsScorer) Score(answers AnswerSet) (*Result, error) {
	cleaned, err := s.prepare(answers)
	if err != nil {
		return nil, err
	}

	dims := s.tally(cleaned).scores(s.def.Dimensions)
	ranked := rank(s.def.Dimensions, dims)

	res := s.newResult(cleaned, dims)
	res.TopThemes = append([]string(nil), ranked[:topThemeCount]...)
	res.Label = ranked[0]

	res.Facets = make(map[string]float64, len(strengthsThemes))
	for _, group := range strengthsThemes {
		values := make([]float64, 0, len(group.Themes))
		for _, theme := range group.Themes {
			values = append(values, dims[theme])
		}
		res.Facets[group.Domain] = stats.Mean(values)
	}

	res.Description = describe(Strengths, res.Label)
	return res, nil
}
