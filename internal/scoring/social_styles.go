package scoring

var socialStylesDefinition = Definition{
	Framework:    SocialStyles,
	DisplayName:  "Social Styles",
	Dimensions:   []string{"assertiveness", "responsiveness"},
	MinQuestions: 8,
	MinScale:     defaultMinScale,
	MaxScale:     defaultMaxScale,
}

// SocialStylesScorer places a respondent in one of four quadrants.
type SocialStylesScorer struct {
	base
}

// NewSocialStylesScorer creates a Social Styles scorer.
func NewSocialStylesScorer(opts ...Option) *SocialStylesScorer {
	return &SocialStylesScorer{base: newBase(socialStylesDefinition, opts)}
}

// Score implements Scorer.
func (s *SocialStylesScorer) Score(answers AnswerSet) (*Result, error) {
	cleaned, err := s.prepare(answers)
	if err != nil {
		return nil, err
	}

	dims := s.tally(cleaned).scores(s.def.Dimensions)
	res := s.newResult(cleaned, dims)
	res.Label = SocialStyle(dims["assertiveness"], dims["responsiveness"])
	res.Description = describe(SocialStyles, res.Label)
	return res, nil
}

// SocialStyle maps the two axes to a quadrant. The midpoint counts as low.
func SocialStyle(assertiveness, responsiveness float64) string {
	switch {
	case assertiveness > neutral && responsiveness > neutral:
		return "Expressive"
	case assertiveness > neutral:
		return "Driver"
	case responsiveness > neutral:
		return "Amiable"
	default:
		return "Analytical"
	}
}
