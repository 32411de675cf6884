package scoring

var discDefinition = Definition{
	Framework:    DISC,
	DisplayName:  "DISC",
	Dimensions:   []string{"dominance", "influence", "steadiness", "conscientiousness"},
	MinQuestions: 12,
	MinScale:     defaultMinScale,
	MaxScale:     defaultMaxScale,
}

var discLetters = map[string]string{
	"dominance":         "D",
	"influence":         "I",
	"steadiness":        "S",
	"conscientiousness": "C",
}

const (
	// a spread below this across all four styles reads as no dominant style
	discFlatSpread = 0.1
	// a lead above this over the runner-up reads as a single-style pattern
	discPureGap = 0.2
)

// DISCScorer scores the four behavioral styles and their pattern.
type DISCScorer struct {
	base
}

// NewDISCScorer creates a DISC scorer.
func NewDISCScorer(opts ...Option) *DISCScorer {
	return &DISCScorer{base: newBase(discDefinition, opts)}
}

// Score implements Scorer.
func (s *DISCScorer) Score(answers AnswerSet) (*Result, error) {
	cleaned, err := s.prepare(answers)
	if err != nil {
		return nil, err
	}

	dims := s.tally(cleaned).scores(s.def.Dimensions)
	ranked := rank(s.def.Dimensions, dims)

	res := s.newResult(cleaned, dims)
	res.Label = discLetters[ranked[0]]
	res.Secondary = discLetters[ranked[1]]
	res.Pattern = DISCPattern(dims)
	res.Description = describe(DISC, res.Label)
	return res, nil
}

// DISCPattern classifies a DISC profile. The first matching rule wins.
func DISCPattern(dims map[string]float64) string {
	ranked := rank(discDefinition.Dimensions, dims)
	top, second, low := dims[ranked[0]], dims[ranked[1]], dims[ranked[len(ranked)-1]]
	primary, secondary := discLetters[ranked[0]], discLetters[ranked[1]]

	switch {
	case top-low < discFlatSpread:
		return "Balanced"
	case top-second > discPureGap && primary == "D":
		return "Developer"
	case top-second > discPureGap && primary == "I":
		return "Promoter"
	case top-second > discPureGap && primary == "S":
		return "Specialist"
	case top-second > discPureGap && primary == "C":
		return "Objective Thinker"
	case primary == "D" && secondary == "I":
		return "Result-Oriented"
	case primary == "D" && secondary == "C":
		return "Creative"
	case primary == "D":
		return "Developer"
	case primary == "I" && secondary == "D":
		return "Persuader"
	case primary == "I" && secondary == "S":
		return "Counselor"
	case primary == "I":
		return "Appraiser"
	case primary == "S" && secondary == "D":
		return "Investigator"
	case primary == "S" && secondary == "I":
		return "Agent"
	case primary == "S":
		return "Specialist"
	case secondary == "D":
		return "Objective Thinker"
	case secondary == "S":
		return "Perfectionist"
	default:
		return "Practitioner"
	}
}
