package scoring

var predictiveIndexDefinition = Definition{
	Framework:    PredictiveIndex,
	DisplayName:  "Predictive Index",
	Dimensions:   []string{"dominance", "extraversion", "patience", "formality"},
	MinQuestions: 12,
	MinScale:     defaultMinScale,
	MaxScale:     defaultMaxScale,
}

var piFactors = map[string]string{
	"dominance":    "A",
	"extraversion": "B",
	"patience":     "C",
	"formality":    "D",
}

const (
	piFlatSpread = 0.1
	piPureGap    = 0.2
)

// PredictiveIndexScorer scores the four PI factors and matches a reference profile.
type PredictiveIndexScorer struct {
	base
}

// NewPredictiveIndexScorer creates a Predictive Index scorer.
func NewPredictiveIndexScorer(opts ...Option) *PredictiveIndexScorer {
	return &PredictiveIndexScorer{base: newBase(predictiveIndexDefinition, opts)}
}

// Score implements Scorer.
func (s *PredictiveIndexScorer) Score(answers AnswerSet) (*Result, error) {
	cleaned, err := s.prepare(answers)
	if err != nil {
		return nil, err
	}

	dims := s.tally(cleaned).scores(s.def.Dimensions)
	ranked := rank(s.def.Dimensions, dims)

	res := s.newResult(cleaned, dims)
	res.Pattern = ReferenceProfile(dims)
	res.Label = res.Pattern
	res.Secondary = piFactors[ranked[0]] + piFactors[ranked[1]]
	res.Description = describe(PredictiveIndex, res.Pattern)
	return res, nil
}

// ReferenceProfile matches PI factor scores to a reference profile. The first
// matching rule wins.
func ReferenceProfile(dims map[string]float64) string {
	ranked := rank(predictiveIndexDefinition.Dimensions, dims)
	top, second, low := dims[ranked[0]], dims[ranked[1]], dims[ranked[len(ranked)-1]]
	high := piFactors[ranked[0]]
	pair := map[string]bool{high: true, piFactors[ranked[1]]: true}

	switch {
	case top-low < piFlatSpread:
		return "Adapter"
	case top-second > piPureGap && high == "A":
		return "Captain"
	case top-second > piPureGap && high == "B":
		return "Promoter"
	case top-second > piPureGap && high == "C":
		return "Operator"
	case top-second > piPureGap && high == "D":
		return "Craftsman"
	case pair["A"] && pair["B"]:
		return "Persuader"
	case pair["A"] && pair["C"]:
		return "Venturer"
	case pair["A"] && pair["D"]:
		return "Strategist"
	case pair["B"] && pair["C"]:
		return "Altruist"
	case pair["B"] && pair["D"]:
		return "Collaborator"
	default:
		return "Specialist"
	}
}
