package scoring

import (
	"math"
	"sort"
)

// Framework names one personality instrument.
type Framework string

const (
	BigFive         Framework = "big_five"
	MBTI            Framework = "mbti"
	Enneagram       Framework = "enneagram"
	PredictiveIndex Framework = "predictive_index"
	Strengths       Framework = "strengths"
	DISC            Framework = "disc"
	SocialStyles    Framework = "social_styles"
)

// Frameworks lists every supported framework in canonical order.
var Frameworks = []Framework{BigFive, MBTI, Enneagram, PredictiveIndex, Strengths, DISC, SocialStyles}

// Known reports whether f is one of the supported frameworks.
func (f Framework) Known() bool {
	for _, k := range Frameworks {
		if k == f {
			return true
		}
	}
	return false
}

// AnswerSet maps question id to a raw answer: a number on the framework
// scale, a bool, a numeric string, an MBTI pole letter, or nil when skipped.
type AnswerSet map[string]any

// Description is the static descriptive content attached to a label.
type Description struct {
	Name             string   `json:"name"`
	Strengths        []string `json:"strengths"`
	DevelopmentAreas []string `json:"development_areas"`
	WorkStyle        string   `json:"work_style"`
}

// Result is the output of one framework scorer.
type Result struct {
	Framework  Framework          `json:"framework"`
	Dimensions map[string]float64 `json:"dimensions"`
	Label      string             `json:"label"`
	Confidence float64            `json:"confidence"`

	// Secondary holds the DISC secondary style or the Enneagram "XwY" notation.
	Secondary string `json:"secondary,omitempty"`
	// Pattern is the behavioral pattern (DISC) or reference profile (PI).
	Pattern string `json:"pattern,omitempty"`
	// Type and Wing are set by the Enneagram scorer only.
	Type int `json:"type,omitempty"`
	Wing int `json:"wing,omitempty"`

	// FactorScores are Big Five factors on a 0-100 scale.
	FactorScores map[string]float64 `json:"factor_scores,omitempty"`
	// Facets holds sub-scores: Big Five facets, MBTI axis clarity, Strengths domains.
	Facets    map[string]float64 `json:"facets,omitempty"`
	TopThemes []string           `json:"top_themes,omitempty"`

	Description Description `json:"description"`

	AnsweredQuestions int `json:"answered_questions"`
	TotalQuestions    int `json:"total_questions"`
}

// Dimension returns the named dimension, or the neutral midpoint when absent.
func (r *Result) Dimension(name string) float64 {
	if r == nil || r.Dimensions == nil {
		return neutral
	}
	if v, ok := r.Dimensions[name]; ok {
		return v
	}
	return neutral
}

// OutOfRange returns the dimensions whose values are non-finite or outside
// [0,1], sorted by name.
func (r *Result) OutOfRange() []string {
	if r == nil {
		return nil
	}
	var bad []string
	for name, v := range r.Dimensions {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
			bad = append(bad, name)
		}
	}
	sort.Strings(bad)
	return bad
}

const neutral = 0.5
