package synthesis

import "github.com/ZanzyTHEbar/teamsynth/internal/scoring"

// Bundle holds the scored results of one subject, keyed by framework.
type Bundle map[scoring.Framework]*scoring.Result

// CommunicationStyle is one of four coarse interaction styles.
type CommunicationStyle string

const (
	Collaborative CommunicationStyle = "collaborative"
	Assertive     CommunicationStyle = "assertive"
	Supportive    CommunicationStyle = "supportive"
	Analytical    CommunicationStyle = "analytical"
)

// Synthesis methods recorded on a profile.
const (
	MethodWeighted = "weighted"
	MethodDefault  = "default"
)

// Big Five dimension names.
const (
	Openness          = "openness"
	Conscientiousness = "conscientiousness"
	Extraversion      = "extraversion"
	Agreeableness     = "agreeableness"
	Neuroticism       = "neuroticism"
)

// BigFive lists the five dimensions in canonical order.
var BigFive = []string{Openness, Conscientiousness, Extraversion, Agreeableness, Neuroticism}

// Profile is the unified personality profile of one subject.
type Profile struct {
	Openness          float64 `json:"openness"`
	Conscientiousness float64 `json:"conscientiousness"`
	Extraversion      float64 `json:"extraversion"`
	Agreeableness     float64 `json:"agreeableness"`
	Neuroticism       float64 `json:"neuroticism"`

	LeadershipPotential float64 `json:"leadership_potential"`
	CollaborationIndex  float64 `json:"collaboration_index"`
	StressTolerance     float64 `json:"stress_tolerance"`
	Adaptability        float64 `json:"adaptability"`

	CommunicationStyle CommunicationStyle `json:"communication_style"`
	WorkPreferences    []string           `json:"work_preferences"`
	Confidence         float64            `json:"confidence"`
	FrameworksUsed     []string           `json:"frameworks_used"`
	SynthesisMethod    string             `json:"synthesis_method"`
}

// Dimension returns a Big Five dimension by name, 0.5 for unknown names.
func (p Profile) Dimension(name string) float64 {
	switch name {
	case Openness:
		return p.Openness
	case Conscientiousness:
		return p.Conscientiousness
	case Extraversion:
		return p.Extraversion
	case Agreeableness:
		return p.Agreeableness
	case Neuroticism:
		return p.Neuroticism
	default:
		return 0.5
	}
}

// FromDimensions builds a profile from the five Big Five values, deriving
// every other field. Missing dimensions read as 0.5.
func FromDimensions(dims map[string]float64) Profile {
	get := func(k string) float64 {
		if v, ok := dims[k]; ok {
			return v
		}
		return 0.5
	}
	p := Profile{
		Openness:          get(Openness),
		Conscientiousness: get(Conscientiousness),
		Extraversion:      get(Extraversion),
		Agreeableness:     get(Agreeableness),
		Neuroticism:       get(Neuroticism),
	}
	p.derive()
	return p
}

// derive fills the traits, style and preferences from the five dimensions.
func (p *Profile) derive() {
	o, c, e, a, n := p.Openness, p.Conscientiousness, p.Extraversion, p.Agreeableness, p.Neuroticism

	p.LeadershipPotential = 0.3*e + 0.25*c + 0.2*o + 0.15*a + 0.1*(1-n)
	p.CollaborationIndex = 0.4*a + 0.3*e + 0.2*o + 0.1*(1-n)
	p.StressTolerance = 0.5*(1-n) + 0.3*c + 0.2*e
	p.Adaptability = 0.4*o + 0.3*(1-n) + 0.2*e + 0.1*(1-c)

	p.CommunicationStyle = communicationStyle(e, a)
	p.WorkPreferences = workPreferences(o, c, e)
}

const (
	highTrait = 0.6
	lowTrait  = 0.4
)

func communicationStyle(extraversion, agreeableness float64) CommunicationStyle {
	switch {
	case extraversion > highTrait && agreeableness > highTrait:
		return Collaborative
	case extraversion > highTrait && agreeableness < lowTrait:
		return Assertive
	case extraversion < lowTrait && agreeableness > highTrait:
		return Supportive
	default:
		return Analytical
	}
}

func workPreferences(openness, conscientiousness, extraversion float64) []string {
	prefs := make([]string, 0, 6)
	if openness > highTrait {
		prefs = append(prefs, "creative_projects", "innovation")
	}
	if conscientiousness > highTrait {
		prefs = append(prefs, "structured_environment", "clear_deadlines")
	}
	if extraversion > highTrait {
		prefs = append(prefs, "team_collaboration", "public_speaking")
	} else {
		prefs = append(prefs, "focused_work", "minimal_interruptions")
	}
	return prefs
}

// DefaultProfile is the fixed neutral profile returned when nothing can be synthesized.
func DefaultProfile() Profile {
	p := FromDimensions(nil)
	p.Confidence = defaultConfidence
	p.FrameworksUsed = []string{}
	p.SynthesisMethod = MethodDefault
	return p
}
