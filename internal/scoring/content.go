package scoring

// describe looks up the descriptive content for a framework label. A miss
// returns the label as name with empty lists.
func describe(f Framework, label string) Description {
	var table map[string]Description
	switch f {
	case MBTI:
		table = mbtiContent
	case BigFive:
		table = bigFiveContent
	case DISC:
		table = discContent
	case Enneagram:
		table = enneagramContent
	case PredictiveIndex:
		table = predictiveIndexContent
	case SocialStyles:
		table = socialStylesContent
	case Strengths:
		table = strengthsContent
	}
	if d, ok := table[label]; ok {
		return d
	}
	return Description{Name: label, Strengths: []string{}, DevelopmentAreas: []string{}}
}

var mbtiContent = map[string]Description{
	"ISTJ": {"The Inspector", []string{"Reliable", "Thorough", "Organized"}, []string{"Openness to change", "Expressing feelings"}, "Structured, methodical, works best with clear procedures"},
	"ISFJ": {"The Protector", []string{"Supportive", "Patient", "Detail-oriented"}, []string{"Saying no", "Handling conflict"}, "Quietly dependable, serves the team's practical needs"},
	"INFJ": {"The Advocate", []string{"Insightful", "Principled", "Empathetic"}, []string{"Delegating", "Accepting imperfection"}, "Purpose-driven, prefers meaningful long-term work"},
	"INTJ": {"The Architect", []string{"Strategic", "Independent", "Analytical"}, []string{"Patience with others", "Sharing reasoning"}, "Plans ahead, works independently toward a vision"},
	"ISTP": {"The Craftsman", []string{"Practical", "Calm in crisis", "Hands-on"}, []string{"Long-term planning", "Communicating intent"}, "Troubleshoots directly, prefers autonomy"},
	"ISFP": {"The Composer", []string{"Adaptable", "Considerate", "Observant"}, []string{"Assertiveness", "Planning"}, "Flexible, values harmony and authenticity"},
	"INFP": {"The Mediator", []string{"Idealistic", "Creative", "Compassionate"}, []string{"Structure", "Taking criticism"}, "Values-led, thrives with autonomy and meaning"},
	"INTP": {"The Thinker", []string{"Logical", "Curious", "Objective"}, []string{"Follow-through", "Social engagement"}, "Explores ideas deeply, prefers flexible schedules"},
	"ESTP": {"The Dynamo", []string{"Energetic", "Pragmatic", "Persuasive"}, []string{"Patience", "Planning ahead"}, "Acts fast, learns by doing"},
	"ESFP": {"The Performer", []string{"Enthusiastic", "Sociable", "Spontaneous"}, []string{"Focus", "Long-term planning"}, "Brings energy, works well in people-facing roles"},
	"ENFP": {"The Champion", []string{"Inspiring", "Imaginative", "Warm"}, []string{"Follow-through", "Prioritizing"}, "Generates ideas, energizes collaborative work"},
	"ENTP": {"The Visionary", []string{"Inventive", "Quick-witted", "Adaptable"}, []string{"Routine tasks", "Sensitivity"}, "Challenges assumptions, likes variety"},
	"ESTJ": {"The Supervisor", []string{"Decisive", "Organized", "Dependable"}, []string{"Flexibility", "Considering feelings"}, "Drives execution through structure and clear roles"},
	"ESFJ": {"The Provider", []string{"Cooperative", "Loyal", "Attentive"}, []string{"Handling criticism", "Change tolerance"}, "Builds team cohesion, keeps people on track"},
	"ENFJ": {"The Teacher", []string{"Charismatic", "Empathetic", "Motivating"}, []string{"Self-care", "Objectivity"}, "Develops others, leads through shared values"},
	"ENTJ": {"The Commander", []string{"Strategic leadership", "Efficient", "Confident"}, []string{"Patience", "Emotional awareness"}, "Sets direction, organizes people toward goals"},
}

var bigFiveContent = map[string]Description{
	"openness":          {"Openness", []string{"Creativity", "Curiosity", "Abstract thinking"}, []string{"Routine work", "Practical focus"}, "Explores new approaches and ideas"},
	"conscientiousness": {"Conscientiousness", []string{"Discipline", "Planning", "Reliability"}, []string{"Flexibility", "Perfectionism"}, "Organized, goal-oriented, follows through"},
	"extraversion":      {"Extraversion", []string{"Energy", "Sociability", "Assertiveness"}, []string{"Listening", "Working alone"}, "Thrives in interactive, collaborative settings"},
	"agreeableness":     {"Agreeableness", []string{"Cooperation", "Trust", "Empathy"}, []string{"Assertiveness", "Difficult feedback"}, "Supports others, seeks consensus"},
	"neuroticism":       {"Emotional Sensitivity", []string{"Risk awareness", "Vigilance"}, []string{"Stress management", "Resilience"}, "Attentive to problems, benefits from stable environments"},
}

var discContent = map[string]Description{
	"D": {"Dominance", []string{"Decisive", "Results-driven", "Direct"}, []string{"Patience", "Listening"}, "Takes charge, pushes for outcomes"},
	"I": {"Influence", []string{"Persuasive", "Optimistic", "Collaborative"}, []string{"Detail focus", "Follow-through"}, "Motivates others through enthusiasm"},
	"S": {"Steadiness", []string{"Dependable", "Patient", "Supportive"}, []string{"Adapting to change", "Speaking up"}, "Steady contributor, values stability"},
	"C": {"Conscientiousness", []string{"Accurate", "Analytical", "Systematic"}, []string{"Decisiveness", "Tolerance for ambiguity"}, "Works to high standards with careful analysis"},
}

var enneagramContent = map[string]Description{
	"1": {"The Reformer", []string{"Principled", "Ethical", "Precise"}, []string{"Self-criticism", "Rigidity"}, "Improves processes, holds high standards"},
	"2": {"The Helper", []string{"Generous", "Caring", "Supportive"}, []string{"Boundaries", "Own needs"}, "Supports others, builds relationships"},
	"3": {"The Achiever", []string{"Driven", "Adaptable", "Efficient"}, []string{"Work-life balance", "Authenticity"}, "Goal-focused, performs under visibility"},
	"4": {"The Individualist", []string{"Creative", "Expressive", "Authentic"}, []string{"Mood management", "Consistency"}, "Brings originality and depth"},
	"5": {"The Investigator", []string{"Perceptive", "Knowledgeable", "Independent"}, []string{"Engagement", "Sharing information"}, "Researches deeply, needs focus time"},
	"6": {"The Loyalist", []string{"Committed", "Responsible", "Risk-aware"}, []string{"Anxiety", "Trusting own judgment"}, "Anticipates problems, values team security"},
	"7": {"The Enthusiast", []string{"Optimistic", "Versatile", "Spontaneous"}, []string{"Focus", "Finishing tasks"}, "Generates options, keeps energy high"},
	"8": {"The Challenger", []string{"Confident", "Decisive", "Protective"}, []string{"Vulnerability", "Control"}, "Leads forcefully, protects the team"},
	"9": {"The Peacemaker", []string{"Accepting", "Stable", "Mediating"}, []string{"Prioritizing", "Asserting views"}, "Creates harmony, integrates perspectives"},
}

var predictiveIndexContent = map[string]Description{
	"Captain":      {"Captain", []string{"Independent", "Strategic", "Driven"}, []string{"Delegation", "Patience"}, "Sets direction and owns outcomes"},
	"Promoter":     {"Promoter", []string{"Outgoing", "Persuasive", "Energetic"}, []string{"Detail work", "Routine"}, "Connects people and sells ideas"},
	"Operator":     {"Operator", []string{"Patient", "Consistent", "Team-oriented"}, []string{"Fast change", "Confrontation"}, "Keeps steady processes running"},
	"Craftsman":    {"Craftsman", []string{"Precise", "Disciplined", "Thorough"}, []string{"Ambiguity", "Speed"}, "Delivers careful, high-quality work"},
	"Persuader":    {"Persuader", []string{"Driving", "Sociable", "Confident"}, []string{"Follow-through", "Listening"}, "Influences outcomes through people"},
	"Venturer":     {"Venturer", []string{"Self-reliant", "Persistent", "Bold"}, []string{"Team processes", "Rules"}, "Pursues goals with steady independence"},
	"Strategist":   {"Strategist", []string{"Analytical", "Decisive", "Rigorous"}, []string{"Warmth", "Flexibility"}, "Solves problems with structured judgment"},
	"Altruist":     {"Altruist", []string{"Friendly", "Patient", "Accommodating"}, []string{"Assertiveness", "Urgency"}, "Builds lasting working relationships"},
	"Collaborator": {"Collaborator", []string{"Cooperative", "Diplomatic", "Careful"}, []string{"Independence", "Risk-taking"}, "Works well inside defined team structures"},
	"Specialist":   {"Specialist", []string{"Expert", "Methodical", "Reliable"}, []string{"Self-promotion", "Change tolerance"}, "Deepens expertise in a stable role"},
	"Adapter":      {"Adapter", []string{"Flexible", "Balanced", "Versatile"}, []string{"Clear preferences", "Sustained focus"}, "Adjusts style to what the situation needs"},
}

var socialStylesContent = map[string]Description{
	"Driver":     {"Driver", []string{"Decisive", "Efficient", "Results-focused"}, []string{"Listening", "Patience"}, "Controls pace, prefers brevity"},
	"Expressive": {"Expressive", []string{"Enthusiastic", "Visionary", "Persuasive"}, []string{"Detail", "Consistency"}, "Shares ideas openly, seeks recognition"},
	"Amiable":    {"Amiable", []string{"Supportive", "Cooperative", "Loyal"}, []string{"Assertiveness", "Decisiveness"}, "Builds trust, values relationships"},
	"Analytical": {"Analytical", []string{"Thorough", "Logical", "Systematic"}, []string{"Speed", "Expressiveness"}, "Gathers facts before acting"},
}

// strengthsThemes lists the 34 themes grouped by domain.
var strengthsThemes = []struct {
	Domain string
	Themes []string
}{
	{"executing", []string{"achiever", "arranger", "belief", "consistency", "deliberative", "discipline", "focus", "responsibility", "restorative"}},
	{"influencing", []string{"activator", "command", "communication", "competition", "maximizer", "self_assurance", "significance", "woo"}},
	{"relationship_building", []string{"adaptability", "connectedness", "developer", "empathy", "harmony", "includer", "individualization", "positivity", "relator"}},
	{"strategic_thinking", []string{"analytical", "context", "futuristic", "ideation", "input", "intellection", "learner", "strategic"}},
}

var strengthsDomainDescriptions = map[string]string{
	"executing":             "Makes things happen",
	"influencing":           "Takes charge and speaks up",
	"relationship_building": "Holds teams together",
	"strategic_thinking":    "Absorbs and analyzes information",
}

var strengthsContent = buildStrengthsContent()

func buildStrengthsContent() map[string]Description {
	out := make(map[string]Description)
	for _, group := range strengthsThemes {
		for _, theme := range group.Themes {
			out[theme] = Description{
				Name:             theme,
				Strengths:        []string{strengthsDomainDescriptions[group.Domain]},
				DevelopmentAreas: []string{},
				WorkStyle:        strengthsDomainDescriptions[group.Domain],
			}
		}
	}
	return out
}
