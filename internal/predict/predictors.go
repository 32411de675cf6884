package predict

import "github.com/ZanzyTHEbar/teamsynth/internal/synthesis"

const (
	conflictConfidence     = 0.72
	satisfactionConfidence = 0.68
	velocityConfidence     = 0.71

	velocityPerMember = 4
	velocitySpread    = 0.2
	strongDriver      = 0.6
)

func performance(f features) Prediction {
	score := 0.4*f["collaboration_index"] + 0.3*f["leadership_potential"] + 0.3*f["stress_tolerance"]

	var level string
	var conf float64
	switch {
	case score > 0.75:
		level, conf = "exceptional", 0.8
	case score > 0.6:
		level, conf = "good", 0.75
	case score > 0.4:
		level, conf = "average", 0.7
	default:
		level, conf = "needs_improvement", 0.65
	}

	drivers := []string{}
	if f["collaboration_index"] > strongDriver {
		drivers = append(drivers, "Strong collaboration across the team")
	}
	if f["leadership_potential"] > strongDriver {
		drivers = append(drivers, "Solid leadership capacity")
	}
	if f["stress_tolerance"] > strongDriver {
		drivers = append(drivers, "Resilience under pressure")
	}

	var recs []string
	switch level {
	case "exceptional", "good":
		recs = []string{"Maintain current team practices", "Give the team stretch goals"}
	case "average":
		recs = []string{"Clarify roles and ownership", "Invest in collaboration rituals"}
	default:
		recs = []string{"Provide coaching on collaboration", "Reduce concurrent commitments", "Review team composition"}
	}

	return Prediction{
		Type:            TypePerformance,
		Score:           score,
		Level:           level,
		Confidence:      conf,
		Drivers:         drivers,
		Recommendations: recs,
	}
}

func conflict(f features) Prediction {
	a, n := f[synthesis.Agreeableness], f[synthesis.Neuroticism]
	score := 0.6*(1-a) + 0.4*n

	level := "low"
	recs := []string{"Keep regular retrospectives"}
	switch {
	case score > 0.6:
		level = "high"
		recs = []string{"Establish explicit conflict-resolution norms", "Schedule facilitated check-ins"}
	case score > 0.3:
		level = "medium"
		recs = []string{"Agree on decision-making rules", "Keep regular retrospectives"}
	}

	drivers := []string{}
	if a < 0.4 {
		drivers = append(drivers, "Low average agreeableness")
	}
	if n > strongDriver {
		drivers = append(drivers, "High average emotional sensitivity")
	}

	return Prediction{
		Type:            TypeConflict,
		Score:           score,
		Level:           level,
		Confidence:      conflictConfidence,
		Drivers:         drivers,
		Recommendations: recs,
	}
}

func satisfaction(f features) Prediction {
	a, n := f[synthesis.Agreeableness], f[synthesis.Neuroticism]
	score := 0.6*a + 0.4*(1-n)

	var level string
	var recs []string
	switch {
	case score > 0.8:
		level = "very_satisfied"
		recs = []string{"Recognize what keeps the team engaged"}
	case score > 0.6:
		level = "satisfied"
		recs = []string{"Collect regular feedback"}
	case score > 0.4:
		level = "neutral"
		recs = []string{"Run one-on-ones to surface concerns", "Improve recognition practices"}
	default:
		level = "dissatisfied"
		recs = []string{"Address workload and stressors", "Run one-on-ones to surface concerns"}
	}

	drivers := []string{}
	if a > strongDriver {
		drivers = append(drivers, "Cooperative team climate")
	}
	if n < 0.4 {
		drivers = append(drivers, "Emotionally stable members")
	}

	return Prediction{
		Type:            TypeSatisfaction,
		Score:           score,
		Level:           level,
		Confidence:      satisfactionConfidence,
		Drivers:         drivers,
		Recommendations: recs,
	}
}

func velocity(f features, teamSize int) Prediction {
	c := f[synthesis.Conscientiousness]
	perMember := velocityPerMember * (0.7 + 0.6*c)
	score := float64(teamSize) * perMember

	var level string
	switch {
	case perMember > 4.5:
		level = "high"
	case perMember > 3.5:
		level = "moderate"
	default:
		level = "low"
	}

	drivers := []string{}
	if c > strongDriver {
		drivers = append(drivers, "High conscientiousness supports steady delivery")
	}

	return Prediction{
		Type:            TypeVelocity,
		Score:           score,
		Level:           level,
		Confidence:      velocityConfidence,
		Drivers:         drivers,
		Recommendations: []string{"Use the range for sprint planning rather than the point estimate"},
		Range: &Range{
			Low:  score * (1 - velocitySpread),
			High: score * (1 + velocitySpread),
		},
	}
}
