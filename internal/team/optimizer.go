// Package team aggregates member profiles into a team composition report.
package team

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/ZanzyTHEbar/teamsynth/internal/compatibility"
	"github.com/ZanzyTHEbar/teamsynth/internal/errors"
	"github.com/ZanzyTHEbar/teamsynth/internal/outcome"
	"github.com/ZanzyTHEbar/teamsynth/internal/stats"
	"github.com/ZanzyTHEbar/teamsynth/internal/synthesis"
)

const (
	overallCompatibilityWeight = 0.4
	overallDiversityWeight     = 0.3
	overallBalanceWeight       = 0.3

	leadershipTarget    = 0.6
	collaborationTarget = 0.7

	conflictThreshold     = 0.3
	highRiskThreshold     = 0.2
	strengthThreshold     = 0.7
	stressWeaknessCeiling = 0.4

	velocityPerCompatibility = 20
	increasingTrendFloor     = 0.6
	fallbackScore            = 0.6
)

// Risk levels of a conflict pair.
const (
	RiskHigh   = "high"
	RiskMedium = "medium"
)

// Trends of the performance prediction.
const (
	TrendIncreasing = "increasing"
	TrendStable     = "stable"
)

// Member is one roster entry.
type Member struct {
	ID      string            `json:"member_id"`
	Profile synthesis.Profile `json:"profile"`
}

// ConflictPair is a pair of members whose compatibility is below the conflict threshold.
type ConflictPair struct {
	MemberA       string  `json:"member_a"`
	MemberB       string  `json:"member_b"`
	Compatibility float64 `json:"compatibility"`
	RiskLevel     string  `json:"risk_level"`
}

// Recommendation is an actionable suggestion for the team.
type Recommendation struct {
	Type     string         `json:"type"`
	Priority string         `json:"priority"`
	Message  string         `json:"message"`
	Pairs    []ConflictPair `json:"pairs,omitempty"`
}

// Performance is the team-level performance forecast.
type Performance struct {
	PredictedVelocity   float64 `json:"predicted_velocity"`
	SatisfactionScore   float64 `json:"satisfaction_score"`
	ConflictProbability float64 `json:"conflict_probability"`
	Trend               string  `json:"trend"`
}

// Report is the result of one optimization call.
type Report struct {
	TeamSize             int              `json:"team_size"`
	MemberIDs            []string         `json:"member_ids"`
	Matrix               [][]float64      `json:"compatibility_matrix"`
	OverallScore         float64          `json:"overall_score"`
	AverageCompatibility float64          `json:"avg_compatibility"`
	Diversity            float64          `json:"diversity_score"`
	Balance              float64          `json:"balance_score"`
	ConflictPairs        []ConflictPair   `json:"conflict_pairs"`
	Strengths            []string         `json:"strengths"`
	Weaknesses           []string         `json:"weaknesses"`
	Recommendations      []Recommendation `json:"recommendations"`
	Performance          Performance      `json:"performance_prediction"`
	Requirements         map[string]any   `json:"project_requirements,omitempty"`
	Goals                []string         `json:"optimization_goals,omitempty"`
}

const (
	defaultStrength = "Balanced team composition"
	defaultWeakness = "No significant weaknesses identified"
)

// Optimizer builds team reports from member profiles.
type Optimizer struct {
	calc   *compatibility.Calculator
	logger *slog.Logger
}

// NewOptimizer creates an optimizer. A nil logger uses slog.Default().
func NewOptimizer(calc *compatibility.Calculator, logger *slog.Logger) *Optimizer {
	if logger == nil {
		logger = slog.Default()
	}
	if calc == nil {
		calc = compatibility.NewCalculator(logger)
	}
	return &Optimizer{calc: calc, logger: logger}
}

// Optimize analyzes a roster. Requirements and goals are echoed on the report.
// It never fails: an internal fault yields the fixed fallback report.
func (o *Optimizer) Optimize(members []Member, requirements map[string]any, goals []string) (out outcome.Outcome[Report]) {
	if len(members) == 0 {
		return outcome.Computed(EmptyReport())
	}

	errors.SafeExecute(func() {
		r, err := o.build(members)
		if err != nil {
			o.logger.Warn("Team optimization fell back", "error", err, "team_size", len(members))
			out = outcome.Fallback(FallbackReport(len(members)), err.Error())
			return
		}
		r.Requirements = requirements
		r.Goals = goals
		out = outcome.Computed(r)
	}, func(r interface{}) {
		o.logger.Warn("Team optimization panicked", "panic", r, "team_size", len(members))
		out = outcome.Fallback(FallbackReport(len(members)), fmt.Sprintf("team optimization panicked: %v", r))
	})
	return out
}

func (o *Optimizer) build(members []Member) (Report, error) {
	n := len(members)
	ids := make([]string, n)
	for i, m := range members {
		ids[i] = m.ID
	}

	matrix := o.Matrix(members)
	avg := matrixMean(matrix)
	diversity := Diversity(members)
	balance := Balance(members)

	if !stats.Finite(avg, diversity, balance) {
		return Report{}, fmt.Errorf("team metrics are not finite")
	}

	conflicts := conflictPairs(ids, matrix)
	strengths, weaknesses := strengthsAndWeaknesses(members)

	r := Report{
		TeamSize:             n,
		MemberIDs:            ids,
		Matrix:               matrix,
		AverageCompatibility: avg,
		Diversity:            diversity,
		Balance:              balance,
		OverallScore:         overallCompatibilityWeight*avg + overallDiversityWeight*diversity + overallBalanceWeight*balance,
		ConflictPairs:        conflicts,
		Strengths:            strengths,
		Weaknesses:           weaknesses,
		Recommendations:      recommendations(conflicts),
		Performance:          performance(avg),
	}

	o.logger.Debug("Team report built",
		"team_size", n,
		"overall_score", r.OverallScore,
		"conflicts", len(conflicts),
	)
	return r, nil
}

// Matrix computes the symmetric pairwise compatibility matrix. Only i<j is
// calculated; the diagonal is 1.
func (o *Optimizer) Matrix(members []Member) [][]float64 {
	n := len(members)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1.0
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := o.calc.Calculate(members[i].Profile, members[j].Profile).Value.Score
			m[i][j] = s
			m[j][i] = s
		}
	}
	return m
}

// matrixMean averages every cell, diagonal included.
func matrixMean(m [][]float64) float64 {
	values := make([]float64, 0, len(m)*len(m))
	for _, row := range m {
		values = append(values, row...)
	}
	return stats.Mean(values)
}

// Diversity is the mean over the Big Five of each dimension's population
// standard deviation across members.
func Diversity(members []Member) float64 {
	if len(members) < 2 {
		return 0
	}
	spreads := make([]float64, 0, len(synthesis.BigFive))
	for _, dim := range synthesis.BigFive {
		values := make([]float64, len(members))
		for i, m := range members {
			values[i] = m.Profile.Dimension(dim)
		}
		spreads = append(spreads, stats.PopulationStdDev(values))
	}
	return stats.Mean(spreads)
}

// Balance scores how close team-average leadership and collaboration sit to their targets.
func Balance(members []Member) float64 {
	avg := averages(members)
	leadership := math.Max(0, 1-math.Abs(avg.leadership-leadershipTarget))
	collaboration := math.Max(0, 1-math.Abs(avg.collaboration-collaborationTarget))
	return (leadership + collaboration) / 2
}

type traitAverages struct {
	leadership, collaboration, stress, adaptability float64
}

func averages(members []Member) traitAverages {
	var l, c, s, a []float64
	for _, m := range members {
		l = append(l, m.Profile.LeadershipPotential)
		c = append(c, m.Profile.CollaborationIndex)
		s = append(s, m.Profile.StressTolerance)
		a = append(a, m.Profile.Adaptability)
	}
	return traitAverages{
		leadership:    stats.Mean(l),
		collaboration: stats.Mean(c),
		stress:        stats.Mean(s),
		adaptability:  stats.Mean(a),
	}
}

func conflictPairs(ids []string, m [][]float64) []ConflictPair {
	pairs := []ConflictPair{}
	for i := range m {
		for j := i + 1; j < len(m); j++ {
			if m[i][j] >= conflictThreshold {
				continue
			}
			risk := RiskMedium
			if m[i][j] < highRiskThreshold {
				risk = RiskHigh
			}
			pairs = append(pairs, ConflictPair{
				MemberA:       ids[i],
				MemberB:       ids[j],
				Compatibility: m[i][j],
				RiskLevel:     risk,
			})
		}
	}
	return pairs
}

func strengthsAndWeaknesses(members []Member) ([]string, []string) {
	avg := averages(members)

	var strengths []string
	if avg.leadership > strengthThreshold {
		strengths = append(strengths, "Strong leadership potential")
	}
	if avg.collaboration > strengthThreshold {
		strengths = append(strengths, "Excellent collaboration skills")
	}
	if avg.adaptability > strengthThreshold {
		strengths = append(strengths, "High adaptability to change")
	}
	if len(strengths) == 0 {
		strengths = []string{defaultStrength}
	}

	var weaknesses []string
	if avg.stress < stressWeaknessCeiling {
		weaknesses = append(weaknesses, "May struggle under high-pressure situations")
	}
	if len(weaknesses) == 0 {
		weaknesses = []string{defaultWeakness}
	}

	return strengths, weaknesses
}

func recommendations(conflicts []ConflictPair) []Recommendation {
	if len(conflicts) == 0 {
		return []Recommendation{}
	}
	return []Recommendation{{
		Type:     "conflict_resolution",
		Priority: "high",
		Message:  fmt.Sprintf("Address potential conflicts between %d member pair(s) through facilitated communication", len(conflicts)),
		Pairs:    conflicts,
	}}
}

func performance(avg float64) Performance {
	trend := TrendStable
	if avg > increasingTrendFloor {
		trend = TrendIncreasing
	}
	return Performance{
		PredictedVelocity:   velocityPerCompatibility * avg,
		SatisfactionScore:   avg,
		ConflictProbability: 1 - avg,
		Trend:               trend,
	}
}

// EmptyReport is the result for an empty roster.
func EmptyReport() Report {
	return Report{
		MemberIDs:       []string{},
		Matrix:          [][]float64{},
		ConflictPairs:   []ConflictPair{},
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []Recommendation{},
		Performance:     Performance{Trend: TrendStable},
	}
}

// FallbackReport is the fixed report substituted when analysis fails.
func FallbackReport(teamSize int) Report {
	return Report{
		TeamSize:             teamSize,
		MemberIDs:            []string{},
		Matrix:               [][]float64{},
		OverallScore:         fallbackScore,
		AverageCompatibility: fallbackScore,
		Diversity:            fallbackScore,
		Balance:              fallbackScore,
		ConflictPairs:        []ConflictPair{},
		Strengths:            []string{defaultStrength},
		Weaknesses:           []string{defaultWeakness},
		Recommendations:      []Recommendation{},
		Performance:          performance(fallbackScore),
	}
}
