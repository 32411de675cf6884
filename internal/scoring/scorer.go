package scoring

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/ZanzyTHEbar/teamsynth/internal/errors"
)

// Scorer turns one raw answer set into a Result for a single framework.
type Scorer interface {
	Framework() Framework
	Score(answers AnswerSet) (*Result, error)
}

// Definition declares the fixed shape of a framework.
type Definition struct {
	Framework    Framework
	DisplayName  string
	Dimensions   []string
	MinQuestions int
	MinScale     float64
	MaxScale     float64
}

const (
	// completion-rate confidence is capped below certainty
	maxBaseConfidence = 0.9
	defaultMinScale   = 1
	defaultMaxScale   = 5
)

// Option customizes a scorer.
type Option func(*base)

// WithMapping replaces the round-robin question assignment.
func WithMapping(m Mapping) Option {
	return func(b *base) {
		if m != nil {
			b.mapping = m
		}
	}
}

// base carries the validation and per-dimension averaging every scorer shares.
type base struct {
	def      Definition
	mapping  Mapping
	pre      *Preprocessor
	declared map[string]bool
}

func newBase(def Definition, opts []Option) base {
	b := base{
		def:      def,
		mapping:  RoundRobin(def.Dimensions),
		pre:      NewPreprocessor(def.MinScale, def.MaxScale),
		declared: make(map[string]bool, len(def.Dimensions)),
	}
	for _, d := range def.Dimensions {
		b.declared[d] = true
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Framework implements Scorer.
func (b *base) Framework() Framework { return b.def.Framework }

// prepare validates the raw answers and returns them cleaned and ordered.
func (b *base) prepare(answers AnswerSet) ([]Answer, error) {
	if len(answers) == 0 {
		return nil, errors.NewAssessmentValidationError(b.def.DisplayName, map[string]string{
			"answers": "no answers provided",
		})
	}

	problems := make(map[string]string)
	if len(answers) < b.def.MinQuestions {
		problems["answers"] = fmt.Sprintf("expected at least %d questions, got %d", b.def.MinQuestions, len(answers))
	}

	cleaned, questionProblems := b.pre.Process(answers)
	for id, msg := range questionProblems {
		problems[id] = msg
	}

	if len(problems) > 0 {
		slog.Debug("Assessment rejected", "framework", b.def.Framework, "problems", len(problems))
		return nil, errors.NewAssessmentValidationError(b.def.DisplayName, problems)
	}
	return cleaned, nil
}

// tally accumulates normalized answers per dimension.
type tally struct {
	sums   map[string]float64
	counts map[string]int
}

func newTally() *tally {
	return &tally{sums: make(map[string]float64), counts: make(map[string]int)}
}

func (t *tally) add(dim string, v float64) {
	t.sums[dim] += v
	t.counts[dim]++
}

// scores returns the mean per dimension; dimensions with no answers sit at the midpoint.
func (t *tally) scores(dims []string) map[string]float64 {
	out := make(map[string]float64, len(dims))
	for _, d := range dims {
		if n := t.counts[d]; n > 0 {
			out[d] = t.sums[d] / float64(n)
		} else {
			out[d] = neutral
		}
	}
	return out
}

// tally assigns every answered numeric question through the mapping.
func (b *base) tally(answers []Answer) *tally {
	t := newTally()
	for _, a := range answers {
		if !a.Answered || a.Pole != "" {
			continue
		}
		dim := b.mapping.Dimension(a.QuestionID, a.Position)
		if !b.declared[dim] {
			continue
		}
		t.add(dim, a.Value)
	}
	return t
}

// baseConfidence is min(0.9, answered/total*0.9).
func baseConfidence(answers []Answer) float64 {
	if len(answers) == 0 {
		return 0
	}
	answered := countAnswered(answers)
	return math.Min(maxBaseConfidence, float64(answered)/float64(len(answers))*maxBaseConfidence)
}

func countAnswered(answers []Answer) int {
	n := 0
	for _, a := range answers {
		if a.Answered {
			n++
		}
	}
	return n
}

// newResult fills the fields every scorer reports.
func (b *base) newResult(answers []Answer, dims map[string]float64) *Result {
	return &Result{
		Framework:         b.def.Framework,
		Dimensions:        dims,
		Confidence:        baseConfidence(answers),
		AnsweredQuestions: countAnswered(answers),
		TotalQuestions:    len(answers),
	}
}

// rank orders dims by score descending; ties keep declaration order.
func rank(dims []string, scores map[string]float64) []string {
	ranked := append([]string(nil), dims...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	return ranked
}

// Registry dispatches answer sets to the scorer for their framework.
type Registry struct {
	scorers map[Framework]Scorer
}

// NewRegistry creates a registry from explicit scorers.
func NewRegistry(scorers ...Scorer) *Registry {
	r := &Registry{scorers: make(map[Framework]Scorer, len(scorers))}
	for _, s := range scorers {
		r.scorers[s.Framework()] = s
	}
	return r
}

// DefaultRegistry returns every framework scorer with round-robin mappings.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewBigFiveScorer(),
		NewMBTIScorer(),
		NewEnneagramScorer(),
		NewPredictiveIndexScorer(),
		NewStrengthsScorer(),
		NewDISCScorer(),
		NewSocialStylesScorer(),
	)
}

// NewRegistryFromStore builds every scorer with the mapping the store holds for it.
func NewRegistryFromStore(store *MappingStore) (*Registry, error) {
	mappings := make(map[Framework]Mapping, len(Frameworks))
	for _, f := range Frameworks {
		m, err := store.LoadMapping(f)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s mapping: %w", f, err)
		}
		mappings[f] = m
	}

	return NewRegistry(
		NewBigFiveScorer(WithMapping(mappings[BigFive])),
		NewMBTIScorer(WithMapping(mappings[MBTI])),
		NewEnneagramScorer(WithMapping(mappings[Enneagram])),
		NewPredictiveIndexScorer(WithMapping(mappings[PredictiveIndex])),
		NewStrengthsScorer(WithMapping(mappings[Strengths])),
		NewDISCScorer(WithMapping(mappings[DISC])),
		NewSocialStylesScorer(WithMapping(mappings[SocialStyles])),
	), nil
}

// Get returns the scorer for a framework.
func (r *Registry) Get(f Framework) (Scorer, bool) {
	s, ok := r.scorers[f]
	return s, ok
}

// Score scores one framework.
func (r *Registry) Score(f Framework, answers AnswerSet) (*Result, error) {
	s, ok := r.scorers[f]
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported framework %q", f))
	}
	return s.Score(answers)
}

// ScoreAll scores each known framework. Unknown frameworks are skipped;
// frameworks that fail validation are reported in the error map and left out
// of the results.
func (r *Registry) ScoreAll(raw map[Framework]AnswerSet) (map[Framework]*Result, map[Framework]error) {
	results := make(map[Framework]*Result, len(raw))
	failures := make(map[Framework]error)

	for f, answers := range raw {
		s, ok := r.scorers[f]
		if !ok {
			slog.Debug("Skipping unsupported framework", "framework", f)
			continue
		}
		res, err := s.Score(answers)
		if err != nil {
			failures[f] = err
			continue
		}
		results[f] = res
	}

	return results, failures
}

// definitions indexes every framework's declaration.
var definitions = map[Framework]Definition{
	BigFive:         bigFiveDefinition,
	MBTI:            mbtiDefinition,
	Enneagram:       enneagramDefinition,
	PredictiveIndex: predictiveIndexDefinition,
	Strengths:       strengthsDefinition,
	DISC:            discDefinition,
	SocialStyles:    socialStylesDefinition,
}

// DefinitionFor returns the declaration of a framework.
func DefinitionFor(f Framework) (Definition, bool) {
	d, ok := definitions[f]
	return d, ok
}

// NeutralResult is the midpoint result a caller may substitute when a
// framework's answers were rejected.
func NeutralResult(f Framework) *Result {
	def, ok := definitions[f]
	if !ok {
		return nil
	}
	dims := make(map[string]float64, len(def.Dimensions))
	for _, d := range def.Dimensions {
		dims[d] = neutral
	}
	return &Result{
		Framework:   f,
		Dimensions:  dims,
		Label:       "",
		Confidence:  0,
		Description: describe(f, ""),
	}
}
