package scoring

import (
	"fmt"
	"strconv"

	"github.com/ZanzyTHEbar/teamsynth/internal/stats"
)

var enneagramDefinition = Definition{
	Framework:    Enneagram,
	DisplayName:  "Enneagram",
	Dimensions:   []string{"type_1", "type_2", "type_3", "type_4", "type_5", "type_6", "type_7", "type_8", "type_9"},
	MinQuestions: 18,
	MinScale:     defaultMinScale,
	MaxScale:     defaultMaxScale,
}

const (
	enneagramClearGap     = 0.2
	enneagramAmbiguousGap = 0.05
	enneagramGapAdjust    = 0.1
	enneagramMinConf      = 0.3
)

// EnneagramScorer scores the nine types and resolves primary type and wing.
type EnneagramScorer struct {
	base
}

// NewEnneagramScorer creates an Enneagram scorer.
func NewEnneagramScorer(opts ...Option) *EnneagramScorer {
	return &EnneagramScorer{base: newBase(enneagramDefinition, opts)}
}

// Score implements Scorer.
func (s *EnneagramScorer) Score(answers AnswerSet) (*Result, error) {
	cleaned, err := s.prepare(answers)
	if err != nil {
		return nil, err
	}

	dims := s.tally(cleaned).scores(s.def.Dimensions)
	ranked := rank(s.def.Dimensions, dims)

	primary := enneagramNumber(ranked[0])
	wing := EnneagramWing(primary, dims)

	res := s.newResult(cleaned, dims)
	res.Type = primary
	res.Wing = wing
	res.Label = strconv.Itoa(primary)
	res.Secondary = fmt.Sprintf("%dw%d", primary, wing)

	gap := dims[ranked[0]] - dims[ranked[1]]
	conf := res.Confidence
	switch {
	case gap > enneagramClearGap:
		conf += enneagramGapAdjust
	case gap < enneagramAmbiguousGap:
		conf -= enneagramGapAdjust
	}
	res.Confidence = stats.Clamp(conf, enneagramMinConf, 1)
	res.Description = describe(Enneagram, res.Label)
	return res, nil
}

// EnneagramNeighbors returns the two types adjacent on the circle.
func EnneagramNeighbors(t int) (int, int) {
	prev, next := t-1, t+1
	if prev < 1 {
		prev = 9
	}
	if next > 9 {
		next = 1
	}
	return prev, next
}

// EnneagramWing is the higher-scoring neighbor of primary; ties go to the lower neighbor.
func EnneagramWing(primary int, dims map[string]float64) int {
	prev, next := EnneagramNeighbors(primary)
	ps, ns := valueOr(dims, enneagramKey(prev)), valueOr(dims, enneagramKey(next))
	switch {
	case ps > ns:
		return prev
	case ns > ps:
		return next
	case prev < next:
		return prev
	default:
		return next
	}
}

func enneagramKey(t int) string { return "type_" + strconv.Itoa(t) }

func enneagramNumber(key string) int {
	n, _ := strconv.Atoi(key[len("type_"):])
	return n
}
