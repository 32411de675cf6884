package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Answer is one cleaned question response.
type Answer struct {
	QuestionID string
	Position   int
	// Value is the answer normalized to [0,1]; meaningless when !Answered.
	Value    float64
	Answered bool
	// Pole is set when the raw answer was an MBTI preference letter.
	Pole string
}

// Preprocessor orders, coerces and range-checks raw answers.
type Preprocessor struct {
	minScale float64
	maxScale float64
	poles    map[string]bool
}

// NewPreprocessor creates a preprocessor for a closed answer scale.
func NewPreprocessor(minScale, maxScale float64) *Preprocessor {
	return &Preprocessor{minScale: minScale, maxScale: maxScale}
}

// WithPoles makes the preprocessor accept single preference letters.
func (p *Preprocessor) WithPoles(poles ...string) *Preprocessor {
	p.poles = make(map[string]bool, len(poles))
	for _, pole := range poles {
		p.poles[strings.ToUpper(pole)] = true
	}
	return p
}

// Process returns the answers in natural question-id order together with
// any per-question problems found.
func (p *Preprocessor) Process(answers AnswerSet) ([]Answer, map[string]string) {
	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return naturalLess(ids[i], ids[j]) })

	cleaned := make([]Answer, 0, len(ids))
	problems := make(map[string]string)

	for pos, id := range ids {
		a := Answer{QuestionID: id, Position: pos}

		raw, pole, answered, err := p.coerce(answers[id])
		if err != nil {
			problems[id] = err.Error()
			continue
		}

		switch {
		case pole != "":
			a.Pole = pole
			a.Answered = true
		case answered:
			if math.IsNaN(raw) || math.IsInf(raw, 0) {
				problems[id] = "answer is not a finite number"
				continue
			}
			if raw < p.minScale || raw > p.maxScale {
				problems[id] = fmt.Sprintf("answer %g outside scale %g-%g", raw, p.minScale, p.maxScale)
				continue
			}
			a.Value = p.normalize(raw)
			a.Answered = true
		}

		cleaned = append(cleaned, a)
	}

	return cleaned, problems
}

func (p *Preprocessor) normalize(raw float64) float64 {
	span := p.maxScale - p.minScale
	if span <= 0 {
		return neutral
	}
	return (raw - p.minScale) / span
}

// coerce turns a raw answer into a scale value or a pole letter.
func (p *Preprocessor) coerce(raw any) (value float64, pole string, answered bool, err error) {
	switch v := raw.(type) {
	case nil:
		return 0, "", false, nil
	case bool:
		if v {
			return p.maxScale, "", true, nil
		}
		return p.minScale, "", true, nil
	case float64:
		return v, "", true, nil
	case float32:
		return float64(v), "", true, nil
	case int:
		return float64(v), "", true, nil
	case int32:
		return float64(v), "", true, nil
	case int64:
		return float64(v), "", true, nil
	case uint:
		return float64(v), "", true, nil
	case json.Number:
		f, perr := v.Float64()
		if perr != nil {
			return 0, "", false, fmt.Errorf("unsupported answer %q", v.String())
		}
		return f, "", true, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, "", false, nil
		}
		if p.poles != nil && p.poles[strings.ToUpper(s)] {
			return 0, strings.ToUpper(s), true, nil
		}
		f, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			return 0, "", false, fmt.Errorf("unsupported answer %q", s)
		}
		return f, "", true, nil
	default:
		return 0, "", false, fmt.Errorf("unsupported answer type %T", raw)
	}
}

// naturalLess orders ids so that embedded numbers compare numerically ("q2" < "q10").
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		ca, ra := leadingChunk(a)
		cb, rb := leadingChunk(b)
		if ca != cb {
			if isDigit(ca[0]) && isDigit(cb[0]) {
				na, nb := strings.TrimLeft(ca, "0"), strings.TrimLeft(cb, "0")
				if len(na) != len(nb) {
					return len(na) < len(nb)
				}
				if na != nb {
					return na < nb
				}
				return len(ca) < len(cb)
			}
			return ca < cb
		}
		a, b = ra, rb
	}
	return len(a) < len(b)
}

func leadingChunk(s string) (string, string) {
	digits := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digits {
		i++
	}
	return s[:i], s[i:]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
