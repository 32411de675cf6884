package scoring

// Mapping assigns a question to the dimension it measures. position is the
// question's index in natural question-id order. An empty return means the
// question feeds no dimension.
type Mapping interface {
	Dimension(questionID string, position int) string
}

// RoundRobin assigns question n to dimensions[n % len(dimensions)].
type RoundRobin []string

// Dimension implements Mapping.
func (r RoundRobin) Dimension(_ string, position int) string {
	if len(r) == 0 || position < 0 {
		return ""
	}
	return r[position%len(r)]
}

// TableMapping looks questions up in an explicit item table and defers to
// Fallback for ids it does not list.
type TableMapping struct {
	Items    map[string]string
	Fallback Mapping
}

// Dimension implements Mapping.
func (t TableMapping) Dimension(questionID string, position int) string {
	if dim, ok := t.Items[questionID]; ok {
		return dim
	}
	if t.Fallback != nil {
		return t.Fallback.Dimension(questionID, position)
	}
	return ""
}
