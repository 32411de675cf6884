// Package outcome carries engine results together with an explicit marker
// for values that were substituted by a fail-safe path.
package outcome

// Outcome is either a genuinely computed Value or a predefined fallback.
type Outcome[T any] struct {
	Value    T      `json:"value"`
	Fallback bool   `json:"fallback"`
	Reason   string `json:"reason,omitempty"`
}

// Computed wraps a genuine result.
func Computed[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

// Fallback wraps a substituted result and the reason it was used.
func Fallback[T any](v T, reason string) Outcome[T] {
	return Outcome[T]{Value: v, Fallback: true, Reason: reason}
}
