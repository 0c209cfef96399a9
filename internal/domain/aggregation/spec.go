package aggregation

import "fmt"

// MaxBuckets is the upper bound for the bucket count of a terms grouping.
const MaxBuckets = 1000

// Kind identifies the aggregation function.
type Kind string

const (
	// KindSum sums a numeric field.
	KindSum Kind = "sum"
	// KindAvg averages a numeric field.
	KindAvg Kind = "avg"
	// KindTerms groups documents by the distinct values of a field.
	KindTerms Kind = "terms"
)

// Direction is the bucket sort direction.
type Direction string

const (
	// Desc sorts buckets from the largest metric value down.
	Desc Direction = "desc"
	// Asc sorts buckets from the smallest metric value up.
	Asc Direction = "asc"
)

// Spec is a declarative, named aggregation: either a single-value metric over a field
// or a terms grouping with nested metrics.
type Spec struct {
	name      string
	kind      Kind
	field     string
	size      int
	orderBy   string
	direction Direction
	sub       []Spec
}

// NewSum creates a sum metric.
func NewSum(name, field string) (Spec, error) {
	return newMetric(name, KindSum, field)
}

// NewAvg creates an average metric.
func NewAvg(name, field string) (Spec, error) {
	return newMetric(name, KindAvg, field)
}

func newMetric(name string, kind Kind, field string) (Spec, error) {
	if name == "" {
		return Spec{}, fmt.Errorf("aggregation name is required")
	}
	if field == "" {
		return Spec{}, fmt.Errorf("field is required for %s aggregation %q", kind, name)
	}
	return Spec{name: name, kind: kind, field: field}, nil
}

// NewTerms creates a terms grouping returning at most size buckets. When orderBy is
// non-empty it must name one of the nested metrics, and buckets are sorted by it.
// An empty orderBy leaves bucket order to the store (document count, descending).
func NewTerms(name, field string, size int, orderBy string, dir Direction, sub ...Spec) (Spec, error) {
	if name == "" {
		return Spec{}, fmt.Errorf("aggregation name is required")
	}
	if field == "" {
		return Spec{}, fmt.Errorf("field is required for terms aggregation %q", name)
	}
	if size <= 0 || size > MaxBuckets {
		return Spec{}, fmt.Errorf("terms aggregation %q: size must be between 1 and %d, got %d",
			name, MaxBuckets, size)
	}
	switch dir {
	case Desc, Asc:
	case "":
		dir = Desc
	default:
		return Spec{}, fmt.Errorf("terms aggregation %q: unknown direction %q", name, dir)
	}

	seen := make(map[string]bool, len(sub))
	for _, s := range sub {
		if !s.IsMetric() {
			return Spec{}, fmt.Errorf("terms aggregation %q: nested %q must be a metric", name, s.name)
		}
		if seen[s.name] {
			return Spec{}, fmt.Errorf("terms aggregation %q: duplicate nested name %q", name, s.name)
		}
		seen[s.name] = true
	}
	if orderBy != "" && !seen[orderBy] {
		return Spec{}, fmt.Errorf("terms aggregation %q: order metric %q is not a nested aggregation",
			name, orderBy)
	}

	nested := make([]Spec, len(sub))
	copy(nested, sub)

	return Spec{
		name:      name,
		kind:      KindTerms,
		field:     field,
		size:      size,
		orderBy:   orderBy,
		direction: dir,
		sub:       nested,
	}, nil
}

// Name returns the aggregation name used as the result key.
func (s Spec) Name() string { return s.name }

// Kind returns the aggregation function.
func (s Spec) Kind() Kind { return s.kind }

// Field returns the aggregated field.
func (s Spec) Field() string { return s.field }

// Size returns the maximum bucket count (terms only).
func (s Spec) Size() int { return s.size }

// OrderBy returns the nested metric used for bucket ordering, or "".
func (s Spec) OrderBy() string { return s.orderBy }

// Direction returns the bucket sort direction (terms only).
func (s Spec) Direction() Direction { return s.direction }

// Sub returns a copy of the nested metrics.
func (s Spec) Sub() []Spec {
	out := make([]Spec, len(s.sub))
	copy(out, s.sub)
	return out
}

// IsMetric reports whether the spec yields a single value.
func (s Spec) IsMetric() bool { return s.kind == KindSum || s.kind == KindAvg }
