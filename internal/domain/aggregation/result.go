package aggregation

// Metric is a single-value aggregate. Value is nil when the store had nothing to aggregate
// (e.g. the average of zero documents).
type Metric struct {
	Value *float64
}

// Float returns the metric value, or 0 when absent.
func (m Metric) Float() float64 {
	if m.Value == nil {
		return 0
	}
	return *m.Value
}

// Bucket is one group of a terms aggregation with its nested metrics.
type Bucket struct {
	Key      string
	DocCount int64
	Metrics  map[string]Metric
}

// Result is the store-neutral output of a set of aggregation specs, keyed by spec name.
type Result struct {
	Metrics map[string]Metric
	Groups  map[string][]Bucket
}

// NewResult creates an empty Result.
func NewResult() Result {
	return Result{
		Metrics: make(map[string]Metric),
		Groups:  make(map[string][]Bucket),
	}
}

// Metric looks up a single-value aggregate by name.
func (r Result) Metric(name string) (Metric, bool) {
	m, ok := r.Metrics[name]
	return m, ok
}

// Group looks up the buckets of a terms aggregation by name.
func (r Result) Group(name string) ([]Bucket, bool) {
	b, ok := r.Groups[name]
	return b, ok
}

// Float64 returns a pointer to v, for building metrics.
func Float64(v float64) *float64 { return &v }
