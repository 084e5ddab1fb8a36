package domain

// Sample is a single data point of a metric series. Value is nil when
// the API omitted it.
type Sample struct {
	Timestamp string
	Value     *float64
}

// MetricSeries is one item of a Cloudera Manager metrics response.
type MetricSeries struct {
	Name    string
	Context *string
	Unit    *string
	Samples []Sample
}

// Latest returns the last sample, assuming chronological order.
func (m MetricSeries) Latest() (Sample, bool) {
	if len(m.Samples) == 0 {
		return Sample{}, false
	}
	return m.Samples[len(m.Samples)-1], true
}

// KeyedSeries pairs a series with the result key it is reported under.
type KeyedSeries struct {
	Key    string
	Series MetricSeries
}

// MetricResult is the reduced latest value reported under Key. Name is
// the metric name before any context suffix was appended. Unit is a
// performance-data unit symbol or empty.
type MetricResult struct {
	Key   string
	Name  string
	Value float64
	Unit  string
}

// RequestedMetrics is the sorted set of metric names a check asked for,
// or All when every metric of the scope was requested.
type RequestedMetrics struct {
	Names []string
	All   bool
}

// Single reports whether exactly one metric was requested by name.
func (r RequestedMetrics) Single() bool {
	return !r.All && len(r.Names) == 1
}
