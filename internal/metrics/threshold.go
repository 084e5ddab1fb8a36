package metrics

import (
	"github.com/magarciasopo/nagios-plugins/internal/domain"
	"github.com/magarciasopo/nagios-plugins/internal/plugin"
)

// ThresholdValue returns the value thresholds are checked against: the
// only result of a single requested metric, or the maximum across its
// contextual results. ok is false when more than one metric (or all
// metrics) was requested, or when there is nothing to compare.
//
// Thresholding several independent metrics at once is not supported.
func ThresholdValue(req domain.RequestedMetrics, results []domain.MetricResult) (value float64, ok bool) {
	if !req.Single() || len(results) == 0 {
		return 0, false
	}
	value = results[0].Value
	for _, r := range results[1:] {
		if r.Value > value {
			value = r.Value
		}
	}
	return value, true
}

// EvaluateThresholds checks the threshold value against t. evaluated is
// false when ThresholdValue declines.
func EvaluateThresholds(req domain.RequestedMetrics, results []domain.MetricResult, t plugin.Thresholds) (status plugin.Status, value float64, evaluated bool) {
	value, ok := ThresholdValue(req, results)
	if !ok {
		return plugin.OK, 0, false
	}
	return t.Evaluate(value), value, true
}
