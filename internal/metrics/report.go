package metrics

import (
	"strconv"
	"strings"

	"github.com/magarciasopo/nagios-plugins/internal/domain"
)

// Report is the formatted outcome of a metric query.
type Report struct {
	// Results must be sorted by key.
	Results []domain.MetricResult
	// NotFound lists requested metric names without any result.
	NotFound []string
}

// NewReport pairs results with the requested names that produced none.
func NewReport(req domain.RequestedMetrics, results []domain.MetricResult) Report {
	return Report{Results: results, NotFound: MissingMetrics(req, results)}
}

// MissingMetrics returns the requested names, in request order, that
// have no result. Names compare case-sensitively against the metric
// name before any context suffix.
func MissingMetrics(req domain.RequestedMetrics, results []domain.MetricResult) []string {
	if req.All {
		return nil
	}
	found := make(map[string]struct{}, len(results))
	for _, r := range results {
		found[r.Name] = struct{}{}
	}
	var missing []string
	for _, name := range req.Names {
		if _, ok := found[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// String renders "[Metrics not found: a,b. ]k1=v1 k2=v2 | k1=v1 k2=v2".
func (r Report) String() string {
	var b strings.Builder
	if len(r.NotFound) > 0 {
		b.WriteString("Metrics not found: ")
		b.WriteString(strings.Join(r.NotFound, ","))
		b.WriteString(".")
		if len(r.Results) == 0 {
			return b.String()
		}
		b.WriteString(" ")
	}

	pairs := make([]string, len(r.Results))
	for i, res := range r.Results {
		pairs[i] = res.Key + "=" + FormatValue(res.Value) + res.Unit
	}
	data := strings.Join(pairs, " ")
	b.WriteString(data)
	b.WriteString(" | ")
	b.WriteString(data)
	return b.String()
}

// FormatValue renders v with the fewest digits that represent it exactly.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
