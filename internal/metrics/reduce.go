package metrics

import (
	"sort"

	"github.com/magarciasopo/nagios-plugins/internal/domain"

	"github.com/sirupsen/logrus"
)

// Reduce takes the latest sample of each keyed series and returns the
// results sorted by key. Series whose latest sample has no value are
// dropped. A later series with the same key replaces an earlier one.
func Reduce(keyed []domain.KeyedSeries, log logrus.FieldLogger) []domain.MetricResult {
	if log == nil {
		log = logrus.StandardLogger()
	}

	byKey := make(map[string]domain.MetricResult, len(keyed))
	for _, ks := range keyed {
		latest, ok := ks.Series.Latest()
		if !ok || latest.Value == nil {
			continue
		}

		result := domain.MetricResult{Key: ks.Key, Name: ks.Series.Name, Value: *latest.Value}
		fields := logrus.Fields{
			"name":  ks.Series.Name,
			"key":   ks.Key,
			"value": *latest.Value,
		}
		if ks.Series.Unit != nil {
			unit, ok := NormalizeUnit(*ks.Series.Unit)
			if ok {
				result.Unit = unit
			}
			fields["unit"] = *ks.Series.Unit
			fields["perfUnit"] = unit
			fields["unitRecognised"] = ok
		}
		log.WithFields(fields).Debug("metric reduced")

		byKey[ks.Key] = result
	}

	results := make([]domain.MetricResult, 0, len(byKey))
	for _, r := range byKey {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Key < results[j].Key })
	return results
}
