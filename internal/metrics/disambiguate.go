package metrics

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/magarciasopo/nagios-plugins/internal/domain"
)

// Disambiguate assigns a result key to every series that has at least
// one sample. When any metric name occurs more than once, every key is
// suffixed with its context, minus the active selector values, so that
// e.g. per-disk series of one metric stay distinct. A repeated name
// without a context cannot be told apart and is an ErrInternal.
func Disambiguate(series []domain.MetricSeries, active []string) ([]domain.KeyedSeries, error) {
	counts := make(map[string]int)
	for _, s := range series {
		if _, ok := s.Latest(); ok {
			counts[s.Name]++
		}
	}

	disambiguate := false
	for _, s := range series {
		if _, ok := s.Latest(); !ok || counts[s.Name] < 2 {
			continue
		}
		disambiguate = true
		if s.Context == nil {
			return nil, fmt.Errorf("%w: metric %q returned more than once without a context to tell them apart", domain.ErrInternal, s.Name)
		}
	}

	keyed := make([]domain.KeyedSeries, 0, len(series))
	for _, s := range series {
		if _, ok := s.Latest(); !ok {
			continue
		}
		key := s.Name
		if disambiguate && s.Context != nil {
			if suffix := StripContext(*s.Context, active); suffix != "" {
				key = s.Name + "_" + suffix
			}
		}
		keyed = append(keyed, domain.KeyedSeries{Key: key, Series: s})
	}
	return keyed, nil
}

// StripContext removes every occurrence of each active selector value,
// optionally followed by a colon, from context. Values are matched
// literally and longest first, so a service name that prefixes a role id
// cannot break the role id apart before it is stripped.
func StripContext(context string, active []string) string {
	values := slices.Clone(active)
	sort.SliceStable(values, func(i, j int) bool { return len(values[i]) > len(values[j]) })

	for _, v := range values {
		if v == "" {
			continue
		}
		re := regexp.MustCompile(regexp.QuoteMeta(v) + ":?")
		context = re.ReplaceAllString(context, "")
	}
	return strings.TrimSpace(context)
}
