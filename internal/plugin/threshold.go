package plugin

import (
	"fmt"
	"strings"

	"github.com/magarciasopo/nagios-plugins/internal/domain"

	"github.com/olorin/nagiosplugin"
)

// Thresholds holds the optional warning and critical ranges of a check.
// A nil range is never breached.
type Thresholds struct {
	Warning  *nagiosplugin.Range
	Critical *nagiosplugin.Range

	warningText  string
	criticalText string
}

// ParseThresholds parses Nagios range strings such as "10", "5:10",
// "~:10" or "@5:10". Empty strings leave the range unset.
func ParseThresholds(warning, critical string) (Thresholds, error) {
	var t Thresholds

	if s := strings.TrimSpace(warning); s != "" {
		r, err := nagiosplugin.ParseRange(s)
		if err != nil {
			return Thresholds{}, fmt.Errorf("%w: invalid warning threshold %q: %v", domain.ErrUsage, s, err)
		}
		t.Warning, t.warningText = r, s
	}

	if s := strings.TrimSpace(critical); s != "" {
		r, err := nagiosplugin.ParseRange(s)
		if err != nil {
			return Thresholds{}, fmt.Errorf("%w: invalid critical threshold %q: %v", domain.ErrUsage, s, err)
		}
		t.Critical, t.criticalText = r, s
	}

	return t, nil
}

// IsSet reports whether at least one range was given.
func (t Thresholds) IsSet() bool {
	return t.Warning != nil || t.Critical != nil
}

// Evaluate returns CRITICAL when value breaches the critical range,
// WARNING when it only breaches the warning range, and OK otherwise.
func (t Thresholds) Evaluate(value float64) Status {
	if t.Critical != nil && t.Critical.Check(value) {
		return CRITICAL
	}
	if t.Warning != nil && t.Warning.Check(value) {
		return WARNING
	}
	return OK
}

// String describes the configured ranges for verbose traces.
func (t Thresholds) String() string {
	return fmt.Sprintf("warning=%q critical=%q", t.warningText, t.criticalText)
}
