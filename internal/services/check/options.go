package check

import (
	"time"

	"github.com/magarciasopo/nagios-plugins/internal/domain"
	"github.com/magarciasopo/nagios-plugins/internal/metrics"
	"github.com/magarciasopo/nagios-plugins/internal/plugin"

	"github.com/sirupsen/logrus"
)

// Input holds the raw, unvalidated check flags.
type Input struct {
	Scope      metrics.SelectorInput
	Metrics    string
	AllMetrics bool
	ListRoles  bool
	Warning    string
	Critical   string
	Timeout    time.Duration
	Verbosity  int
}

// Options is the validated, immutable configuration of one check run.
type Options struct {
	Selector   domain.Selector
	Metrics    domain.RequestedMetrics
	Thresholds plugin.Thresholds
	ListRoles  bool
	FullView   bool
	Timeout    time.Duration
}

// fullViewVerbosity is the -v count at which the API's full view is requested.
const fullViewVerbosity = 3

// NewOptions validates in. Every failure wraps domain.ErrUsage.
func NewOptions(in Input, log logrus.FieldLogger) (Options, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	sel, err := metrics.ResolveSelector(in.Scope, log)
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Selector:  sel,
		ListRoles: in.ListRoles,
		FullView:  in.Verbosity >= fullViewVerbosity,
		Timeout:   in.Timeout,
	}
	if in.ListRoles {
		// Metric selection and thresholds are irrelevant when listing roles.
		if _, err := metrics.BuildRoleListRequest(sel); err != nil {
			return Options{}, err
		}
		return opts, nil
	}

	if opts.Metrics, err = metrics.ParseMetricList(in.Metrics, in.AllMetrics); err != nil {
		return Options{}, err
	}
	if opts.Thresholds, err = plugin.ParseThresholds(in.Warning, in.Critical); err != nil {
		return Options{}, err
	}
	if opts.Thresholds.IsSet() && !opts.Metrics.Single() {
		log.Warn("thresholds are only evaluated when a single metric is requested")
	}
	return opts, nil
}
