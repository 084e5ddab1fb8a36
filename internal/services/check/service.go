// Package check runs one Cloudera Manager metrics check end to end and
// turns its outcome into a plugin result.
package check

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/magarciasopo/nagios-plugins/internal/cmapi"
	"github.com/magarciasopo/nagios-plugins/internal/domain"
	"github.com/magarciasopo/nagios-plugins/internal/metrics"
	"github.com/magarciasopo/nagios-plugins/internal/plugin"

	"github.com/sirupsen/logrus"
)

// Fetcher performs the single API request of a check.
type Fetcher interface {
	Get(ctx context.Context, resource string, query url.Values) (*cmapi.Response, error)
}

// Compile-time check that the API client satisfies Fetcher.
var _ Fetcher = (*cmapi.Client)(nil)

// Service runs checks against one Cloudera Manager.
type Service struct {
	client Fetcher
	log    logrus.FieldLogger
}

// NewService creates a check service.
func NewService(client Fetcher, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{client: client, log: log}
}

// Run executes the check described by opts. It never returns an error:
// every failure is already classified into the result.
func (s *Service) Run(ctx context.Context, opts Options) plugin.Result {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var (
		result plugin.Result
		err    error
	)
	if opts.ListRoles {
		result, err = s.listRoles(ctx, opts)
	} else {
		result, err = s.queryMetrics(ctx, opts)
	}

	if err != nil {
		if errors.Is(err, domain.ErrTimeout) {
			return plugin.Result{
				Status:  plugin.UNKNOWN,
				Message: fmt.Sprintf("self timed out after %d seconds", int(opts.Timeout.Seconds())),
			}
		}
		s.log.WithError(err).Debug("check failed")
		return plugin.FromError(err)
	}
	return result
}

func (s *Service) queryMetrics(ctx context.Context, opts Options) (plugin.Result, error) {
	req := metrics.BuildMetricsRequest(opts.Selector, opts.Metrics, opts.FullView)

	resp, err := s.client.Get(ctx, req.Resource, req.Query)
	if err != nil {
		return plugin.Result{}, err
	}
	series, err := metrics.ParseMetrics(resp)
	if err != nil {
		return plugin.Result{}, err
	}
	keyed, err := metrics.Disambiguate(series, opts.Selector.ActiveValues())
	if err != nil {
		return plugin.Result{}, err
	}

	results := metrics.Reduce(keyed, s.log)
	if len(results) == 0 && opts.Metrics.All {
		return plugin.Result{}, fmt.Errorf("%w: no metric values returned for %s", domain.ErrNoData, opts.Selector.Path())
	}

	report := metrics.NewReport(opts.Metrics, results)
	status := plugin.OK

	if opts.Thresholds.IsSet() {
		if st, value, ok := metrics.EvaluateThresholds(opts.Metrics, results, opts.Thresholds); ok {
			s.log.WithFields(logrus.Fields{
				"value":      value,
				"thresholds": opts.Thresholds.String(),
				"status":     plugin.StatusName(st),
			}).Info("thresholds evaluated")
			status = st
		}
	}

	if len(report.NotFound) > 0 {
		s.log.WithField("metrics", report.NotFound).Info("requested metrics not found")
		status = plugin.UNKNOWN
	}

	return plugin.Result{Status: status, Message: report.String()}, nil
}

func (s *Service) listRoles(ctx context.Context, opts Options) (plugin.Result, error) {
	req, err := metrics.BuildRoleListRequest(opts.Selector)
	if err != nil {
		return plugin.Result{}, err
	}

	resp, err := s.client.Get(ctx, req.Resource, req.Query)
	if err != nil {
		return plugin.Result{}, err
	}
	roles, err := metrics.ParseRoles(resp)
	if err != nil {
		return plugin.Result{}, err
	}

	listing := "<none>"
	if len(roles) > 0 {
		listing = strings.Join(roles, "\n")
	}
	return plugin.Result{
		Status:  plugin.UNKNOWN,
		Message: "Roles:\n\n" + listing,
		Raw:     true,
	}, nil
}
