package metrics

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/magarciasopo/nagios-plugins/internal/domain"
	"github.com/magarciasopo/nagios-plugins/internal/util"
)

// Request is an API resource plus query parameters.
type Request struct {
	Resource string
	Query    url.Values
}

func (r Request) String() string {
	if encoded := r.Query.Encode(); encoded != "" {
		return r.Resource + "?" + encoded
	}
	return r.Resource
}

// ParseMetricList turns the comma-separated --metrics value into a
// sorted, de-duplicated set. all and list are mutually exclusive, and
// one of them is required.
func ParseMetricList(list string, all bool) (domain.RequestedMetrics, error) {
	list = strings.TrimSpace(list)
	if all {
		if list != "" {
			return domain.RequestedMetrics{}, fmt.Errorf("%w: --metrics and --all-metrics are mutually exclusive", domain.ErrUsage)
		}
		return domain.RequestedMetrics{All: true}, nil
	}

	seen := make(map[string]struct{})
	var names []string
	for _, entry := range strings.Split(list, ",") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		name, err := util.ValidateMetricName(entry)
		if err != nil {
			return domain.RequestedMetrics{}, err
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	if len(names) == 0 {
		return domain.RequestedMetrics{}, fmt.Errorf("%w: no metrics specified (use --metrics or --all-metrics)", domain.ErrUsage)
	}

	sort.Strings(names)
	return domain.RequestedMetrics{Names: names}, nil
}

// BuildMetricsRequest returns the metric query for sel. fullView asks
// the API for the extended diagnostic view.
func BuildMetricsRequest(sel domain.Selector, req domain.RequestedMetrics, fullView bool) Request {
	query := url.Values{}
	if !req.All {
		for _, name := range req.Names {
			query.Add("metrics", name)
		}
	}
	if fullView {
		query.Set("view", "full")
	}
	return Request{Resource: sel.Path() + "/metrics", Query: query}
}

// BuildRoleListRequest returns the role listing query for the service
// of sel. Host selectors have no service and are rejected.
func BuildRoleListRequest(sel domain.Selector) (Request, error) {
	base := sel.ServicePath()
	if sel.Scope == domain.ScopeHost || base == "" {
		return Request{}, fmt.Errorf("%w: --list-roleIds requires --cluster and --service", domain.ErrUsage)
	}
	return Request{Resource: base + "/roles", Query: url.Values{}}, nil
}
