package domain

import (
	"net/url"
	"strings"
)

// Scope enumerates the mutually exclusive selector shapes.
type Scope int

const (
	// ScopeClusterService selects a whole service in a cluster.
	ScopeClusterService Scope = iota
	// ScopeActivity selects a service activity (e.g. a MapReduce job).
	ScopeActivity
	// ScopeNameservice selects an HDFS nameservice.
	ScopeNameservice
	// ScopeRole selects a single role instance of a service.
	ScopeRole
	// ScopeHost selects a host by its Cloudera Manager host id.
	ScopeHost
)

func (s Scope) String() string {
	switch s {
	case ScopeClusterService:
		return "cluster-service"
	case ScopeActivity:
		return "activity"
	case ScopeNameservice:
		return "nameservice"
	case ScopeRole:
		return "role"
	case ScopeHost:
		return "host"
	default:
		return "unknown"
	}
}

// Selector identifies the metric scope of one check. Build it through
// metrics.ResolveSelector; the zero value is not meaningful.
type Selector struct {
	Scope       Scope
	Cluster     string
	Service     string
	Activity    string
	Nameservice string
	Role        string
	HostID      string
}

// Path returns the API resource path for the selected scope, with each
// user-supplied segment escaped.
func (s Selector) Path() string {
	if s.Scope == ScopeHost {
		return "hosts/" + url.PathEscape(s.HostID)
	}

	path := s.ServicePath()
	switch s.Scope {
	case ScopeActivity:
		path += "/activities/" + url.PathEscape(s.Activity)
	case ScopeNameservice:
		path += "/nameservices/" + url.PathEscape(s.Nameservice)
	case ScopeRole:
		path += "/roles/" + url.PathEscape(s.Role)
	}
	return path
}

// ServicePath returns the clusters/{cluster}/services/{service} base, or
// an empty string for host selectors.
func (s Selector) ServicePath() string {
	if s.Cluster == "" || s.Service == "" {
		return ""
	}
	return "clusters/" + url.PathEscape(s.Cluster) + "/services/" + url.PathEscape(s.Service)
}

// ActiveValues returns the non-empty selector values: host id, cluster,
// service, role, activity, nameservice.
func (s Selector) ActiveValues() []string {
	candidates := []string{s.HostID, s.Cluster, s.Service, s.Role, s.Activity, s.Nameservice}
	values := make([]string, 0, len(candidates))
	for _, v := range candidates {
		if strings.TrimSpace(v) != "" {
			values = append(values, v)
		}
	}
	return values
}
