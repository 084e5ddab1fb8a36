// Package metrics resolves a Cloudera Manager metric query and reduces
// its response to a plugin report: scope selection, request building,
// response parsing, context disambiguation, reduction, thresholds and
// formatting.
package metrics

import (
	"fmt"
	"strings"

	"github.com/magarciasopo/nagios-plugins/internal/domain"
	"github.com/magarciasopo/nagios-plugins/internal/util"

	"github.com/sirupsen/logrus"
)

// SelectorInput holds the raw scope flags of a check.
type SelectorInput struct {
	Cluster     string
	Service     string
	Activity    string
	Nameservice string
	Role        string
	HostID      string
}

const selectorUsage = `must specify one of the following:
  --cluster + --service
  --cluster + --service + --activityId
  --cluster + --service + --nameservice
  --cluster + --service + --roleId
  --hostId`

// ResolveSelector validates the scope flags and returns the selector.
// When more than one sub-scope is given, activity wins over nameservice,
// which wins over role.
func ResolveSelector(in SelectorInput, log logrus.FieldLogger) (domain.Selector, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	clusterSet := strings.TrimSpace(in.Cluster) != ""
	serviceSet := strings.TrimSpace(in.Service) != ""
	activitySet := strings.TrimSpace(in.Activity) != ""
	nameserviceSet := strings.TrimSpace(in.Nameservice) != ""
	roleSet := strings.TrimSpace(in.Role) != ""

	if strings.TrimSpace(in.HostID) != "" {
		if clusterSet || serviceSet || activitySet || nameserviceSet || roleSet {
			return domain.Selector{}, fmt.Errorf("%w: --hostId cannot be combined with --cluster, --service, --activityId, --nameservice or --roleId", domain.ErrUsage)
		}
		hostID, err := util.ValidateHostID(in.HostID)
		if err != nil {
			return domain.Selector{}, err
		}
		log.WithField("hostId", hostID).Debug("host id accepted")
		return domain.Selector{Scope: domain.ScopeHost, HostID: hostID}, nil
	}

	if !clusterSet || !serviceSet {
		return domain.Selector{}, fmt.Errorf("%w: %s", domain.ErrUsage, selectorUsage)
	}

	sel := domain.Selector{Scope: domain.ScopeClusterService}
	var err error
	if sel.Cluster, err = util.ValidateCluster(in.Cluster); err != nil {
		return domain.Selector{}, err
	}
	log.WithField("cluster", sel.Cluster).Debug("cluster accepted")
	if sel.Service, err = util.ValidateService(in.Service); err != nil {
		return domain.Selector{}, err
	}
	log.WithField("service", sel.Service).Debug("service accepted")

	switch {
	case activitySet:
		if sel.Activity, err = util.ValidateActivity(in.Activity); err != nil {
			return domain.Selector{}, err
		}
		sel.Scope = domain.ScopeActivity
		log.WithField("activityId", sel.Activity).Debug("activity accepted")
	case nameserviceSet:
		if sel.Nameservice, err = util.ValidateNameservice(in.Nameservice); err != nil {
			return domain.Selector{}, err
		}
		sel.Scope = domain.ScopeNameservice
		log.WithField("nameservice", sel.Nameservice).Debug("nameservice accepted")
	case roleSet:
		if sel.Role, err = util.ValidateRole(in.Role); err != nil {
			return domain.Selector{}, err
		}
		sel.Scope = domain.ScopeRole
		log.WithField("roleId", sel.Role).Debug("role accepted")
	}

	if (activitySet && (nameserviceSet || roleSet)) || (nameserviceSet && roleSet) {
		log.WithField("scope", sel.Scope.String()).Warn("more than one of --activityId, --nameservice and --roleId given, using the first in that order")
	}

	return sel, nil
}
