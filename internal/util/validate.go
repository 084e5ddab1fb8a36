package util

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"

	"github.com/magarciasopo/nagios-plugins/internal/domain"
)

var (
	clusterChars = regexp.MustCompile(`^[\w\s.-]+$`)
	wordDash     = regexp.MustCompile(`^[\w-]+$`)
	roleID       = regexp.MustCompile(`^[A-Za-z0-9-]+-[A-Za-z0-9-]+-[A-Za-z0-9-]+$`)
	metricName   = regexp.MustCompile(`^\w+$`)
	hostLabel    = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9_-]*[A-Za-z0-9])?$`)
)

// ValidateCluster trims and checks a cluster name. Cluster names may
// contain word characters, whitespace, periods and hyphens.
func ValidateCluster(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || !clusterChars.MatchString(name) {
		return "", fmt.Errorf("%w: invalid cluster name %q (only word characters, spaces, periods and hyphens are allowed)", domain.ErrUsage, name)
	}
	return name, nil
}

// ValidateService checks a service name.
func ValidateService(name string) (string, error) {
	return validateWordDash("service name", name)
}

// ValidateActivity checks an activity id.
func ValidateActivity(id string) (string, error) {
	return validateWordDash("activity id", id)
}

// ValidateNameservice checks an HDFS nameservice name.
func ValidateNameservice(name string) (string, error) {
	return validateWordDash("nameservice", name)
}

// ValidateRole checks a role id of the form service-ROLETYPE-id, e.g.
// hdfs-NAMENODE-3c4d5e.
func ValidateRole(id string) (string, error) {
	id = strings.TrimSpace(id)
	if !roleID.MatchString(id) {
		return "", fmt.Errorf("%w: invalid role id %q (expected <service>-<ROLETYPE>-<id>)", domain.ErrUsage, id)
	}
	return id, nil
}

// ValidateHostID checks a Cloudera Manager host id, which is either a
// UUID or a hostname.
func ValidateHostID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if !isHostname(id) {
		return "", fmt.Errorf("%w: invalid host id %q", domain.ErrUsage, id)
	}
	return id, nil
}

// ValidateHost checks the address of the Cloudera Manager server. Both
// IP addresses and RFC 1123 hostnames are accepted.
func ValidateHost(host string) (string, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return "", fmt.Errorf("%w: host not defined", domain.ErrUsage)
	}
	if net.ParseIP(host) != nil || isHostname(host) {
		return host, nil
	}
	return "", fmt.Errorf("%w: invalid host %q", domain.ErrUsage, host)
}

// ValidatePort checks a TCP port number.
func ValidatePort(port string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(port))
	if err != nil || n < 1 || n > 65535 {
		return 0, fmt.Errorf("%w: invalid port %q (must be 1-65535)", domain.ErrUsage, port)
	}
	return n, nil
}

// ValidateMetricName checks a single metric name. Metric names only
// contain alphanumerics and underscores.
func ValidateMetricName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if !metricName.MatchString(name) {
		return "", fmt.Errorf("%w: invalid metric %q (only alphanumerics and underscores are allowed)", domain.ErrUsage, name)
	}
	return name, nil
}

func validateWordDash(what, value string) (string, error) {
	value = strings.TrimSpace(value)
	if !wordDash.MatchString(value) {
		return "", fmt.Errorf("%w: invalid %s %q", domain.ErrUsage, what, value)
	}
	return value, nil
}

func isHostname(s string) bool {
	if len(s) == 0 || len(s) > 253 {
		return false
	}
	for _, label := range strings.Split(strings.TrimSuffix(s, "."), ".") {
		if len(label) > 63 || !hostLabel.MatchString(label) {
			return false
		}
	}
	return true
}
