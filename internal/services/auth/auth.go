package auth

import (
	"errors"

	"github.com/magarciasopo/nagios-plugins/internal/util"
)

// ServiceName is the keychain service entries are stored under.
const ServiceName = "check_cloudera_manager_metrics"

var ErrPasswordNotFound = errors.New("password not found")

// Store keeps Cloudera Manager passwords per account.
type Store interface {
	SetPassword(account string, password string) error
	GetPassword(account string) (string, error)
	DeletePassword(account string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// Account returns the keychain account for a user on a Cloudera Manager
// host, e.g. "admin@cm.example.com".
func Account(user, host string) string {
	return util.NormalizeKey(user) + "@" + util.NormalizeKey(host)
}
