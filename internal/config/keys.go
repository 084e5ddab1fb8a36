package config

import (
	"fmt"
	"strings"

	"github.com/magarciasopo/nagios-plugins/internal/util"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "host").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Env lists the environment variables that override this key, in
	// order of precedence.
	Env []string

	// Validate checks and normalizes a value before it is stored. Nil
	// means any value is accepted as given.
	Validate func(value string) (string, error)

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "host",
		Description: "Cloudera Manager host used when --host is not specified",
		Env:         []string{"CLOUDERA_MANAGER_HOST", "CM_HOST", "HOST"},
		Validate:    util.ValidateHost,
		Get:         func(cfg *Config) string { return cfg.Host },
		Set:         func(cfg *Config, v string) { cfg.Host = v },
	},
	{
		Name:        "port",
		Description: "Cloudera Manager port used when --port is not specified",
		Env:         []string{"CLOUDERA_MANAGER_PORT", "CM_PORT"},
		Validate: func(v string) (string, error) {
			port, err := util.ValidatePort(v)
			if err != nil {
				return "", err
			}
			return fmt.Sprint(port), nil
		},
		Get: func(cfg *Config) string { return cfg.Port },
		Set: func(cfg *Config, v string) { cfg.Port = v },
	},
	{
		Name:        "user",
		Description: "User used when --user is not specified",
		Env:         []string{"CLOUDERA_MANAGER_USER", "CM_USER"},
		Get:         func(cfg *Config) string { return cfg.User },
		Set:         func(cfg *Config, v string) { cfg.User = v },
	},
	{
		Name:        "ssl-ca-path",
		Description: "CA certificate directory used when --ssl-CA-path is not specified",
		Env:         []string{"CLOUDERA_MANAGER_SSL_CA_PATH", "SSL_CA_PATH"},
		Get:         func(cfg *Config) string { return cfg.SSLCAPath },
		Set:         func(cfg *Config, v string) { cfg.SSLCAPath = v },
	},
	{
		Name:        "timeout",
		Description: "Timeout in seconds used when --timeout is not specified",
		Env:         []string{"CLOUDERA_MANAGER_TIMEOUT"},
		Validate:    validateSeconds,
		Get:         func(cfg *Config) string { return cfg.Timeout },
		Set:         func(cfg *Config, v string) { cfg.Timeout = v },
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := util.NormalizeKey(name)
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	// Find the longest key name for alignment.
	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
