package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/magarciasopo/nagios-plugins/internal/domain"

	"github.com/joho/godotenv"
)

// PasswordEnv lists the environment variables a password is read from.
var PasswordEnv = []string{"CLOUDERA_MANAGER_PASSWORD", "CM_PASSWORD", "PASSWORD"}

// LoadEnvFile loads KEY=value pairs from a dotenv file into the process
// environment. Variables that are already set are left untouched.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: failed to load env file %s: %v", domain.ErrUsage, path, err)
	}
	return nil
}

// FromEnv returns the first non-empty variable among names.
func FromEnv(names []string) (string, bool) {
	for _, name := range names {
		if v, ok := os.LookupEnv(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// Resolve returns the value of key from the environment, falling back to
// the loaded config. ok is false when neither provides one.
func Resolve(cfg *Config, key string) (string, bool) {
	spec := Lookup(key)
	if spec == nil {
		return "", false
	}
	if v, ok := FromEnv(spec.Env); ok {
		return v, true
	}
	if cfg != nil {
		if v := spec.Get(cfg); v != "" {
			return v, true
		}
	}
	return "", false
}

func validateSeconds(v string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 || n > 3600 {
		return "", fmt.Errorf("%w: invalid timeout %q (must be 1-3600 seconds)", domain.ErrUsage, v)
	}
	return strconv.Itoa(n), nil
}
