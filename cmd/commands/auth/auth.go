package auth

import (
	"fmt"
	"strings"

	"github.com/magarciasopo/nagios-plugins/internal/config"
	"github.com/magarciasopo/nagios-plugins/internal/services/auth"
	"github.com/magarciasopo/nagios-plugins/internal/util"

	"github.com/spf13/cobra"
)

// NewCommand returns the "auth" parent command. Passwords are kept in store.
func NewCommand(store auth.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage stored Cloudera Manager passwords",
		Long: `Manage stored Cloudera Manager passwords.

Passwords are saved in the OS keychain per user and host, so checks can
run without --password on the command line. A password given by flag or
environment variable always takes precedence.`,
	}

	cmd.AddCommand(LoginCommand(store))
	cmd.AddCommand(LogoutCommand(store))
	cmd.AddCommand(StatusCommand(store))

	return cmd
}

// addAccountFlags registers the flags identifying a keychain account.
func addAccountFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("host", "H", "", "Cloudera Manager host (defaults to the configured host)")
	cmd.Flags().StringP("user", "u", "", "Cloudera Manager user (defaults to the configured user)")
}

// accountFromFlags resolves the account the same way a check does: flag,
// then environment, then stored config.
func accountFromFlags(cmd *cobra.Command) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}

	host, _ := cmd.Flags().GetString("host")
	if strings.TrimSpace(host) == "" {
		host, _ = config.Resolve(cfg, "host")
	}
	host, err = util.ValidateHost(host)
	if err != nil {
		return "", err
	}

	user, _ := cmd.Flags().GetString("user")
	if strings.TrimSpace(user) == "" {
		user, _ = config.Resolve(cfg, "user")
	}
	if strings.TrimSpace(user) == "" {
		return "", fmt.Errorf("user not defined (use --user or config set user)")
	}

	return auth.Account(user, host), nil
}
