package auth

import (
	"errors"
	"fmt"

	"github.com/magarciasopo/nagios-plugins/internal/services/auth"

	"github.com/spf13/cobra"
)

func LogoutCommand(store auth.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove a stored password",
		Long: `Remove the password stored for a Cloudera Manager user.

Example:
  check_cloudera_manager_metrics auth logout -H cm.example.com -u admin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := accountFromFlags(cmd)
			if err != nil {
				return err
			}

			err = store.DeletePassword(account)
			switch {
			case err == nil:
				fmt.Fprintf(cmd.OutOrStdout(), "Removed password for %s\n", account)
			case errors.Is(err, auth.ErrPasswordNotFound):
				fmt.Fprintf(cmd.OutOrStdout(), "No password stored for %s\n", account)
			default:
				return err
			}
			return nil
		},
		SilenceUsage: true,
	}

	addAccountFlags(cmd)

	return cmd
}
