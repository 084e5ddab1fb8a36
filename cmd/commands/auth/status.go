package auth

import (
	"errors"
	"fmt"

	"github.com/magarciasopo/nagios-plugins/internal/services/auth"

	"github.com/spf13/cobra"
)

func StatusCommand(store auth.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether a password is stored",
		Long: `Show whether a password is stored for a Cloudera Manager user.

Example:
  check_cloudera_manager_metrics auth status -H cm.example.com -u admin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := accountFromFlags(cmd)
			if err != nil {
				return err
			}

			_, err = store.GetPassword(account)
			switch {
			case err == nil:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: logged in\n", account)
			case errors.Is(err, auth.ErrPasswordNotFound):
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not logged in\n", account)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: error (%v)\n", account, err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	addAccountFlags(cmd)

	return cmd
}
