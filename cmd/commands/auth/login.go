package auth

import (
	"fmt"
	"os"
	"strings"

	"github.com/magarciasopo/nagios-plugins/internal/services/auth"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func LoginCommand(store auth.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a password for a Cloudera Manager user",
		Long: `Store a password for a Cloudera Manager user using the local keychain.

Example:
  check_cloudera_manager_metrics auth login -H cm.example.com -u admin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := accountFromFlags(cmd)
			if err != nil {
				return err
			}

			password, err := cmd.Flags().GetString("password")
			if err != nil {
				return err
			}

			if password == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Enter password for %s: ", account)
				bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				password = strings.TrimRight(string(bytes), "\r\n")
			}

			if password == "" {
				return fmt.Errorf("password cannot be empty")
			}

			if err := store.SetPassword(account, password); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved password for %s\n", account)
			return nil
		},
		SilenceUsage: true,
	}

	addAccountFlags(cmd)
	cmd.Flags().StringP("password", "p", "", "Password (optional, overrides prompt)")

	return cmd
}
