package config

import (
	"github.com/magarciasopo/nagios-plugins/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage connection defaults",
		Long: "View and modify persistent connection defaults.\n\n" +
			"Configuration is stored at ~/.config/check_cloudera_manager_metrics/config.json.\n" +
			"Flags and environment variables take precedence over stored values.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
