package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/magarciasopo/nagios-plugins/cmd/commands/auth"
	cfgcmd "github.com/magarciasopo/nagios-plugins/cmd/commands/config"
	"github.com/magarciasopo/nagios-plugins/internal/domain"
	"github.com/magarciasopo/nagios-plugins/internal/plugin"
	authstore "github.com/magarciasopo/nagios-plugins/internal/services/auth"

	"github.com/spf13/cobra"
)

// app carries the collaborators of one invocation and the result of the
// check, if one ran.
type app struct {
	store  authstore.Store
	result *plugin.Result
}

// rootCmd represents the check itself; config and auth are helpers for
// setting connection defaults.
func (a *app) rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "check_cloudera_manager_metrics",
		Short: "Nagios plugin checking Cloudera Manager metrics",
		Long: `Checks one or more metrics via the Cloudera Manager REST API.

Metrics are fetched for a cluster service, a service activity, an HDFS
nameservice, a role or a host. The latest value of each metric is shown
and returned as performance data. Warning and critical thresholds are
applied when exactly one metric is requested; if that metric fans out
into several contexts (e.g. one per disk), the highest value is checked.

Metric names can be found in the Cloudera Manager charts or the API's
timeseries schema. Use --list-roleIds to find role ids for --roleId.

Examples:
  check_cloudera_manager_metrics -H cm -u admin -p admin -C "Cluster 1" -s hdfs -m dfs_capacity
  check_cloudera_manager_metrics -H cm -u admin -C "Cluster 1" -s hdfs -m write_ios -w 100 -c 500
  check_cloudera_manager_metrics -H cm -u admin -I 8f3a2c1e-1b2c-4d5e-8f90-123456789abc -a
  check_cloudera_manager_metrics -H cm -u admin -C "Cluster 1" -s hdfs --list-roleIds`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          a.runCheck,
	}

	addCheckFlags(cmd)

	cmd.AddCommand(auth.NewCommand(a.store))
	cmd.AddCommand(cfgcmd.NewCommand())

	return cmd
}

// execute runs the command line and returns the process exit code.
func (a *app) execute(args []string, stdout, stderr io.Writer) int {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteC()
	if a.result != nil {
		a.result.Write(stdout)
		return a.result.ExitCode()
	}
	if err == nil {
		return 0
	}
	if cmd == root {
		// Flag errors on the check itself still honour the plugin exit codes.
		if !errors.Is(err, domain.ErrUsage) {
			err = fmt.Errorf("%w: %v", domain.ErrUsage, err)
		}
		result := plugin.FromError(err)
		result.Write(stdout)
		return result.ExitCode()
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

// Execute runs the plugin and exits with its status code. This is called
// by main.main().
func Execute() {
	a := &app{store: authstore.DefaultStore()}
	os.Exit(a.execute(os.Args[1:], os.Stdout, os.Stderr))
}
