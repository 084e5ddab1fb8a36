package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/magarciasopo/nagios-plugins/internal/cmapi"
	"github.com/magarciasopo/nagios-plugins/internal/config"
	"github.com/magarciasopo/nagios-plugins/internal/domain"
	"github.com/magarciasopo/nagios-plugins/internal/metrics"
	"github.com/magarciasopo/nagios-plugins/internal/plugin"
	"github.com/magarciasopo/nagios-plugins/internal/services/auth"
	"github.com/magarciasopo/nagios-plugins/internal/services/check"
	"github.com/magarciasopo/nagios-plugins/internal/util"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultTimeoutSeconds = 10

func addCheckFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	f.StringP("host", "H", "", "Cloudera Manager host ($CLOUDERA_MANAGER_HOST, $HOST)")
	f.IntP("port", "P", cmapi.DefaultPort, "Cloudera Manager port, 7183 when TLS is enabled ($CLOUDERA_MANAGER_PORT)")
	f.StringP("user", "u", "", "Cloudera Manager user ($CLOUDERA_MANAGER_USER)")
	f.StringP("password", "p", "", "Cloudera Manager password ($CLOUDERA_MANAGER_PASSWORD, $PASSWORD, or auth login)")
	f.BoolP("ssl", "S", false, "Use TLS")
	f.String("ssl-CA-path", "", "Directory of CA certificates to trust, implies --ssl")
	f.Bool("ssl-noverify", false, "Do not verify the server certificate, implies --ssl")

	f.StringP("metrics", "m", "", "Metric(s) to fetch, comma separated")
	f.BoolP("all-metrics", "a", false, "Fetch all metrics for the given scope")
	f.StringP("cluster", "C", "", "Cluster name")
	f.StringP("service", "s", "", "Service name")
	f.StringP("hostId", "I", "", "Host id")
	f.String("activityId", "", "Activity id")
	f.StringP("nameservice", "N", "", "Nameservice")
	f.StringP("roleId", "r", "", "Role id")
	f.BoolP("list-roleIds", "l", false, "List role ids for the given cluster service")

	f.StringP("warning", "w", "", "Warning threshold or ran:ge (single metric only)")
	f.StringP("critical", "c", "", "Critical threshold or ran:ge (single metric only)")
	f.IntP("timeout", "t", defaultTimeoutSeconds, "Timeout in seconds ($CLOUDERA_MANAGER_TIMEOUT)")
	f.CountP("verbose", "v", "Verbose mode, repeat for more detail (-vvv also requests the full API view)")
	f.String("env-file", "", "Load environment variables from a dotenv file")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", domain.ErrUsage, err)
	})
}

func (a *app) runCheck(cmd *cobra.Command, _ []string) error {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	log := newLogger(cmd.ErrOrStderr(), verbosity)

	result := a.check(cmd, verbosity, log)
	a.result = &result
	return nil
}

func (a *app) check(cmd *cobra.Command, verbosity int, log *logrus.Logger) plugin.Result {
	if envFile, _ := cmd.Flags().GetString("env-file"); envFile != "" {
		if err := config.LoadEnvFile(envFile); err != nil {
			return plugin.FromError(err)
		}
		log.WithField("path", envFile).Debug("loaded env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Warn("ignoring unreadable config file")
		cfg = &config.Config{}
	}

	connection, timeout, err := a.connectionOptions(cmd, cfg, log)
	if err != nil {
		return plugin.FromError(err)
	}

	in := check.Input{
		Scope: metrics.SelectorInput{
			Cluster:     stringFlag(cmd, "cluster"),
			Service:     stringFlag(cmd, "service"),
			Activity:    stringFlag(cmd, "activityId"),
			Nameservice: stringFlag(cmd, "nameservice"),
			Role:        stringFlag(cmd, "roleId"),
			HostID:      stringFlag(cmd, "hostId"),
		},
		Metrics:   stringFlag(cmd, "metrics"),
		Warning:   stringFlag(cmd, "warning"),
		Critical:  stringFlag(cmd, "critical"),
		Timeout:   timeout,
		Verbosity: verbosity,
	}
	in.AllMetrics, _ = cmd.Flags().GetBool("all-metrics")
	in.ListRoles, _ = cmd.Flags().GetBool("list-roleIds")

	opts, err := check.NewOptions(in, log)
	if err != nil {
		return plugin.FromError(err)
	}

	client, err := cmapi.NewClient(connection, log)
	if err != nil {
		return plugin.FromError(err)
	}

	return check.NewService(client, log).Run(cmd.Context(), opts)
}

// connectionOptions resolves where and how to connect. Each setting comes
// from its flag when given, then the environment, then the config file,
// then the built-in default.
func (a *app) connectionOptions(cmd *cobra.Command, cfg *config.Config, log logrus.FieldLogger) (cmapi.Options, time.Duration, error) {
	var opts cmapi.Options

	host, err := setting(cmd, cfg, "host", "host")
	if err != nil {
		return opts, 0, err
	}
	if opts.Host, err = util.ValidateHost(host); err != nil {
		return opts, 0, err
	}

	opts.CAPath, err = setting(cmd, cfg, "ssl-CA-path", "ssl-ca-path")
	if err != nil {
		return opts, 0, err
	}
	ssl, _ := cmd.Flags().GetBool("ssl")
	opts.TLSNoVerify, _ = cmd.Flags().GetBool("ssl-noverify")
	opts.TLS = ssl || opts.CAPath != "" || opts.TLSNoVerify

	port, err := setting(cmd, cfg, "port", "port")
	if err != nil {
		return opts, 0, err
	}
	opts.Port = cmapi.DefaultPort
	if port != "" {
		if opts.Port, err = util.ValidatePort(port); err != nil {
			return opts, 0, err
		}
	}
	if opts.TLS && opts.Port == cmapi.DefaultPort {
		opts.Port = cmapi.DefaultTLSPort
	}

	if opts.User, err = setting(cmd, cfg, "user", "user"); err != nil {
		return opts, 0, err
	}
	if opts.User == "" {
		return opts, 0, fmt.Errorf("%w: user not defined", domain.ErrUsage)
	}

	if opts.Password, err = a.password(cmd, opts.User, opts.Host, log); err != nil {
		return opts, 0, err
	}

	seconds := defaultTimeoutSeconds
	timeout, err := setting(cmd, cfg, "timeout", "timeout")
	if err != nil {
		return opts, 0, err
	}
	if timeout != "" {
		if seconds, err = strconv.Atoi(timeout); err != nil || seconds < 1 {
			return opts, 0, fmt.Errorf("%w: invalid timeout %q", domain.ErrUsage, timeout)
		}
	}
	opts.Timeout = time.Duration(seconds) * time.Second

	log.WithFields(logrus.Fields{
		"host":    opts.Host,
		"port":    opts.Port,
		"user":    opts.User,
		"tls":     opts.TLS,
		"timeout": opts.Timeout.String(),
	}).Debug("connection resolved")

	return opts, opts.Timeout, nil
}

// setting returns the value for a flag, falling back to the environment
// and config key. Values are validated by the key's validator; an empty
// string means nothing was provided.
func setting(cmd *cobra.Command, cfg *config.Config, flag, key string) (string, error) {
	var value string
	if cmd.Flags().Changed(flag) {
		value = strings.TrimSpace(cmd.Flags().Lookup(flag).Value.String())
	} else if v, ok := config.Resolve(cfg, key); ok {
		value = v
	}
	if value == "" {
		return "", nil
	}
	if spec := config.Lookup(key); spec != nil && spec.Validate != nil {
		return spec.Validate(value)
	}
	return value, nil
}

// password resolves the password from its flag, the environment or the
// keychain, in that order.
func (a *app) password(cmd *cobra.Command, user, host string, log logrus.FieldLogger) (string, error) {
	if cmd.Flags().Changed("password") {
		return cmd.Flags().GetString("password")
	}
	if v, ok := config.FromEnv(config.PasswordEnv); ok {
		return v, nil
	}
	if a.store != nil {
		account := auth.Account(user, host)
		password, err := a.store.GetPassword(account)
		switch {
		case err == nil:
			log.WithField("account", account).Debug("using stored password")
			return password, nil
		case !errors.Is(err, auth.ErrPasswordNotFound):
			log.WithError(err).Warn("keychain unavailable")
		}
	}
	return "", fmt.Errorf("%w: password not defined (use --password, $CLOUDERA_MANAGER_PASSWORD or auth login)", domain.ErrUsage)
}

func stringFlag(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

// newLogger returns a logger writing to w at the level for the -v count.
func newLogger(w io.Writer, verbosity int) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	switch {
	case verbosity >= 3:
		log.SetLevel(logrus.TraceLevel)
	case verbosity == 2:
		log.SetLevel(logrus.DebugLevel)
	case verbosity == 1:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}
