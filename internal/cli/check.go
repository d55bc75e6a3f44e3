package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nickromney/certcheck/internal/batch"
	"github.com/nickromney/certcheck/internal/check"
	"github.com/nickromney/certcheck/internal/config"
)

func addExpectationFlags(fs *pflag.FlagSet) {
	fs.String("serial", "", `Expected serial, e.g. "39:11:45:10:94"`)
	fs.String("subject", "", "Expected subject DN")
	fs.String("issuer", "", "Expected issuer DN")
	fs.String("signature-algorithm", "", `Expected signature algorithm, e.g. "RSA"`)
	fs.String("pubkey-algorithm", "", `Expected public key algorithm, e.g. "RSA"`)
	fs.Int("pubkey-size", 0, "Expected public key size in bits")
	fs.String("profile", "", "Named expectation profile from the config file")
}

func addValidityFlags(fs *pflag.FlagSet) {
	fs.Int("warn-days", 0, "WARNING when the certificate expires within N days")
	fs.Int("crit-days", 0, "CRITICAL when the certificate expires within N days")
}

// expectationsFrom layers flags (or CERTCHECK_* env) over the named profile.
// Keys that are set nowhere stay unchecked.
func expectationsFrom(v *viper.Viper, cfg config.Config) (check.Expectations, error) {
	b := check.NewExpectations()
	if name := v.GetString("profile"); name != "" {
		p, err := cfg.Profile(name)
		if err != nil {
			return check.Expectations{}, usageError(err.Error())
		}
		b = p.Builder()
	}

	strs := []struct {
		key string
		set func(*string) *check.Builder
	}{
		{"serial", b.Serial},
		{"subject", b.Subject},
		{"issuer", b.Issuer},
		{"signature-algorithm", b.SignatureAlgorithm},
		{"pubkey-algorithm", b.PublicKeyAlgorithm},
	}
	for _, s := range strs {
		if v.IsSet(s.key) {
			s.set(check.Ptr(v.GetString(s.key)))
		}
	}
	if v.IsSet("pubkey-size") {
		size := v.GetInt("pubkey-size")
		if size <= 0 {
			return check.Expectations{}, usageError("--pubkey-size must be positive")
		}
		b.PublicKeySize(&size)
	}
	return b.Build(), nil
}

func thresholdsFrom(v *viper.Viper, cfg config.Config) (check.Thresholds, error) {
	th := cfg.Validity.Thresholds()
	if v.IsSet("warn-days") {
		th.WarningDays = v.GetInt("warn-days")
	}
	if v.IsSet("crit-days") {
		th.CriticalDays = v.GetInt("crit-days")
	}
	if th.WarningDays < 0 || th.CriticalDays < 0 {
		return th, usageError("--warn-days and --crit-days must be >= 0")
	}
	return th, nil
}

func timeoutFrom(v *viper.Viper, cfg config.Config) time.Duration {
	if v.IsSet("timeout") {
		return v.GetDuration("timeout")
	}
	return cfg.Timeout
}

// checkOptions resolves everything batch.Options needs from flags, env and config.
func checkOptions(cmd *cobra.Command, v *viper.Viper, cfg config.Config) (batch.Options, error) {
	e, err := expectationsFrom(v, cfg)
	if err != nil {
		return batch.Options{}, err
	}
	th, err := thresholdsFrom(v, cfg)
	if err != nil {
		return batch.Options{}, err
	}
	password, err := resolvePassword(cmd, v)
	if err != nil {
		return batch.Options{}, err
	}
	return batch.Options{
		Jobs:         cfg.Jobs,
		Expectations: e,
		Thresholds:   th,
		Password:     password,
		Timeout:      timeoutFrom(v, cfg),
	}, nil
}

// sourceFrom returns the single source named by FILE or --host.
func sourceFrom(v *viper.Viper, args []string) (batch.Source, error) {
	host := v.GetString("host")
	switch {
	case host != "" && len(args) > 0:
		return batch.Source{}, usageError("give either FILE or --host, not both")
	case host != "":
		return batch.Source{Host: host, Port: v.GetInt("port")}, nil
	case len(args) == 1:
		return batch.Source{Path: args[0]}, nil
	}
	return batch.Source{}, usageError("certificate FILE or --host required")
}

func addSourceFlags(fs *pflag.FlagSet) {
	fs.String("host", "", "Fetch the certificate from a TLS endpoint instead of a file")
	fs.Int("port", 443, "TLS port used with --host")
	fs.String("server-name", "", "SNI server name used with --host (default: host)")
	fs.Duration("timeout", 0, "Connect and handshake timeout (default from config, 10s)")
}

func newCheckCmd(cfgFn func() (config.Config, error)) *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "check [FILE]",
		Short: "Check one certificate against expected values",
		Example: `  certcheck check igca.der --serial 39:11:45:10:94 --pubkey-size 2048
  certcheck check --host example.com --profile web --warn-days 30 --crit-days 7`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cfgFn()
			if err != nil {
				return err
			}
			src, err := sourceFrom(v, args)
			if err != nil {
				return err
			}
			opts, err := checkOptions(cmd, v, cfg)
			if err != nil {
				return err
			}
			opts.ServerName = v.GetString("server-name")

			item := batch.CheckOne(commandContext(cmd), src, opts)
			status("", item.Result.Severity(), item.Result.String())
			return severityExit(item.Result.Severity())
		},
	}
	fs := cmd.Flags()
	addSourceFlags(fs)
	addExpectationFlags(fs)
	addValidityFlags(fs)
	addPasswordFlags(fs)
	return cmd
}

func newShowCmd(cfgFn func() (config.Config, error)) *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "show [FILE]",
		Short: "Show the certificate fields that check compares",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cfgFn()
			if err != nil {
				return err
			}
			src, err := sourceFrom(v, args)
			if err != nil {
				return err
			}
			password, err := resolvePassword(cmd, v)
			if err != nil {
				return err
			}
			item := batch.CheckOne(commandContext(cmd), src, batch.Options{
				Password:   password,
				Timeout:    timeoutFrom(v, cfg),
				ServerName: v.GetString("server-name"),
			})
			if item.Fields == nil {
				return item.Result.Err
			}

			f := item.Fields
			kv("Source", src.Name())
			kv(check.FieldSerial.Label(), f.Serial)
			kv(check.FieldSubject.Label(), f.Subject)
			kv(check.FieldIssuer.Label(), f.Issuer)
			kv(check.FieldSignatureAlgorithm.Label(), f.SignatureAlgorithm)
			kv(check.FieldPublicKeyAlgorithm.Label(), f.PublicKeyAlgorithm)
			kv(check.FieldPublicKeySize.Label(), strconv.Itoa(f.PublicKeySize))
			kv("Not before", f.NotBefore.Format(check.DateLayout))
			kv("Not after", f.NotAfter.Format(check.DateLayout))
			return nil
		},
	}
	fs := cmd.Flags()
	addSourceFlags(fs)
	addPasswordFlags(fs)
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
