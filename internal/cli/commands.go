package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nickromney/certcheck/internal/batch"
	"github.com/nickromney/certcheck/internal/config"
	"github.com/nickromney/certcheck/internal/logger"
)

type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// BrowseFunc runs the interactive results browser.
type BrowseFunc func(items []batch.Item, cfg config.Config) error

const envPrefix = "CERTCHECK"

// NewRootCmd creates the cobra root command with all subcommands.
// browse is nil when no terminal UI is available.
func NewRootCmd(browse BrowseFunc, buildInfo BuildInfo) *cobra.Command {
	var (
		noColor    bool
		ascii      bool
		quiet      bool
		configPath string
	)

	root := &cobra.Command{
		Use:   "certcheck",
		Short: "Certificate compliance checker for monitoring systems",
		Long: "certcheck compares the fields of an X.509 certificate (serial, subject, issuer, " +
			"signature and public key algorithm, key size) against expected values and prints a " +
			"single status line with a monitoring-plugin exit code: 0 OK, 1 WARNING, 2 CRITICAL, 3 UNKNOWN.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setOutputOptions(nil, nil, outputOptions{
				color:   !noColor && colorEnabled(),
				unicode: !ascii,
				quiet:   quiet,
			})
			logger.Setup(cmd.Flags().Changed("v"))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&noColor, "no-color", false, "Disable ANSI colors")
	pf.BoolVar(&ascii, "ascii", false, "Use ASCII status glyphs")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Suppress informational messages")
	pf.StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/certcheck/config.yml)")
	logger.InitKlogFlags(pf)

	cfgFn := func() (config.Config, error) { return loadConfig(configPath) }

	root.AddCommand(
		newCheckCmd(cfgFn),
		newShowCmd(cfgFn),
		newBatchCmd(cfgFn),
		newBrowseCmd(cfgFn, browse),
		newVersionCmd(buildInfo),
	)

	return root
}

func newVersionCmd(buildInfo BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(outStdout, "certcheck %s\n", buildInfo.Version)
			fmt.Fprintf(outStdout, "build_time: %s\n", buildInfo.BuildTime)
			fmt.Fprintf(outStdout, "git_commit: %s\n", buildInfo.GitCommit)
		},
	}
}

func loadConfig(path string) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if strings.TrimSpace(path) == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFile(path)
	}
	if err != nil {
		return cfg, usageError(err.Error())
	}
	return cfg, nil
}

// newViper returns a per-command viper that reads CERTCHECK_* environment
// variables for the command's flags, e.g. CERTCHECK_PUBKEY_SIZE.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	return nil
}
