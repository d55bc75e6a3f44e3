package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	"github.com/nickromney/certcheck/internal/batch"
	"github.com/nickromney/certcheck/internal/check"
	"github.com/nickromney/certcheck/internal/config"
	"github.com/nickromney/certcheck/internal/metrics"
)

type jsonFinding struct {
	Field    string `json:"field"`
	Actual   string `json:"actual"`
	Expected string `json:"expected,omitempty"`
	Match    bool   `json:"match"`
}

type jsonItem struct {
	Source   string        `json:"source"`
	Severity string        `json:"severity"`
	ExitCode int           `json:"exit_code"`
	Status   string        `json:"status"`
	NotAfter *time.Time    `json:"not_after,omitempty"`
	Findings []jsonFinding `json:"findings,omitempty"`
	Error    string        `json:"error,omitempty"`
}

func toJSONItem(it batch.Item) jsonItem {
	out := jsonItem{
		Source:   it.Source.Name(),
		Severity: it.Result.Severity().String(),
		ExitCode: it.Result.ExitCode(),
		Status:   it.Result.String(),
	}
	if it.Result.Err != nil {
		out.Error = it.Result.Err.Error()
	}
	if it.Fields != nil {
		na := it.Fields.NotAfter
		out.NotAfter = &na
	}
	for _, f := range it.Result.Report.Findings {
		jf := jsonFinding{Field: f.Field.Label(), Actual: f.Actual, Match: f.Outcome == check.Matched}
		if !jf.Match {
			jf.Expected = f.Expected
		}
		out.Findings = append(out.Findings, jf)
	}
	return out
}

// runBatch parses sources and checks them with the command's options.
func runBatch(cmd *cobra.Command, v *viper.Viper, cfg config.Config, args []string) ([]batch.Item, error) {
	opts, err := checkOptions(cmd, v, cfg)
	if err != nil {
		return nil, err
	}
	if v.IsSet("jobs") {
		opts.Jobs = v.GetInt("jobs")
	}

	sources := make([]batch.Source, 0, len(args))
	for _, a := range args {
		src, err := batch.ParseSource(a)
		if err != nil {
			return nil, usageError(err.Error())
		}
		sources = append(sources, src)
	}
	items := batch.Run(commandContext(cmd), sources, opts)
	if err := batch.Errors(items); err != nil {
		klog.V(1).Infof("some sources could not be checked: %v", err)
	}
	return items, nil
}

func newBatchCmd(cfgFn func() (config.Config, error)) *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "batch SOURCE...",
		Short: "Check many certificates; exit with the worst severity",
		Long: "Each SOURCE is a certificate file or tls://host[:port]. One status line is " +
			"printed per source, prefixed with its name.",
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cfgFn()
			if err != nil {
				return err
			}
			items, err := runBatch(cmd, v, cfg, args)
			if err != nil {
				return err
			}

			if path := v.GetString("metrics-file"); path != "" {
				m := metrics.New()
				m.Record(items, time.Now())
				if err := m.WriteTextfile(path); err != nil {
					errMsg(fmt.Sprintf("write metrics: %v", err))
				} else {
					info("Metrics written to " + path)
				}
			}

			if v.GetBool("json") {
				out := make([]jsonItem, 0, len(items))
				for _, it := range items {
					out = append(out, toJSONItem(it))
				}
				enc := json.NewEncoder(outStdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(out); err != nil {
					return err
				}
			} else {
				for _, it := range items {
					status(it.Source.Name()+": ", it.Result.Severity(), it.Result.String())
				}
			}
			return severityExit(batch.Worst(items))
		},
	}
	fs := cmd.Flags()
	fs.Int("jobs", 0, "Sources checked in parallel (default from config, 4)")
	fs.String("metrics-file", "", "Write Prometheus textfile-collector metrics to this path")
	fs.Bool("json", false, "Print results as JSON")
	fs.Duration("timeout", 0, "Connect and handshake timeout per endpoint")
	addExpectationFlags(fs)
	addValidityFlags(fs)
	addPasswordFlags(fs)
	return cmd
}

func newBrowseCmd(cfgFn func() (config.Config, error), browse BrowseFunc) *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "browse SOURCE...",
		Short: "Check certificates and browse the results interactively",
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if browse == nil {
				return usageError("interactive browser not available")
			}
			if !isTerminalFn(os.Stdout) {
				return usageError("browse requires an interactive terminal; use batch instead")
			}
			cfg, err := cfgFn()
			if err != nil {
				return err
			}
			items, err := runBatch(cmd, v, cfg, args)
			if err != nil {
				return err
			}
			return browse(items, cfg)
		},
	}
	fs := cmd.Flags()
	fs.Int("jobs", 0, "Sources checked in parallel")
	fs.Duration("timeout", 0, "Connect and handshake timeout per endpoint")
	addExpectationFlags(fs)
	addValidityFlags(fs)
	addPasswordFlags(fs)
	return cmd
}
