package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nickromney/certcheck/internal/batch"
	"github.com/nickromney/certcheck/internal/check"
	"github.com/nickromney/certcheck/internal/cli"
	"github.com/nickromney/certcheck/internal/config"
	"github.com/nickromney/certcheck/internal/tui"
)

var (
	// Set via -ldflags at build time.
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	browse := func(items []batch.Item, cfg config.Config) error {
		m := tui.New(items, cfg)
		p := tea.NewProgram(m, tea.WithAltScreen())
		_, err := p.Run()
		return err
	}

	buildInfo := cli.BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}
	root := cli.NewRootCmd(browse, buildInfo)
	if err := root.Execute(); err != nil {
		code, silent, ok := cli.ExitCode(err)
		if !ok {
			code = check.Unknown.ExitCode()
		}
		if !silent && err.Error() != "" {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(code)
	}
}
