/*
Package logger wires klog for certcheck.

Verbosity levels:

	0: never used for diagnostics; stdout carries the status line only.
	1: per-source progress (which file or host is being checked).
	2: everything else (timings, config resolution).

Diagnostics are discarded unless -v is given. Functions that return an
error do not also log it.
*/
package logger

import (
	"flag"
	"strconv"
	"sync"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

var lock sync.Mutex

// InitKlogFlags registers klog's -v flag on the given flag set.
func InitKlogFlags(flags *pflag.FlagSet) {
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)

	klogFlags.VisitAll(func(f *flag.Flag) {
		if f.Name == "v" {
			flags.AddGoFlag(f)
		}
	})
}

// InitKlog sets klog verbosity directly, for tests and library callers.
func InitKlog(verbosity int) {
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	_ = klogFlags.Set("v", strconv.Itoa(verbosity))
}

// Setup enables klog output only when verbose logging was requested.
func Setup(verbose bool) {
	SetQuiet(!verbose)
}

// SetQuiet enables or disables klog output.
func SetQuiet(quiet bool) {
	lock.Lock()
	defer lock.Unlock()

	if quiet {
		klog.SetLogger(logr.Discard())
	} else {
		klog.ClearLogger()
	}
}
