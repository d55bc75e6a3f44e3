// Package batch checks many certificates concurrently.
package batch

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/nickromney/certcheck/internal/cert"
	"github.com/nickromney/certcheck/internal/check"
	"github.com/nickromney/certcheck/internal/fetch"
	"github.com/nickromney/certcheck/internal/monitor"
)

// Source is one certificate to check: either a local file or a TLS endpoint.
type Source struct {
	Path string
	Host string
	Port int
}

// ParseSource interprets "tls://host[:port]" as an endpoint (port 443 when omitted)
// and anything else as a file path. IPv6 hosts use brackets, e.g. "tls://[::1]:8443".
func ParseSource(s string) (Source, error) {
	rest, ok := strings.CutPrefix(s, "tls://")
	if !ok {
		return Source{Path: s}, nil
	}

	host, port, err := net.SplitHostPort(rest)
	if err != nil {
		host = strings.TrimSuffix(strings.TrimPrefix(rest, "["), "]")
		port = "443"
	}
	if host == "" {
		return Source{}, fmt.Errorf("source %q: missing host", s)
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 1 || p > 65535 {
		return Source{}, fmt.Errorf("source %q: port must be a number between 1 and 65535", s)
	}
	return Source{Host: host, Port: p}, nil
}

// Name identifies the source in output lines and metric labels.
func (s Source) Name() string {
	if s.Host != "" {
		return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
	}
	return s.Path
}

// Loader returns the certificate bytes for a source.
type Loader func(ctx context.Context, s Source) ([]byte, error)

// Options for Run. Zero values get defaults.
type Options struct {
	Jobs         int
	Expectations check.Expectations
	Thresholds   check.Thresholds
	Password     string
	Timeout      time.Duration
	ServerName   string // SNI override for endpoint sources
	Now          func() time.Time
	Load         Loader
}

// Item is the outcome for one source.
type Item struct {
	Source Source
	Fields *cert.Fields // nil when loading or decoding failed
	Result monitor.Result
}

// DefaultLoader reads files from disk and fetches endpoints over TLS.
func DefaultLoader(fo fetch.Options) Loader {
	return func(ctx context.Context, s Source) ([]byte, error) {
		if s.Host != "" {
			return fetch.PeerCertificate(ctx, s.Host, s.Port, fo)
		}
		data, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.Path, err)
		}
		return data, nil
	}
}

// CheckOne loads, decodes and evaluates a single source.
func CheckOne(ctx context.Context, s Source, opts Options) Item {
	opts = withDefaults(opts)
	klog.V(1).Infof("checking %s", s.Name())

	data, err := opts.Load(ctx, s)
	if err != nil {
		return Item{Source: s, Result: monitor.Unknown(err)}
	}
	f, err := cert.DecodeAuto(s.Path, data, opts.Password)
	if err != nil {
		return Item{Source: s, Result: monitor.Unknown(err)}
	}
	return Item{
		Source: s,
		Fields: &f,
		Result: monitor.Evaluate(f, opts.Expectations, opts.Thresholds, opts.Now()),
	}
}

// Run checks every source with at most opts.Jobs in flight. Items come back
// in input order. A cancelled context marks the remaining sources UNKNOWN.
func Run(ctx context.Context, sources []Source, opts Options) []Item {
	opts = withDefaults(opts)
	items := make([]Item, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)
	for i, s := range sources {
		i, s := i, s // per-iteration copy (go directive < 1.22)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				items[i] = Item{Source: s, Result: monitor.Unknown(err)}
				return nil
			}
			items[i] = CheckOne(gctx, s, opts)
			return nil
		})
	}
	_ = g.Wait()
	return items
}

// Worst returns the highest severity across items; OK for none.
func Worst(items []Item) check.Severity {
	sev := check.OK
	for _, it := range items {
		sev = check.Worst(sev, it.Result.Severity())
	}
	return sev
}

// Errors collects the load/decode failures, one per failed source.
func Errors(items []Item) error {
	var result *multierror.Error
	for _, it := range items {
		if it.Result.Err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", it.Source.Name(), it.Result.Err))
		}
	}
	return result.ErrorOrNil()
}

func withDefaults(opts Options) Options {
	if opts.Jobs <= 0 {
		opts.Jobs = 4
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Load == nil {
		opts.Load = DefaultLoader(fetch.Options{ServerName: opts.ServerName, Timeout: opts.Timeout})
	}
	return opts
}
