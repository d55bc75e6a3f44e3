package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/nickromney/certcheck/internal/batch"
	"github.com/nickromney/certcheck/internal/cert"
	"github.com/nickromney/certcheck/internal/check"
	"github.com/nickromney/certcheck/internal/monitor"
)

func items() []batch.Item {
	notAfter := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	f := cert.Fields{Serial: "01", PublicKeySize: 256, NotAfter: notAfter}
	e := check.NewExpectations().Serial(check.Ptr("02")).Build()

	return []batch.Item{
		{
			Source: batch.Source{Path: "a.der"},
			Fields: &f,
			Result: monitor.Result{Report: check.Check(f, e)},
		},
		{
			Source: batch.Source{Host: "example.com", Port: 443},
			Result: monitor.Unknown(errors.New("refused")),
		},
	}
}

func TestRecord(t *testing.T) {
	c := New()
	c.Record(items(), time.Unix(1700000000, 0))

	if got := testutil.ToFloat64(c.severity.WithLabelValues("a.der")); got != 1 {
		t.Fatalf("severity a.der = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.severity.WithLabelValues("example.com:443")); got != 3 {
		t.Fatalf("severity example.com = %v, want 3", got)
	}
	if got := testutil.ToFloat64(c.mismatched.WithLabelValues("a.der")); got != 1 {
		t.Fatalf("mismatched = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.expiry.WithLabelValues("a.der")); got != 1893456000 {
		t.Fatalf("expiry = %v", got)
	}
	if n := testutil.CollectAndCount(c.expiry); n != 1 {
		t.Fatalf("expected one expiry sample, got %d", n)
	}
}

func TestWriteTextfile(t *testing.T) {
	c := New()
	c.Record(items(), time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "certcheck.prom")
	if err := c.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{
		`certcheck_severity{source="a.der"} 1`,
		`certcheck_severity{source="example.com:443"} 3`,
		"certcheck_last_run_timestamp_seconds 1.7e+09",
	} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected %q in:\n%s", want, data)
		}
	}
}
