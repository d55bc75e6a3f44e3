// Package monitor turns check outcomes into monitoring-plugin results: a
// single status line plus an exit code.
package monitor

import (
	"time"

	"github.com/nickromney/certcheck/internal/cert"
	"github.com/nickromney/certcheck/internal/check"
)

// Result is what a monitoring system sees for one certificate.
type Result struct {
	Report   check.Report
	Validity *check.ValidityFinding
	// Err is set when the certificate could not be obtained or decoded.
	// Report and Validity are empty in that case.
	Err error
}

// Evaluate runs the compliance check and, when thresholds are configured,
// the validity check.
func Evaluate(f cert.Fields, e check.Expectations, th check.Thresholds, now time.Time) Result {
	r := Result{Report: check.Check(f, e)}
	if th.Enabled() {
		v := check.CheckValidity(f.NotBefore, f.NotAfter, now, th)
		r.Validity = &v
	}
	return r
}

// Unknown wraps a failure that prevented the check from running.
func Unknown(err error) Result {
	return Result{Err: err}
}

// Severity is the worst of the compliance and validity severities.
func (r Result) Severity() check.Severity {
	if r.Err != nil {
		return check.Unknown
	}
	sev := r.Report.Severity
	if r.Validity != nil {
		sev = check.Worst(sev, r.Validity.Severity)
	}
	return sev
}

// ExitCode follows the plugin convention: OK=0, WARNING=1, CRITICAL=2, UNKNOWN=3.
func (r Result) ExitCode() int {
	return r.Severity().ExitCode()
}

// String renders the status line. Without validity thresholds this is
// exactly the compliance report line.
func (r Result) String() string {
	if r.Err != nil {
		return check.Unknown.String() + " - " + r.Err.Error()
	}
	if r.Validity == nil {
		return r.Report.String()
	}
	summary := r.Report.Summary()
	if summary != "" {
		summary += ", "
	}
	return r.Severity().String() + " - " + summary + r.Validity.String()
}
