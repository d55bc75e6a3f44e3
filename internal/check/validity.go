package check

import (
	"fmt"
	"time"
)

// DateLayout renders validity dates.
const DateLayout = "2006-01-02 15:04:05 UTC"

// Thresholds configures the validity check in days of remaining lifetime.
// Zero disables the corresponding level; both zero disables the check.
type Thresholds struct {
	WarningDays  int
	CriticalDays int
}

// Enabled reports whether any threshold is configured.
func (t Thresholds) Enabled() bool {
	return t.WarningDays > 0 || t.CriticalDays > 0
}

// ValidityFinding is the outcome of the validity check. It is kept apart
// from Report so that compliance results keep their OK/WARNING contract.
type ValidityFinding struct {
	Severity  Severity
	Remaining time.Duration
	Text      string
}

func (v ValidityFinding) String() string { return v.Text }

// CheckValidity classifies the certificate lifetime relative to now.
func CheckValidity(notBefore, notAfter, now time.Time, th Thresholds) ValidityFinding {
	now = now.UTC()
	remaining := notAfter.Sub(now)

	switch {
	case now.Before(notBefore):
		return ValidityFinding{
			Severity:  Critical,
			Remaining: remaining,
			Text:      fmt.Sprintf("Certificate not valid before %s (!!)", notBefore.UTC().Format(DateLayout)),
		}
	case !now.Before(notAfter):
		return ValidityFinding{
			Severity:  Critical,
			Remaining: remaining,
			Text:      fmt.Sprintf("Certificate expired on %s (!!)", notAfter.UTC().Format(DateLayout)),
		}
	}

	days := int(remaining.Hours() / 24)
	text := fmt.Sprintf("Certificate expires in %d %s (%s)", days, plural(days, "day", "days"), notAfter.UTC().Format(DateLayout))

	sev := OK
	switch {
	case th.CriticalDays > 0 && remaining < daysToDuration(th.CriticalDays):
		sev = Critical
		text += " (!!)"
	case th.WarningDays > 0 && remaining < daysToDuration(th.WarningDays):
		sev = Warning
		text += " (!)"
	}
	return ValidityFinding{Severity: sev, Remaining: remaining, Text: text}
}

func daysToDuration(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
