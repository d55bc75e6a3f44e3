package check

// Severity is the overall classification of a check result. The compliance
// engine only ever produces OK or Warning; Critical is reserved for the
// validity checker and Unknown for inputs that could not be decoded.
type Severity int

const (
	OK Severity = iota
	Warning
	Critical
	Unknown
)

func (s Severity) String() string {
	switch s {
	case OK:
		return "OK"
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ExitCode maps the severity to the monitoring-plugin convention.
func (s Severity) ExitCode() int {
	switch s {
	case OK, Warning, Critical:
		return int(s)
	default:
		return 3
	}
}

// Worst returns the more severe of a and b. Unknown ranks above Critical.
func Worst(a, b Severity) Severity {
	if b > a {
		return b
	}
	return a
}
