package check

import (
	"fmt"
	"strings"
)

// Field identifies a checkable certificate field. The declaration order is
// the order findings appear in a Report.
type Field int

const (
	FieldSerial Field = iota
	FieldSubject
	FieldIssuer
	FieldSignatureAlgorithm
	FieldPublicKeyAlgorithm
	FieldPublicKeySize
)

// AllFields lists every checkable field in report order.
var AllFields = []Field{
	FieldSerial,
	FieldSubject,
	FieldIssuer,
	FieldSignatureAlgorithm,
	FieldPublicKeyAlgorithm,
	FieldPublicKeySize,
}

// Label is the human-readable name used in rendered findings.
func (f Field) Label() string {
	switch f {
	case FieldSerial:
		return "Serial"
	case FieldSubject:
		return "Subject"
	case FieldIssuer:
		return "Issuer"
	case FieldSignatureAlgorithm:
		return "Signature algorithm"
	case FieldPublicKeyAlgorithm:
		return "Public key algorithm"
	case FieldPublicKeySize:
		return "Public key size"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Outcome tags a Finding.
type Outcome int

const (
	Matched Outcome = iota
	Mismatched
)

// Finding is the outcome of comparing one field. Expected is only
// meaningful for Mismatched findings.
type Finding struct {
	Field    Field
	Outcome  Outcome
	Actual   string
	Expected string
}

func (f Finding) String() string {
	if f.Outcome == Mismatched {
		return fmt.Sprintf("%s is %s but expected %s (!)", f.Field.Label(), f.Actual, f.Expected)
	}
	return f.Field.Label() + ": " + f.Actual
}

// Report is the result of a compliance check.
type Report struct {
	Severity Severity
	Findings []Finding
}

// Mismatches returns the mismatched findings in report order.
func (r Report) Mismatches() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Outcome == Mismatched {
			out = append(out, f)
		}
	}
	return out
}

// Summary joins the rendered findings with ", ".
func (r Report) Summary() string {
	parts := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, ", ")
}

// String renders the single status line, e.g. "OK - Serial: 01, Subject: CN=x".
func (r Report) String() string {
	return r.Severity.String() + " - " + r.Summary()
}
