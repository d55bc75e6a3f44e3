package check

import (
	"strconv"

	"github.com/nickromney/certcheck/internal/cert"
)

type comparison struct {
	field    Field
	actual   string
	expected string
	checked  bool
	equal    bool
}

func compareString(field Field, actual string, expected string, set bool) comparison {
	return comparison{field: field, actual: actual, expected: expected, checked: set, equal: actual == expected}
}

func comparisons(f cert.Fields, e Expectations) []comparison {
	size, sizeSet := e.PublicKeySize()
	serial, serialSet := e.Serial()
	subject, subjectSet := e.Subject()
	issuer, issuerSet := e.Issuer()
	sigAlg, sigAlgSet := e.SignatureAlgorithm()
	keyAlg, keyAlgSet := e.PublicKeyAlgorithm()

	return []comparison{
		compareString(FieldSerial, f.Serial, serial, serialSet),
		compareString(FieldSubject, f.Subject, subject, subjectSet),
		compareString(FieldIssuer, f.Issuer, issuer, issuerSet),
		compareString(FieldSignatureAlgorithm, f.SignatureAlgorithm, sigAlg, sigAlgSet),
		compareString(FieldPublicKeyAlgorithm, f.PublicKeyAlgorithm, keyAlg, keyAlgSet),
		{
			field:    FieldPublicKeySize,
			actual:   strconv.Itoa(f.PublicKeySize),
			expected: strconv.Itoa(size),
			checked:  sizeSet,
			equal:    f.PublicKeySize == size,
		},
	}
}

// Check compares the decoded certificate fields against the expectations.
//
// Only fields with an expectation produce a finding. When nothing is
// expected, every actual field is reported as matched so the caller still
// sees the certificate data. Any mismatch makes the report a Warning.
// Check is pure and safe for concurrent use.
func Check(f cert.Fields, e Expectations) Report {
	cmps := comparisons(f, e)
	r := Report{Severity: OK}

	if e.IsEmpty() {
		for _, c := range cmps {
			r.Findings = append(r.Findings, Finding{Field: c.field, Outcome: Matched, Actual: c.actual})
		}
		return r
	}

	for _, c := range cmps {
		if !c.checked {
			continue
		}
		if c.equal {
			r.Findings = append(r.Findings, Finding{Field: c.field, Outcome: Matched, Actual: c.actual})
			continue
		}
		r.Findings = append(r.Findings, Finding{
			Field:    c.field,
			Outcome:  Mismatched,
			Actual:   c.actual,
			Expected: c.expected,
		})
		r.Severity = Warning
	}
	return r
}
