package cert

import (
	"errors"
	"fmt"
	"time"
)

// Format represents the detected encoding of certificate input bytes.
type Format string

const (
	FormatDER     Format = "der"
	FormatPEM     Format = "pem"
	FormatPFX     Format = "pfx"
	FormatUnknown Format = "unknown"
)

// Fields is the decoded view of a certificate that the compliance checks
// operate on. String fields are already in canonical rendering.
type Fields struct {
	// Serial is the raw serial INTEGER rendered as uppercase hex pairs
	// separated by ":", e.g. "39:11:45:10:94".
	Serial string
	// Subject and Issuer keep RDN order as encoded, e.g. "C=FR, ST=France, CN=IGC/A".
	Subject string
	Issuer  string

	SignatureAlgorithm string // "RSA", "ECDSA", ...
	PublicKeyAlgorithm string // "RSA", "EC", ...
	PublicKeySize      int    // bits

	NotBefore time.Time
	NotAfter  time.Time
}

// ErrNoCertificate is returned when the input holds no certificate at all.
var ErrNoCertificate = errors.New("no certificate found")

// DecodeError reports input that could not be decoded into Fields.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format == "" || e.Format == FormatUnknown {
		return fmt.Sprintf("decode certificate: %v", e.Err)
	}
	return fmt.Sprintf("decode %s certificate: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecodeError reports whether err (or anything it wraps) is a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
