package cert

import (
	"crypto/x509"
	"errors"
	"strings"

	"software.sslmate.com/src/go-pkcs12"
)

var (
	// ErrPFXIncorrectPassword indicates the PFX MAC or encryption rejected the password.
	ErrPFXIncorrectPassword = errors.New("incorrect password")

	// ErrPFXNotPKCS12 indicates the input is not a valid PKCS#12/PFX container.
	ErrPFXNotPKCS12 = errors.New("file is not a valid PKCS#12/PFX file")
)

func IsPFXIncorrectPassword(err error) bool {
	return errors.Is(err, ErrPFXIncorrectPassword)
}

// DecodePFX extracts the leaf certificate from a PKCS#12 bundle. Bundles with
// a private key yield the certificate paired with it; trust-store bundles
// without a key yield their first certificate.
func DecodePFX(data []byte, password string) (Fields, error) {
	c, err := leafFromPFX(data, password)
	if err != nil {
		return Fields{}, &DecodeError{Format: FormatPFX, Err: err}
	}
	return FieldsFromCertificate(c), nil
}

func leafFromPFX(data []byte, password string) (*x509.Certificate, error) {
	_, leaf, _, err := pkcs12.DecodeChain(data, password)
	if err == nil {
		if leaf == nil {
			return nil, ErrNoCertificate
		}
		return leaf, nil
	}
	if errors.Is(err, pkcs12.ErrIncorrectPassword) {
		return nil, ErrPFXIncorrectPassword
	}

	certs, tsErr := pkcs12.DecodeTrustStore(data, password)
	if tsErr == nil {
		if len(certs) == 0 {
			return nil, ErrNoCertificate
		}
		return certs[0], nil
	}
	return nil, pfxDecodeError(err)
}

func pfxDecodeError(err error) error {
	lower := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, pkcs12.ErrIncorrectPassword):
		return ErrPFXIncorrectPassword
	case strings.Contains(lower, "asn1") ||
		strings.Contains(lower, "structure error") ||
		strings.Contains(lower, "trailing data"):
		return ErrPFXNotPKCS12
	}
	return err
}
