package cert

import (
	"encoding/pem"
	"fmt"
	"os"
)

// ReadFile reads a certificate file (DER, PEM or PFX) and decodes the first
// certificate in it. The password is only used for PFX input.
func ReadFile(path string, password string) (Fields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fields{}, fmt.Errorf("read %s: %w", path, err)
	}
	return DecodeAuto(path, data, password)
}

// DecodeAuto detects the input format and decodes the first certificate.
// name is only an extension hint and may be empty.
func DecodeAuto(name string, data []byte, password string) (Fields, error) {
	switch ft := DetectFormat(name, data); ft {
	case FormatPEM:
		der, err := firstPEMCertificate(data)
		if err != nil {
			return Fields{}, &DecodeError{Format: FormatPEM, Err: err}
		}
		return Decode(der)
	case FormatPFX:
		return DecodePFX(data, password)
	case FormatDER:
		return Decode(data)
	default:
		if len(data) == 0 {
			return Fields{}, &DecodeError{Format: ft, Err: ErrNoCertificate}
		}
		return Fields{}, &DecodeError{Format: ft, Err: fmt.Errorf("unrecognised certificate encoding")}
	}
}

func firstPEMCertificate(data []byte) ([]byte, error) {
	rest := data
	for {
		block, r := pem.Decode(rest)
		if block == nil {
			return nil, ErrNoCertificate
		}
		rest = r
		if block.Type == "CERTIFICATE" {
			return block.Bytes, nil
		}
	}
}
