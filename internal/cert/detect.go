package cert

import (
	"bytes"
	"path/filepath"
	"strings"
)

var pemCertMarker = []byte("-----BEGIN CERTIFICATE-----")

// DetectFormat classifies certificate input by extension hint and content.
// The name may be empty; content always wins over the extension when it
// carries a PEM marker.
func DetectFormat(name string, data []byte) Format {
	if bytes.Contains(data, pemCertMarker) {
		return FormatPEM
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".pfx", ".p12":
		return FormatPFX
	case ".der", ".cer", ".crt":
		if isDERSequence(data) {
			return FormatDER
		}
	}

	if !isDERSequence(data) {
		return FormatUnknown
	}
	// PKCS#12 PFX is SEQUENCE { INTEGER 3, ... }; a certificate starts with
	// SEQUENCE { SEQUENCE (tbs) ... }.
	if looksLikePFX(data) {
		return FormatPFX
	}
	return FormatDER
}

// isDERSequence checks if data starts with the ASN.1 SEQUENCE tag (0x30).
func isDERSequence(data []byte) bool {
	return len(data) > 1 && data[0] == 0x30
}

func looksLikePFX(data []byte) bool {
	i := 1
	if i >= len(data) {
		return false
	}
	// Skip the outer length (short or long form).
	if l := data[i]; l&0x80 != 0 {
		i += 1 + int(l&0x7f)
	} else {
		i++
	}
	// version INTEGER 3
	return i+2 < len(data) && data[i] == 0x02 && data[i+1] == 0x01 && data[i+2] == 0x03
}
