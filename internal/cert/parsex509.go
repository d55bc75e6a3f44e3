package cert

import (
	"crypto/dsa" //nolint:staticcheck // x509 still hands back DSA keys for legacy certificates.
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// Decode parses a single DER-encoded certificate into Fields.
func Decode(der []byte) (Fields, error) {
	if len(der) == 0 {
		return Fields{}, &DecodeError{Format: FormatDER, Err: ErrNoCertificate}
	}
	c, err := x509.ParseCertificate(der)
	if err != nil {
		return Fields{}, &DecodeError{Format: FormatDER, Err: err}
	}
	return FieldsFromCertificate(c), nil
}

// FieldsFromCertificate builds the canonical Fields view of a parsed certificate.
func FieldsFromCertificate(c *x509.Certificate) Fields {
	algo, size := describePublicKey(c)
	return Fields{
		Serial:             FormatSerial(rawSerial(c)),
		Subject:            FormatName(c.RawSubject),
		Issuer:             FormatName(c.RawIssuer),
		SignatureAlgorithm: signatureAlgorithmName(c.SignatureAlgorithm),
		PublicKeyAlgorithm: algo,
		PublicKeySize:      size,
		NotBefore:          c.NotBefore.UTC(),
		NotAfter:           c.NotAfter.UTC(),
	}
}

// rawSerial returns the serial INTEGER content octets exactly as encoded, so
// a leading 0x00 padding byte is kept. big.Int would drop it.
func rawSerial(c *x509.Certificate) []byte {
	input := cryptobyte.String(c.RawTBSCertificate)
	var tbs, serial cryptobyte.String
	if !input.ReadASN1(&tbs, cbasn1.SEQUENCE) ||
		!tbs.SkipOptionalASN1(cbasn1.Tag(0).Constructed().ContextSpecific()) ||
		!tbs.ReadASN1(&serial, cbasn1.INTEGER) {
		if c.SerialNumber == nil {
			return nil
		}
		return c.SerialNumber.Bytes()
	}
	return serial
}

// FormatSerial renders bytes as uppercase hex pairs joined by ":".
func FormatSerial(b []byte) string {
	return formatHexPairs(hex.EncodeToString(b))
}

func formatHexPairs(hex string) string {
	var parts []string
	for i := 0; i < len(hex); i += 2 {
		end := i + 2
		if end > len(hex) {
			end = len(hex)
		}
		parts = append(parts, strings.ToUpper(hex[i:end]))
	}
	return strings.Join(parts, ":")
}

var attributeLabels = map[string]string{
	"2.5.4.3":                    "CN",
	"2.5.4.4":                    "SN",
	"2.5.4.5":                    "serialNumber",
	"2.5.4.6":                    "C",
	"2.5.4.7":                    "L",
	"2.5.4.8":                    "ST",
	"2.5.4.9":                    "street",
	"2.5.4.10":                   "O",
	"2.5.4.11":                   "OU",
	"2.5.4.12":                   "title",
	"2.5.4.17":                   "postalCode",
	"2.5.4.42":                   "GN",
	"0.9.2342.19200300.100.1.1":  "UID",
	"0.9.2342.19200300.100.1.25": "DC",
	"1.2.840.113549.1.9.1":       "Email",
}

// FormatName renders a DER-encoded distinguished name in encoded RDN order,
// e.g. "C=FR, ST=France, CN=IGC/A". Multi-valued RDNs are joined with " + ".
// Unknown attribute types fall back to their dotted OID.
func FormatName(raw []byte) string {
	var seq pkix.RDNSequence
	if rest, err := asn1.Unmarshal(raw, &seq); err != nil || len(rest) != 0 {
		// Unreachable for names from x509.ParseCertificate, which already validated them.
		return ""
	}

	rdns := make([]string, 0, len(seq))
	for _, rdn := range seq {
		attrs := make([]string, 0, len(rdn))
		for _, atv := range rdn {
			attrs = append(attrs, attributeLabel(atv.Type)+"="+attributeValue(atv.Value))
		}
		rdns = append(rdns, strings.Join(attrs, " + "))
	}
	return strings.Join(rdns, ", ")
}

func attributeLabel(oid asn1.ObjectIdentifier) string {
	if l, ok := attributeLabels[oid.String()]; ok {
		return l
	}
	return oid.String()
}

func attributeValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return "#" + hex.EncodeToString(val)
	default:
		return fmt.Sprint(val)
	}
}

func signatureAlgorithmName(alg x509.SignatureAlgorithm) string {
	switch alg {
	case x509.MD2WithRSA, x509.MD5WithRSA, x509.SHA1WithRSA,
		x509.SHA256WithRSA, x509.SHA384WithRSA, x509.SHA512WithRSA:
		return "RSA"
	case x509.SHA256WithRSAPSS, x509.SHA384WithRSAPSS, x509.SHA512WithRSAPSS:
		return "RSASSA-PSS"
	case x509.DSAWithSHA1, x509.DSAWithSHA256:
		return "DSA"
	case x509.ECDSAWithSHA1, x509.ECDSAWithSHA256, x509.ECDSAWithSHA384, x509.ECDSAWithSHA512:
		return "ECDSA"
	case x509.PureEd25519:
		return "Ed25519"
	default:
		return alg.String()
	}
}

func describePublicKey(c *x509.Certificate) (string, int) {
	switch pub := c.PublicKey.(type) {
	case *rsa.PublicKey:
		return "RSA", pub.N.BitLen()
	case *ecdsa.PublicKey:
		if pub.Curve == nil {
			return "EC", 0
		}
		return "EC", pub.Curve.Params().BitSize
	case ed25519.PublicKey:
		return "Ed25519", 8 * ed25519.PublicKeySize
	case *ecdh.PublicKey:
		return "X25519", 8 * len(pub.Bytes())
	case *dsa.PublicKey:
		return "DSA", pub.P.BitLen()
	default:
		return c.PublicKeyAlgorithm.String(), 0
	}
}
