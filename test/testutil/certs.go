package testutil

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"software.sslmate.com/src/go-pkcs12"
)

// Values of the French IGC/A root used throughout the check tests. The
// certificate itself is regenerated with the same serial and names.
const (
	IGCASerial  = "39:11:45:10:94"
	IGCASubject = "C=FR, ST=France, L=Paris, O=PM/SGDN, OU=DCSSI, CN=IGC/A, Email=igca@sgdn.pm.gouv.fr"
)

var oidEmailAddress = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 1}

// IGCAName is the subject/issuer of the IGC/A fixture.
func IGCAName() pkix.Name {
	return pkix.Name{
		Country:            []string{"FR"},
		Province:           []string{"France"},
		Locality:           []string{"Paris"},
		Organization:       []string{"PM/SGDN"},
		OrganizationalUnit: []string{"DCSSI"},
		CommonName:         "IGC/A",
		ExtraNames: []pkix.AttributeTypeAndValue{
			{Type: oidEmailAddress, Value: "igca@sgdn.pm.gouv.fr"},
		},
	}
}

// Cert is a generated certificate with its key.
type Cert struct {
	DER  []byte
	Cert *x509.Certificate
	Key  crypto.Signer
}

// CertOptions controls MakeCert. Zero values get sensible defaults.
type CertOptions struct {
	Serial    *big.Int
	Subject   pkix.Name
	EC        bool // P-256 instead of RSA 2048
	NotBefore time.Time
	NotAfter  time.Time
}

var (
	rsaKeyOnce sync.Once
	rsaKey     *rsa.PrivateKey
	rsaKeyErr  error
)

// sharedRSAKey keeps the suite fast: 2048-bit generation is the slow part.
func sharedRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	rsaKeyOnce.Do(func() {
		rsaKey, rsaKeyErr = rsa.GenerateKey(rand.Reader, 2048)
	})
	if rsaKeyErr != nil {
		t.Fatalf("generate key: %v", rsaKeyErr)
	}
	return rsaKey
}

// MakeIGCACert generates a self-signed RSA 2048 certificate carrying the
// IGC/A serial and names.
func MakeIGCACert(t *testing.T) *Cert {
	t.Helper()
	return MakeCert(t, CertOptions{
		Serial:  big.NewInt(0x3911451094),
		Subject: IGCAName(),
	})
}

// MakeCert generates an ephemeral self-signed certificate for testing.
func MakeCert(t *testing.T, opts CertOptions) *Cert {
	t.Helper()

	var key crypto.Signer
	if opts.EC {
		k, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			t.Fatalf("generate EC key: %v", err)
		}
		key = k
	} else {
		key = sharedRSAKey(t)
	}

	if opts.Serial == nil {
		opts.Serial = big.NewInt(1)
	}
	if opts.NotBefore.IsZero() {
		opts.NotBefore = time.Now().Add(-1 * time.Hour)
	}
	if opts.NotAfter.IsZero() {
		opts.NotAfter = time.Now().Add(365 * 24 * time.Hour)
	}
	if len(opts.Subject.Names) == 0 && opts.Subject.CommonName == "" && len(opts.Subject.Country) == 0 {
		opts.Subject = pkix.Name{CommonName: "test.local", Organization: []string{"CertCheck Test"}}
	}

	template := &x509.Certificate{
		SerialNumber:          opts.Serial,
		Subject:               opts.Subject,
		NotBefore:             opts.NotBefore,
		NotAfter:              opts.NotAfter,
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, key.Public(), key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	parsed, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("parse certificate: %v", err)
	}
	return &Cert{DER: der, Cert: parsed, Key: key}
}

// WriteDER writes the certificate as raw DER into a temp dir.
func WriteDER(t *testing.T, c *Cert, name string) string {
	t.Helper()
	return writeFile(t, name, c.DER)
}

// WritePEM writes the certificate as a PEM block into a temp dir.
func WritePEM(t *testing.T, c *Cert, name string) string {
	t.Helper()
	return writeFile(t, name, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: c.DER}))
}

// PFX encodes the certificate and key as a PKCS#12 bundle.
func PFX(t *testing.T, c *Cert, password string) []byte {
	t.Helper()
	data, err := pkcs12.Modern.Encode(c.Key, c.Cert, nil, password)
	if err != nil {
		t.Fatalf("encode pfx: %v", err)
	}
	return data
}

// WritePFX writes a PKCS#12 bundle into a temp dir.
func WritePFX(t *testing.T, c *Cert, name, password string) string {
	t.Helper()
	return writeFile(t, name, PFX(t, c, password))
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
