package cert

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nickromney/certcheck/test/testutil"
)

func TestReadFile_AllFormats(t *testing.T) {
	c := testutil.MakeIGCACert(t)

	paths := map[string]string{
		"der": testutil.WriteDER(t, c, "igca.der"),
		"pem": testutil.WritePEM(t, c, "igca.pem"),
		"pfx": testutil.WritePFX(t, c, "igca.pfx", "secret"),
	}
	for name, path := range paths {
		t.Run(name, func(t *testing.T) {
			f, err := ReadFile(path, "secret")
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if f.Subject != testutil.IGCASubject {
				t.Fatalf("Subject = %q", f.Subject)
			}
		})
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.der"), "")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if IsDecodeError(err) {
		t.Fatalf("I/O failure should not be reported as a decode error")
	}
}

func TestDecodeAuto_PEMWithoutCertificate(t *testing.T) {
	data := []byte("-----BEGIN CERTIFICATE-----\n-----END PRIVATE KEY-----\n")
	_, err := DecodeAuto("x.pem", data, "")
	if !IsDecodeError(err) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestDecodeAuto_Unknown(t *testing.T) {
	_, err := DecodeAuto("notes.txt", []byte("hello"), "")
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if de.Format != FormatUnknown {
		t.Fatalf("Format = %v, want unknown", de.Format)
	}
}
