package cert

import (
	"testing"

	"github.com/nickromney/certcheck/test/testutil"
)

func TestDecodePFX(t *testing.T) {
	c := testutil.MakeIGCACert(t)
	pfx := testutil.PFX(t, c, "secret")

	f, err := DecodePFX(pfx, "secret")
	if err != nil {
		t.Fatalf("DecodePFX() error = %v", err)
	}
	if f.Serial != testutil.IGCASerial {
		t.Fatalf("Serial = %q, want %q", f.Serial, testutil.IGCASerial)
	}
}

func TestDecodePFX_WrongPassword(t *testing.T) {
	c := testutil.MakeIGCACert(t)
	pfx := testutil.PFX(t, c, "secret")

	_, err := DecodePFX(pfx, "nope")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsPFXIncorrectPassword(err) {
		t.Fatalf("expected incorrect password error, got %v", err)
	}
	if !IsDecodeError(err) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
}

func TestDecodePFX_NotPKCS12(t *testing.T) {
	_, err := DecodePFX([]byte("definitely not a pfx"), "")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsDecodeError(err) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
}
