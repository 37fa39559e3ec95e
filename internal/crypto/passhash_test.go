package crypto

import (
	"bytes"
	"testing"
)

func TestRandBytes(t *testing.T) {
	t.Parallel()

	a, err := RandBytes(16)
	if err != nil {
		t.Fatalf("RandBytes: %v", err)
	}
	if len(a) != 16 {
		t.Fatalf("len=%d, want=16", len(a))
	}
	b, err := RandBytes(16)
	if err != nil {
		t.Fatalf("RandBytes(2): %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two subsequent RandBytes(16) are equal")
	}
}

func TestHashPassword_SaltAndPasswordSensitivity(t *testing.T) {
	t.Parallel()

	pw := []byte("s3cret-pass")
	salt := []byte("0123456789abcdef")

	h1 := HashPassword(pw, salt)
	h2 := HashPassword(pw, salt)
	if !bytes.Equal(h1, h2) {
		t.Fatalf("hash not deterministic for same input")
	}
	if bytes.Equal(h1, HashPassword(pw, []byte("fedcba9876543210"))) {
		t.Fatalf("hash should differ when salt differs")
	}
	if bytes.Equal(h1, HashPassword([]byte("s3cret-pass2"), salt)) {
		t.Fatalf("hash should differ when password differs")
	}
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	pw := []byte("hunter2hunter2")
	salt := []byte("per-user-salt-01")
	hash := HashPassword(pw, salt)

	if !VerifyPassword(pw, salt, hash) {
		t.Fatalf("expected true for correct password")
	}
	if VerifyPassword([]byte("hunter3hunter3"), salt, hash) {
		t.Fatalf("expected false for wrong password")
	}
	if VerifyPassword(pw, []byte("other-salt-00000"), hash) {
		t.Fatalf("expected false for wrong salt")
	}
	if VerifyPassword(nil, salt, hash) {
		t.Fatalf("expected false for empty password")
	}
}
