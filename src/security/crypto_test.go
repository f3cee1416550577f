package security

import "testing"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plain := "AKID-1234-secret"

	sealed, err := EncryptString(plain)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sealed == plain {
		t.Fatalf("expected ciphertext to differ from plaintext")
	}

	opened, err := DecryptString(sealed)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if opened != plain {
		t.Fatalf("expected %q, got %q", plain, opened)
	}
}

func TestDecryptRejectsGarbage(t *testing.T) {
	if _, err := DecryptString("bm90LWEtcmVhbC1jaXBoZXJ0ZXh0LWJ1dC1sb25nLWVub3VnaA=="); err == nil {
		t.Fatalf("expected error for tampered ciphertext")
	}

	if _, err := DecryptString("%%%not-base64%%%"); err == nil {
		t.Fatalf("expected error for invalid base64")
	}
}
