package util

import (
	"strings"
	"testing"
)

// ============ password hashing ============

func TestHashPassword(t *testing.T) {
	password := "MyPassword123"

	hashed, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !strings.Contains(hashed, "$") {
		t.Error("hash format wrong, expected salt$hash")
	}

	if _, err := HashPassword(""); err == nil {
		t.Error("empty password should be rejected")
	}

	// random salt: same password, different hash
	hashed2, _ := HashPassword(password)
	if hashed == hashed2 {
		t.Error("same password should produce different hashes")
	}
}

func TestCheckPassword(t *testing.T) {
	password := "TestPass456"
	hashed, _ := HashPassword(password)

	if !CheckPassword(password, hashed) {
		t.Error("correct password rejected")
	}
	if CheckPassword("WrongPass", hashed) {
		t.Error("wrong password accepted")
	}
	if CheckPassword("", hashed) {
		t.Error("empty password accepted")
	}
	if CheckPassword(password, "") {
		t.Error("empty hash accepted")
	}
	if CheckPassword(password, "invalid-format") {
		t.Error("malformed hash accepted")
	}
}

// ============ random tokens ============

func TestRandomToken(t *testing.T) {
	tok, err := RandomToken(32)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(tok) != 32 {
		t.Errorf("length = %d, want 32", len(tok))
	}

	tok2, _ := RandomToken(32)
	if tok == tok2 {
		t.Error("tokens should be unique")
	}

	if _, err := RandomToken(0); err == nil {
		t.Error("length 0 should be rejected")
	}
	if _, err := RandomToken(-5); err == nil {
		t.Error("negative length should be rejected")
	}
}

// ============ AES ============

func TestEncryptDecryptAES(t *testing.T) {
	key := "test-encryption-key"

	testCases := []string{
		"Hello World",
		"",
		"Special!@#$%^&*()",
		strings.Repeat("A", 1000),
	}

	for _, plaintext := range testCases {
		encrypted, err := EncryptAES(key, []byte(plaintext))
		if err != nil {
			t.Fatalf("encrypt %q: %v", plaintext, err)
		}

		decrypted, err := DecryptAES(key, encrypted)
		if err != nil {
			t.Fatalf("decrypt %q: %v", plaintext, err)
		}

		if string(decrypted) != plaintext {
			t.Errorf("round trip mismatch: want %q, got %q", plaintext, decrypted)
		}
	}
}

func TestDecryptAES_WrongKey(t *testing.T) {
	encrypted, _ := EncryptAES("key-one", []byte("secret"))
	if _, err := DecryptAES("key-two", encrypted); err == nil {
		t.Error("decrypt with wrong key should fail")
	}
}

func TestDecryptAES_Truncated(t *testing.T) {
	if _, err := DecryptAES("key", []byte{1, 2, 3}); err == nil {
		t.Error("truncated ciphertext should fail")
	}
}

func TestEncryptDecryptString(t *testing.T) {
	key := "string-key"

	stored, err := EncryptString(key, `{"monthly_income":3000}`)
	if err != nil {
		t.Fatalf("EncryptString: %v", err)
	}
	if stored == `{"monthly_income":3000}` {
		t.Error("value stored in the clear")
	}

	plain, err := DecryptString(key, stored)
	if err != nil {
		t.Fatalf("DecryptString: %v", err)
	}
	if plain != `{"monthly_income":3000}` {
		t.Errorf("round trip mismatch: got %q", plain)
	}

	// empty key passes values through untouched
	passthrough, err := EncryptString("", "plain")
	if err != nil || passthrough != "plain" {
		t.Errorf("empty key passthrough = %q, %v", passthrough, err)
	}
}
