// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"strings"
	"testing"
)

func testCrypto() *Crypto {
	return &Crypto{
		ArgonTime:    1,
		ArgonMemory:  1024,
		ArgonThreads: 1,
		ArgonKeyLen:  32,
		ArgonSaltLen: 16,
	}
}

func TestHashSecret(t *testing.T) {
	c := testCrypto()
	secret := "sk_live_testsecret123"

	hash, err := c.HashSecret(secret)
	if err != nil {
		t.Fatalf("HashSecret failed: %v", err)
	}
	if hash == "" {
		t.Error("Hash should not be empty")
	}
	if strings.Contains(hash, secret) {
		t.Error("Hash must not contain the plaintext secret")
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("Expected argon2id encoded hash, got %q", hash)
	}

	hash2, err := c.HashSecret(secret)
	if err != nil {
		t.Fatalf("Second HashSecret failed: %v", err)
	}
	if hash == hash2 {
		t.Error("Two hashes of same secret should be different (due to salt)")
	}
}

func TestVerifySecret(t *testing.T) {
	c := testCrypto()
	secret := "sk_live_testsecret123"

	hash, err := c.HashSecret(secret)
	if err != nil {
		t.Fatalf("HashSecret failed: %v", err)
	}

	if err := c.VerifySecret(secret, hash); err != nil {
		t.Errorf("VerifySecret failed for correct secret: %v", err)
	}
	if err := c.VerifySecret("sk_live_wrongsecret", hash); err == nil {
		t.Error("VerifySecret should fail for wrong secret")
	}
	if err := c.VerifySecret(secret, "invalid-hash"); err == nil {
		t.Error("VerifySecret should fail for invalid hash")
	}
}

func TestGenerateAPIKey(t *testing.T) {
	key, err := GenerateAPIKey("sk_live")
	if err != nil {
		t.Fatalf("GenerateAPIKey failed: %v", err)
	}
	if !strings.HasPrefix(key, "sk_live_") {
		t.Errorf("Key should start with sk_live_, got %q", key)
	}
	// 32 bytes base64url without padding is 43 chars.
	if len(key) != len("sk_live_")+43 {
		t.Errorf("Unexpected key length %d", len(key))
	}

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		k, err := GenerateAPIKey("sk_live")
		if err != nil {
			t.Fatalf("GenerateAPIKey failed: %v", err)
		}
		if seen[k] {
			t.Fatal("Generated keys should be unique")
		}
		seen[k] = true
	}
}

func TestDisplayPrefix(t *testing.T) {
	key, err := GenerateAPIKey("sk_live")
	if err != nil {
		t.Fatalf("GenerateAPIKey failed: %v", err)
	}

	prefix := DisplayPrefix(key)
	if len(prefix) != 15 {
		t.Errorf("Prefix should be 15 chars (12 + ...), got %d", len(prefix))
	}
	if !strings.HasSuffix(prefix, "...") {
		t.Errorf("Prefix should end with ..., got %q", prefix)
	}
	if !strings.HasPrefix(key, strings.TrimSuffix(prefix, "...")) {
		t.Error("Prefix should be the head of the key")
	}
	if got := DisplayPrefix("short"); got != "short..." {
		t.Errorf("DisplayPrefix(short) = %q", got)
	}
}

func TestGenerateRandomString(t *testing.T) {
	s, err := GenerateRandomString("x_", 8, "hex")
	if err != nil {
		t.Fatalf("GenerateRandomString failed: %v", err)
	}
	if len(s) != 2+16 {
		t.Errorf("Expected 18 chars, got %d", len(s))
	}
	if _, err := GenerateRandomString("x_", 8, "rot13"); err == nil {
		t.Error("Expected error for unsupported encoding")
	}
}
