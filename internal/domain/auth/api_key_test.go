package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashKey(t *testing.T) {
	// SHA-256 of "test-key"
	want := "62af8704764faf8ea82fc61ce9c4c3908b6cb97d463a634e9e587d7c885db0ef"
	if got := HashKey("test-key"); got != want {
		t.Errorf("HashKey() = %q, want %q", got, want)
	}
}

func TestDetectHashType(t *testing.T) {
	tests := []struct {
		name string
		hash string
		want string
	}{
		{"argon2id PHC", "$argon2id$v=19$m=48128,t=1,p=1$c2FsdA$aGFzaA", "argon2id"},
		{"sha256 prefixed", "sha256:" + strings.Repeat("a", 64), "sha256"},
		{"bare sha256 hex", strings.Repeat("ab", 32), "sha256"},
		{"bare hex wrong length", strings.Repeat("ab", 16), "unknown"},
		{"64 chars non-hex", strings.Repeat("z", 64), "unknown"},
		{"empty", "", "unknown"},
		{"plaintext", "my-api-key", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectHashType(tt.hash); got != tt.want {
				t.Errorf("DetectHashType(%q) = %q, want %q", tt.hash, got, tt.want)
			}
		})
	}
}

func TestVerifyKey_SHA256(t *testing.T) {
	hash := "sha256:" + HashKey("correct-key")

	match, err := VerifyKey("correct-key", hash)
	if err != nil {
		t.Fatalf("VerifyKey() error: %v", err)
	}
	if !match {
		t.Error("VerifyKey() = false for matching key")
	}

	match, err = VerifyKey("wrong-key", hash)
	if err != nil {
		t.Fatalf("VerifyKey() error: %v", err)
	}
	if match {
		t.Error("VerifyKey() = true for non-matching key")
	}
}

func TestVerifyKey_BareHex(t *testing.T) {
	match, err := VerifyKey("correct-key", HashKey("correct-key"))
	if err != nil {
		t.Fatalf("VerifyKey() error: %v", err)
	}
	if !match {
		t.Error("VerifyKey() = false for matching key against bare hex hash")
	}
}

func TestVerifyKey_Argon2id(t *testing.T) {
	hash, err := HashKeyArgon2id("correct-key")
	if err != nil {
		t.Fatalf("HashKeyArgon2id() error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("hash = %q, want $argon2id$ prefix", hash)
	}

	match, err := VerifyKey("correct-key", hash)
	if err != nil {
		t.Fatalf("VerifyKey() error: %v", err)
	}
	if !match {
		t.Error("VerifyKey() = false for matching key")
	}

	match, err = VerifyKey("wrong-key", hash)
	if err != nil {
		t.Fatalf("VerifyKey() error: %v", err)
	}
	if match {
		t.Error("VerifyKey() = true for non-matching key")
	}
}

func TestVerifyKey_UnknownFormat(t *testing.T) {
	_, err := VerifyKey("any-key", "not-a-hash")
	if !errors.Is(err, ErrUnknownHashType) {
		t.Errorf("VerifyKey() error = %v, want ErrUnknownHashType", err)
	}
}

func TestVerifyKey_MalformedArgon2idDoesNotPanic(t *testing.T) {
	// t=0 makes the underlying argon2 library panic; VerifyKey must convert
	// that to an error.
	malformed := "$argon2id$v=19$m=47104,t=0,p=0$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g"

	match, err := VerifyKey("any-key", malformed)
	if match {
		t.Error("VerifyKey() = true for malformed hash")
	}
	if err == nil {
		t.Error("VerifyKey() error = nil, want error for malformed hash")
	}
}
