package auth

import (
	"strings"
	"testing"
)

// ハッシュと照合のラウンドトリップを検証
func TestHashPassword_VerifyRoundtrip(t *testing.T) {
	hash, err := HashPassword("demo123", DefaultBcryptCost)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "demo123" {
		t.Error("hash should not equal the plain password")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected bcrypt hash prefix, got %q", hash[:4])
	}

	if !VerifyPassword("demo123", hash) {
		t.Error("VerifyPassword should succeed with the correct password")
	}
	if VerifyPassword("wrong-password", hash) {
		t.Error("VerifyPassword should fail with a wrong password")
	}
}

// コスト0はデフォルトコストにフォールバックすることを検証
func TestHashPassword_ZeroCostUsesDefault(t *testing.T) {
	hash, err := HashPassword("secret", 0)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !VerifyPassword("secret", hash) {
		t.Error("VerifyPassword should succeed")
	}
}

// 同じパスワードでもソルトによりハッシュが毎回異なることを検証
func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPassword("same", 4)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	h2, err := HashPassword("same", 4)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}
