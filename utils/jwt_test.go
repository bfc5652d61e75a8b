package utils

import (
	"testing"
	"time"
)

func TestGenerateToken_RoundTrip(t *testing.T) {
	token, exp, err := GenerateToken("doc-42", "ada@example.com", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exp <= time.Now().Unix() {
		t.Errorf("expected expiry in the future, got %d", exp)
	}
	id, err := ExtractIDFromToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "doc-42" {
		t.Errorf("expected doc-42, got %q", id)
	}
}

func TestExtractIDFromToken_Expired(t *testing.T) {
	token, _, err := GenerateToken("doc-42", "ada@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ExtractIDFromToken(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestExtractIDFromToken_Garbage(t *testing.T) {
	if _, err := ExtractIDFromToken("not-a-jwt"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestHashToken_Stable(t *testing.T) {
	if HashToken("abc") != HashToken("abc") {
		t.Error("hash must be deterministic")
	}
	if HashToken("abc") == HashToken("abd") {
		t.Error("different tokens must hash differently")
	}
	if len(HashToken("abc")) != 64 {
		t.Errorf("expected hex sha256, got %q", HashToken("abc"))
	}
}
