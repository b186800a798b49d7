package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "password123" {
		t.Fatalf("expected hash to differ from plaintext")
	}

	if !CheckPasswordHash("password123", hash) {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPasswordHash("wrongpass", hash) {
		t.Fatalf("expected wrong password to fail verification")
	}
}
