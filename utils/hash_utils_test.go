package utils

import "testing"

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Error("correct password must verify")
	}
	if CheckPasswordHash("wrong-pass", hash) {
		t.Error("wrong password must not verify")
	}
}
