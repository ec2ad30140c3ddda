package password

import (
	"errors"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("Xy7!pass")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "Xy7!pass" {
		t.Fatal("hash must not equal plaintext")
	}
	if !Verify("Xy7!pass", hash) {
		t.Fatal("expected password to verify")
	}
	if Verify("xy7!pass", hash) {
		t.Fatal("expected wrong password to fail")
	}
}

func TestHashRejectsEmpty(t *testing.T) {
	if _, err := Hash(""); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}
