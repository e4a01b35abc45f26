package crypto_test

import (
	"testing"

	"github.com/moviebase/moviebase/internal/common/crypto"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := &crypto.BcryptHasher{}

	hash, err := hasher.Hash("Secr3t!")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if hash == "Secr3t!" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := hasher.Compare(hash, "Secr3t!"); err != nil {
		t.Errorf("expected match, got %v", err)
	}

	if err := hasher.Compare(hash, "wrong-password"); err == nil {
		t.Error("expected mismatch error for wrong password")
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	hasher := &crypto.BcryptHasher{}

	if err := hasher.Compare("not-a-bcrypt-hash", "anything"); err == nil {
		t.Error("expected error for malformed stored hash")
	}
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := &crypto.BcryptHasher{}

	first, err := hasher.Hash("Secr3t!")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := hasher.Hash("Secr3t!")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password must not collide (salting)")
	}
}
