package hash

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt(t *testing.T) {

	t.Run("HashAndVerify", func(t *testing.T) {
		h := NewBcrypt(bcrypt.MinCost, "")

		hashed, err := h.Hash("Secret123!")
		if err != nil {
			t.Fatalf("hash: %v", err)
		}

		if !h.Verify(string(hashed), "Secret123!") {
			t.Fatal("expected matching password to verify")
		}
		if h.Verify(string(hashed), "Secret123?") {
			t.Fatal("expected mismatching password to fail")
		}
	})

	t.Run("PepperChangesOutcome", func(t *testing.T) {
		peppered := NewBcrypt(bcrypt.MinCost, "pepper")
		plain := NewBcrypt(bcrypt.MinCost, "")

		hashed, err := peppered.Hash("Secret123!")
		if err != nil {
			t.Fatalf("hash: %v", err)
		}

		if plain.Verify(string(hashed), "Secret123!") {
			t.Fatal("hash made with pepper must not verify without it")
		}
		if !peppered.Verify(string(hashed), "Secret123!") {
			t.Fatal("hash made with pepper must verify with it")
		}
	})

	t.Run("HashesAreSalted", func(t *testing.T) {
		h := NewBcrypt(bcrypt.MinCost, "")

		first, err := h.Hash("Secret123!")
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		second, err := h.Hash("Secret123!")
		if err != nil {
			t.Fatalf("hash: %v", err)
		}

		if string(first) == string(second) {
			t.Fatal("expected different salts to produce different hashes")
		}
	})
}
