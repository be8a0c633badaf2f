package util

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "Sup3rSecret!" {
		t.Fatalf("hash must not equal the plaintext")
	}
	if !CheckPasswordHash("Sup3rSecret!", hash) {
		t.Fatalf("correct password should verify")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Fatalf("wrong password should not verify")
	}
}

func TestPasswordHashesAreSalted(t *testing.T) {
	first, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password should differ")
	}
}
