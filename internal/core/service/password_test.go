package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_RoundTrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("sup3rsecret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "sup3rsecret" {
		t.Fatalf("hash equals plaintext")
	}

	if !h.Verify("sup3rsecret", hash) {
		t.Fatalf("expected matching password to verify")
	}
	if h.Verify("wrongpass", hash) {
		t.Fatalf("expected non-matching password to fail")
	}
}

func TestHasher_SaltedHashesDiffer(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := h.Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first == second {
		t.Fatalf("expected different hashes for repeated calls")
	}
	if !h.Verify("samepassword", first) || !h.Verify("samepassword", second) {
		t.Fatalf("both hashes should verify")
	}
}

func TestHasher_MalformedHashIsMismatch(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	if h.Verify("whatever", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash must not verify")
	}
	if h.Verify("whatever", "") {
		t.Fatalf("empty hash must not verify")
	}
}

func TestNewHasher_CostOutOfRange(t *testing.T) {
	h := NewHasher(99)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected fallback to default cost, got %d", h.cost)
	}
}
