package auth

import (
	"errors"
	"testing"

	"github.com/pbaille/ht/internal/domain"
)

func TestVerify(t *testing.T) {
	gate := NewGate("abc")

	ok, err := gate.Verify("abc")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Errorf("Expected correct password to verify")
	}

	ok, err = gate.Verify("abx")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ok {
		t.Errorf("Expected wrong password to be rejected")
	}
}

func TestVerifyWithoutSecret(t *testing.T) {
	// A missing secret is a configuration error, not a failed login
	gate := NewGate("")

	ok, err := gate.Verify("anything")
	if !errors.Is(err, domain.ErrPasswordNotConfigured) {
		t.Errorf("Expected ErrPasswordNotConfigured, got %v", err)
	}
	if ok {
		t.Errorf("Expected verification to fail with no secret configured")
	}

	// Even the empty string must not match an unconfigured secret
	ok, err = gate.Verify("")
	if !errors.Is(err, domain.ErrPasswordNotConfigured) {
		t.Errorf("Expected ErrPasswordNotConfigured for empty submission, got %v", err)
	}
	if ok {
		t.Errorf("Expected empty submission to fail with no secret configured")
	}
}
