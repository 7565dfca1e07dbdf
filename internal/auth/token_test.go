package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndResolve(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, exp, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatal("expiry must be in the future")
	}

	userID, err := svc.Resolve(token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("expected user-123, got %s", userID)
	}
}

func TestResolveExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, _, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Resolve(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestResolveWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, _, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Resolve(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestResolveMalformedToken(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c"} {
		if _, err := svc.Resolve(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected invalid token, got %v", token, err)
		}
	}
}
