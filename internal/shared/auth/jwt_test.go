package auth

import (
	"strings"
	"testing"
	"time"
)

func TestSignAndVerifyJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignJWT("user-1", "a@b.com", "student", time.Hour)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	claims, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected sub user-1, got %q", claims.Subject)
	}
	if claims.Email != "a@b.com" {
		t.Fatalf("expected email a@b.com, got %q", claims.Email)
	}
	if claims.Role != "student" {
		t.Fatalf("expected role student, got %q", claims.Role)
	}
}

func TestVerifyJWTRejectsTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignJWT("user-1", "", "", time.Hour)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]
	if _, err := VerifyJWT(tampered); err == nil {
		t.Fatalf("expected error for tampered token")
	}
}

func TestVerifyJWTRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignJWT("user-1", "", "", -time.Minute)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	if _, err := VerifyJWT(token); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "hunter22") {
		t.Fatalf("expected password to match")
	}
	if CheckPassword(hash, "hunter23") {
		t.Fatalf("expected mismatch to fail")
	}
}

func TestHashPasswordRejectsShort(t *testing.T) {
	if _, err := HashPassword("abc"); err == nil {
		t.Fatalf("expected error for short password")
	}
}
