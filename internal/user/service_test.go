package user

import (
	"context"
	"errors"
	"testing"

	"github.com/wichananm65/select-shop-backend/internal/apperr"
)

func TestRegister_AdminRequiresToken(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewInMemoryRepository(nil), "admin-secret")

	_, err := svc.Register(ctx, SignupRequest{
		Username: "boss01", Password: "password123", Email: "boss@example.com",
		Admin: true, AdminToken: "nope",
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for wrong admin token, got %v", err)
	}

	admin, err := svc.Register(ctx, SignupRequest{
		Username: "boss01", Password: "password123", Email: "boss@example.com",
		Admin: true, AdminToken: "admin-secret",
	})
	if err != nil {
		t.Fatalf("expected admin registration to succeed, got %v", err)
	}
	if !admin.IsAdmin() {
		t.Fatalf("expected ADMIN role, got %s", admin.Role)
	}
	if admin.Password == "password123" {
		t.Fatalf("password must be stored hashed")
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil), "")
	cases := []SignupRequest{
		{Username: "ab", Password: "password123", Email: "a@example.com"},
		{Username: "Upper01", Password: "password123", Email: "a@example.com"},
		{Username: "valid01", Password: "short", Email: "a@example.com"},
		{Username: "valid01", Password: "password123", Email: "not-an-email"},
	}
	for _, req := range cases {
		if _, err := svc.Register(context.Background(), req); !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("expected validation error for %+v, got %v", req, err)
		}
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewInMemoryRepository(nil), "")
	if _, err := svc.Register(ctx, SignupRequest{Username: "first01", Password: "password123", Email: "same@example.com"}); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, err := svc.Register(ctx, SignupRequest{Username: "second01", Password: "password123", Email: "same@example.com"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for duplicate email, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewInMemoryRepository(nil), "")
	if _, err := svc.Register(ctx, SignupRequest{Username: "jenny01", Password: "password123", Email: "j@example.com"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	u, err := svc.Authenticate(ctx, "jenny01", "password123")
	if err != nil || u.Username != "jenny01" || u.Role != RoleUser {
		t.Fatalf("unexpected authenticate result %+v, %v", u, err)
	}
	if _, err := svc.Authenticate(ctx, "jenny01", "bad-password"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ghost", "password123"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}
