package ledger

import (
	"context"
	"errors"
	"testing"

	"cafe-billing/internal/billing"
	"cafe-billing/internal/models"
)

func TestAdminAccounts(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()

	user, err := s.RegisterAdmin(ctx, "Owner@Cafe.example", "", "longenough")
	if err != nil {
		t.Fatalf("RegisterAdmin: %v", err)
	}
	if user.Email != "owner@cafe.example" || user.Role != models.RoleAdmin || user.Name != user.Email {
		t.Fatalf("unexpected user: %+v", user)
	}
	if _, err := s.RegisterAdmin(ctx, "owner@cafe.example", "Dup", "longenough"); !errors.Is(err, billing.ErrConflict) {
		t.Fatalf("expected conflict on duplicate email, got %v", err)
	}
	if _, err := s.RegisterAdmin(ctx, "short@cafe.example", "", "123"); !errors.Is(err, billing.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, err := s.AuthenticateAdmin(ctx, "owner@cafe.example", "nope", "10.0.0.1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := s.AuthenticateAdmin(ctx, "OWNER@cafe.example", "longenough", "10.0.0.1"); err != nil {
		t.Fatalf("AuthenticateAdmin: %v", err)
	}

	history, err := s.LoginHistory(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("LoginHistory: %v", err)
	}
	if len(history) != 1 || history[0].IPAddress != "10.0.0.1" {
		t.Fatalf("unexpected history: %+v", history)
	}

	if err := s.ChangePassword(ctx, user.ID, "wrong", "another-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if err := s.ChangePassword(ctx, user.ID, "longenough", "another-pass"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := s.AuthenticateAdmin(ctx, "owner@cafe.example", "another-pass", ""); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	if err := db.Model(user).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := s.AuthenticateAdmin(ctx, "owner@cafe.example", "another-pass", ""); !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("expected inactive account error, got %v", err)
	}
}
