package ledger

import (
	"context"
	"errors"
	"testing"

	"cafe-billing/internal/billing"
	"cafe-billing/internal/models"
)

func TestCustomerPortalLogin(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()
	c := mustCustomer(t, s, ownerA, "Portal User")

	cred, err := s.SetCustomerCredentials(ctx, ownerA, c.ID, " Portal.User ", "pa55word")
	if err != nil {
		t.Fatalf("SetCustomerCredentials: %v", err)
	}
	if cred.Username != "portal.user" || cred.PasswordHash == "pa55word" {
		t.Fatalf("credential not normalized or not hashed: %+v", cred)
	}

	if _, err := s.AuthenticateCustomer(ctx, "portal.user", "wrong", "127.0.0.1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := s.AuthenticateCustomer(ctx, "nobody", "pa55word", "127.0.0.1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}

	got, err := s.AuthenticateCustomer(ctx, "PORTAL.USER", "pa55word", "127.0.0.1")
	if err != nil {
		t.Fatalf("AuthenticateCustomer: %v", err)
	}
	if got.CustomerID != c.ID || got.OwnerID != ownerA || got.LastLogin == nil || !got.LastLogin.Equal(testNow) {
		t.Fatalf("unexpected credential: %+v", got)
	}

	var stored models.CustomerCredential
	if err := db.Take(&stored, got.ID).Error; err != nil {
		t.Fatalf("load credential: %v", err)
	}
	if stored.LastLogin == nil {
		t.Fatal("last_login not persisted")
	}

	// replacing the password keeps one credential row
	if _, err := s.SetCustomerCredentials(ctx, ownerA, c.ID, "portal.user", "n3wpassword"); err != nil {
		t.Fatalf("reset credentials: %v", err)
	}
	if n := count(t, db, &models.CustomerCredential{}); n != 1 {
		t.Fatalf("credentials = %d, want 1", n)
	}
	if _, err := s.AuthenticateCustomer(ctx, "portal.user", "pa55word", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
}

func TestCustomerCredentialsConflicts(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	a := mustCustomer(t, s, ownerA, "A")
	b := mustCustomer(t, s, ownerA, "B")

	if _, err := s.SetCustomerCredentials(ctx, ownerA, a.ID, "shared", "password1"); err != nil {
		t.Fatalf("SetCustomerCredentials: %v", err)
	}
	if _, err := s.SetCustomerCredentials(ctx, ownerA, b.ID, "shared", "password2"); !errors.Is(err, billing.ErrConflict) {
		t.Fatalf("expected conflict on taken username, got %v", err)
	}
	if _, err := s.SetCustomerCredentials(ctx, ownerA, b.ID, "b-user", "123"); !errors.Is(err, billing.ErrValidation) {
		t.Fatalf("expected validation error on short password, got %v", err)
	}
	if _, err := s.SetCustomerCredentials(ctx, ownerB, a.ID, "x-user", "password3"); !errors.Is(err, billing.ErrNotFound) {
		t.Fatalf("expected not found for other owner, got %v", err)
	}
}

func TestCustomerPortalViews(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	mine := mustCustomer(t, s, ownerA, "Mine")
	other := mustCustomer(t, s, ownerA, "Other")
	p := mustProduct(t, s, ownerA, "Coffee", "20", 100, 5)

	bill := mustSale(t, s, ownerA, billing.SaleDraft{CustomerID: &mine.ID, Lines: []billing.DraftLine{{ProductID: p.ID, Quantity: 2}}})
	mustSale(t, s, ownerA, billing.SaleDraft{CustomerID: &other.ID, Lines: []billing.DraftLine{{ProductID: p.ID, Quantity: 1}}})
	if _, err := s.RecordPayment(ctx, ownerA, billing.PaymentDraft{BillID: bill.ID, Amount: dec("15")}); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	bills, err := s.CustomerBills(ctx, ownerA, mine.ID)
	if err != nil {
		t.Fatalf("CustomerBills: %v", err)
	}
	if len(bills) != 1 || bills[0].ID != bill.ID || len(bills[0].Items) != 1 {
		t.Fatalf("unexpected bills: %+v", bills)
	}
	assertDec(t, "pending", bills[0].PendingAmount, "25")

	payments, err := s.CustomerPayments(ctx, ownerA, mine.ID)
	if err != nil {
		t.Fatalf("CustomerPayments: %v", err)
	}
	if len(payments) != 1 || payments[0].BillID != bill.ID {
		t.Fatalf("unexpected payments: %+v", payments)
	}
	if theirs, _ := s.CustomerPayments(ctx, ownerA, other.ID); len(theirs) != 0 {
		t.Fatalf("payments leaked across customers: %+v", theirs)
	}
}
