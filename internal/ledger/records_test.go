package ledger

import (
	"context"
	"errors"
	"testing"

	"cafe-billing/internal/billing"
	"cafe-billing/internal/models"
)

func TestCustomerLifecycle(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()

	c, err := s.CreateCustomer(ctx, ownerA, CustomerInput{Name: "  Asha  ", Email: "asha@example.com"})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if c.CustomerCode != "CUST0001" || c.Name != "Asha" || !c.TotalDue.IsZero() {
		t.Fatalf("unexpected customer: %+v", c)
	}

	updated, err := s.UpdateCustomer(ctx, ownerA, c.ID, CustomerInput{Name: "Asha K", Phone: "99999"})
	if err != nil {
		t.Fatalf("UpdateCustomer: %v", err)
	}
	if updated.Name != "Asha K" || updated.CustomerCode != "CUST0001" {
		t.Fatalf("unexpected update: %+v", updated)
	}

	list, err := s.ListCustomers(ctx, ownerA, "asha")
	if err != nil || len(list) != 1 {
		t.Fatalf("ListCustomers = %v, %v", list, err)
	}

	if _, err := s.SetCustomerCredentials(ctx, ownerA, c.ID, "asha", "secret99"); err != nil {
		t.Fatalf("SetCustomerCredentials: %v", err)
	}
	if err := s.DeleteCustomer(ctx, ownerA, c.ID); err != nil {
		t.Fatalf("DeleteCustomer: %v", err)
	}
	if n := count(t, db, &models.CustomerCredential{}); n != 0 {
		t.Fatalf("credentials left behind: %d", n)
	}
	if _, err := s.GetCustomer(ctx, ownerA, c.ID); !errors.Is(err, billing.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestDeleteCustomerWithBillsIsRestricted(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()
	c := mustCustomer(t, s, ownerA, "Regular")
	p := mustProduct(t, s, ownerA, "Tea", "10", 10, 1)
	mustSale(t, s, ownerA, billing.SaleDraft{CustomerID: &c.ID, Lines: []billing.DraftLine{{ProductID: p.ID, Quantity: 1}}})

	err := s.DeleteCustomer(ctx, ownerA, c.ID)
	var conflict *billing.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if billing.IsRetryable(err) {
		t.Fatal("restricted delete must not be retryable")
	}
	if n := count(t, db, &models.Customer{}); n != 1 {
		t.Fatalf("customers = %d, want 1", n)
	}
}

func TestCustomerValidation(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	if _, err := s.CreateCustomer(ctx, ownerA, CustomerInput{Name: " "}); !errors.Is(err, billing.ErrValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
	if _, err := s.CreateCustomer(ctx, ownerA, CustomerInput{Name: "X", Email: "not-an-email"}); !errors.Is(err, billing.ErrValidation) {
		t.Fatalf("expected validation error for email, got %v", err)
	}
	if _, err := s.UpdateCustomer(ctx, ownerB, 1, CustomerInput{Name: "X"}); !errors.Is(err, billing.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProductLifecycle(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	sup, err := s.CreateSupplier(ctx, ownerA, SupplierInput{Name: "Paper House", GSTNumber: "29abcde1234f1z5"})
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	if sup.SupplierCode != "SUP0001" || sup.GSTNumber != "29ABCDE1234F1Z5" {
		t.Fatalf("unexpected supplier: %+v", sup)
	}

	p, err := s.CreateProduct(ctx, ownerA, ProductInput{Name: "Bond Paper", Price: dec("4.5"), SupplierID: &sup.ID, Stock: intp(0)})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if p.Ref != "PROD0001" || p.Unit != "pcs" || p.ReorderLevel != 10 || p.Stock != 0 {
		t.Fatalf("unexpected product defaults: %+v", p)
	}

	p, err = s.UpdateProduct(ctx, ownerA, p.ID, ProductInput{Name: "Bond Paper", Price: dec("5"), ReorderLevel: intp(0), Unit: "sheet"})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if p.ReorderLevel != 0 || p.SupplierID != nil || p.Unit != "sheet" {
		t.Fatalf("unexpected update: %+v", p)
	}

	if _, err := s.CreateProduct(ctx, ownerA, ProductInput{Name: "Bad", Price: dec("-1")}); !errors.Is(err, billing.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := s.CreateProduct(ctx, ownerA, ProductInput{Name: "Bad", Price: dec("1"), Stock: intp(-2)}); !errors.Is(err, billing.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := s.CreateProduct(ctx, ownerB, ProductInput{Name: "Stolen", Price: dec("1"), SupplierID: &sup.ID}); !errors.Is(err, billing.ErrNotFound) {
		t.Fatalf("expected supplier not found for other owner, got %v", err)
	}

	if err := s.DeleteProduct(ctx, ownerA, p.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	list, err := s.ListProducts(ctx, ownerA, ProductFilter{})
	if err != nil || len(list) != 0 {
		t.Fatalf("deleted product still listed: %v %v", list, err)
	}
}

func TestDeleteSupplierClearsProducts(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()
	sup, err := s.CreateSupplier(ctx, ownerA, SupplierInput{Name: "Ink World"})
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	active, err := s.CreateProduct(ctx, ownerA, ProductInput{Name: "Black Ink", Price: dec("300"), SupplierID: &sup.ID})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	retired, err := s.CreateProduct(ctx, ownerA, ProductInput{Name: "Blue Ink", Price: dec("300"), SupplierID: &sup.ID})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if err := s.DeleteProduct(ctx, ownerA, retired.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	if err := s.DeleteSupplier(ctx, ownerA, sup.ID); err != nil {
		t.Fatalf("DeleteSupplier: %v", err)
	}
	for _, id := range []uint{active.ID, retired.ID} {
		var p models.Product
		if err := db.Unscoped().Take(&p, id).Error; err != nil {
			t.Fatalf("load product: %v", err)
		}
		if p.SupplierID != nil {
			t.Fatalf("product %d still references supplier %d", id, *p.SupplierID)
		}
	}
	if _, err := s.GetSupplier(ctx, ownerA, sup.ID); !errors.Is(err, billing.ErrNotFound) {
		t.Fatalf("expected supplier gone, got %v", err)
	}
}

func TestListSuppliersSearch(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	for _, name := range []string{"Alpha Traders", "Beta Stationers"} {
		if _, err := s.CreateSupplier(ctx, ownerA, SupplierInput{Name: name, Company: name + " Pvt Ltd"}); err != nil {
			t.Fatalf("CreateSupplier: %v", err)
		}
	}
	got, err := s.ListSuppliers(ctx, ownerA, "beta")
	if err != nil {
		t.Fatalf("ListSuppliers: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Beta Stationers" {
		t.Fatalf("unexpected search result: %+v", got)
	}
	if _, err := s.UpdateSupplier(ctx, ownerA, got[0].ID, SupplierInput{Name: ""}); !errors.Is(err, billing.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
