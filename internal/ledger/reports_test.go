package ledger

import (
	"context"
	"testing"
	"time"

	"cafe-billing/internal/billing"
)

func TestDashboard(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	c := mustCustomer(t, s, ownerA, "Dash")
	low := mustProduct(t, s, ownerA, "Low", "50", 4, 5)
	mustProduct(t, s, ownerA, "Plenty", "10", 100, 5)
	if _, err := s.CreateSupplier(ctx, ownerA, SupplierInput{Name: "Supplier"}); err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}

	bill := mustSale(t, s, ownerA, billing.SaleDraft{CustomerID: &c.ID, Lines: []billing.DraftLine{{ProductID: low.ID, Quantity: 3}}, TaxPercent: dec("18")})
	if _, err := s.RecordPayment(ctx, ownerA, billing.PaymentDraft{BillID: bill.ID, Amount: dec("100")}); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	stats, err := s.Dashboard(ctx, ownerA)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if stats.Customers != 1 || stats.Products != 2 || stats.Suppliers != 1 || stats.LowStock != 1 || stats.Bills != 1 || stats.OpenBills != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	assertDec(t, "total sales", stats.TotalSales, "177")
	assertDec(t, "today sales", stats.TodaySales, "177")
	assertDec(t, "collected today", stats.CollectedToday, "100")
	assertDec(t, "outstanding", stats.OutstandingDue, "77")
	assertDec(t, "inventory value", stats.InventoryValue, "1050")
	if len(stats.LastSevenDays) != 7 || stats.LastSevenDays[6].Date != "2025-03-14" {
		t.Fatalf("unexpected chart: %+v", stats.LastSevenDays)
	}
	assertDec(t, "today in chart", stats.LastSevenDays[6].Total, "177")

	empty, err := s.Dashboard(ctx, ownerB)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if empty.Bills != 0 || !empty.TotalSales.IsZero() {
		t.Fatalf("owner isolation broken: %+v", empty)
	}
}

func TestSalesReport(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	p := mustProduct(t, s, ownerA, "Print", "5", 100, 5)
	bill := mustSale(t, s, ownerA, billing.SaleDraft{Lines: []billing.DraftLine{{ProductID: p.ID, Quantity: 4}}})
	mustSale(t, s, ownerA, billing.SaleDraft{Lines: []billing.DraftLine{{ProductID: p.ID, Quantity: 6}}})
	if _, err := s.RecordPayment(ctx, ownerA, billing.PaymentDraft{BillID: bill.ID, Amount: dec("20")}); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	report, err := s.SalesReport(ctx, ownerA, testNow.Add(-time.Hour), testNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("SalesReport: %v", err)
	}
	if report.Summary.Transactions != 2 || report.Summary.ItemsSold != 10 {
		t.Fatalf("unexpected summary: %+v", report.Summary)
	}
	assertDec(t, "revenue", report.Summary.Revenue, "50")
	assertDec(t, "collected", report.Summary.Collected, "20")
	assertDec(t, "pending", report.Summary.Pending, "30")

	later, err := s.SalesReport(ctx, ownerA, testNow.Add(time.Hour), time.Time{})
	if err != nil {
		t.Fatalf("SalesReport: %v", err)
	}
	if len(later.Bills) != 0 {
		t.Fatalf("expected no bills after range, got %d", len(later.Bills))
	}
}
