package ledger

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"cafe-billing/internal/billing"
	"cafe-billing/internal/models"
	"cafe-billing/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	ownerA uint = 1
	ownerB uint = 2
)

var testNow = time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, mutate ...func(*Options)) (*Service, *gorm.DB) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	opts := Options{
		StoreTimeout: 10 * time.Second,
		MaxTxRetries: 2,
		Now:          func() time.Time { return testNow },
	}
	for _, m := range mutate {
		m(&opts)
	}
	return New(db, opts), db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intp(v int) *int { return &v }

func uintp(v uint) *uint { return &v }

func mustProduct(t *testing.T, s *Service, owner uint, name, price string, stock, reorder int) *models.Product {
	t.Helper()
	p, err := s.CreateProduct(context.Background(), owner, ProductInput{
		Name:         name,
		Price:        dec(price),
		Stock:        intp(stock),
		ReorderLevel: intp(reorder),
	})
	if err != nil {
		t.Fatalf("create product %s: %v", name, err)
	}
	return p
}

func mustCustomer(t *testing.T, s *Service, owner uint, name string) *models.Customer {
	t.Helper()
	c, err := s.CreateCustomer(context.Background(), owner, CustomerInput{Name: name, Phone: "98450 00000"})
	if err != nil {
		t.Fatalf("create customer %s: %v", name, err)
	}
	return c
}

func mustSale(t *testing.T, s *Service, owner uint, draft billing.SaleDraft) BillSummary {
	t.Helper()
	res, err := s.CreateSale(context.Background(), owner, draft)
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}
	return res.Bill
}

func stockOf(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p models.Product
	if err := db.Unscoped().Take(&p, id).Error; err != nil {
		t.Fatalf("load product %d: %v", id, err)
	}
	return p.Stock
}

func dueOf(t *testing.T, db *gorm.DB, id uint) decimal.Decimal {
	t.Helper()
	var c models.Customer
	if err := db.Take(&c, id).Error; err != nil {
		t.Fatalf("load customer %d: %v", id, err)
	}
	return c.TotalDue
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func assertDec(t *testing.T, what string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Fatalf("%s = %s, want %s", what, got, want)
	}
}
