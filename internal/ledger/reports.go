package ledger

import (
	"context"
	"time"

	"cafe-billing/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DailySales struct {
	Date  string          `json:"date"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

type DashboardStats struct {
	Customers      int64           `json:"total_customers"`
	Products       int64           `json:"total_products"`
	Suppliers      int64           `json:"total_suppliers"`
	LowStock       int64           `json:"low_stock_count"`
	Bills          int64           `json:"total_bills"`
	OpenBills      int64           `json:"open_bills"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	TodaySales     decimal.Decimal `json:"today_sales"`
	CollectedToday decimal.Decimal `json:"collected_today"`
	OutstandingDue decimal.Decimal `json:"outstanding_due"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	LastSevenDays  []DailySales    `json:"last_seven_days"`
}

type sumRow struct {
	Total decimal.Decimal
}

func sum(q *gorm.DB, expr string) (decimal.Decimal, error) {
	var row sumRow
	err := q.Select("COALESCE(SUM(" + expr + "), 0) AS total").Scan(&row).Error
	return row.Total, err
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

func (s *Service) Dashboard(ctx context.Context, owner uint) (*DashboardStats, error) {
	stats := DashboardStats{LastSevenDays: []DailySales{}}
	now := s.opts.Now()
	start, end := dayBounds(now)

	err := s.read(ctx, "dashboard", func(db *gorm.DB) error {
		counts := []struct {
			model any
			where string
			dest  *int64
		}{
			{&models.Customer{}, "", &stats.Customers},
			{&models.Product{}, "", &stats.Products},
			{&models.Supplier{}, "", &stats.Suppliers},
			{&models.Product{}, "stock <= reorder_level", &stats.LowStock},
			{&models.Bill{}, "", &stats.Bills},
			{&models.Bill{}, "status <> 'paid'", &stats.OpenBills},
		}
		for _, c := range counts {
			q := owned(db.Model(c.model), owner)
			if c.where != "" {
				q = q.Where(c.where)
			}
			if err := q.Count(c.dest).Error; err != nil {
				return err
			}
		}

		var err error
		bills := func() *gorm.DB { return owned(db.Model(&models.Bill{}), owner) }
		if stats.TotalSales, err = sum(bills(), "total_amount"); err != nil {
			return err
		}
		if stats.TodaySales, err = sum(bills().Where("bill_date >= ? AND bill_date < ?", start, end), "total_amount"); err != nil {
			return err
		}
		if stats.CollectedToday, err = sum(owned(db.Model(&models.Payment{}), owner).
			Where("payment_date >= ? AND payment_date < ?", start, end), "amount"); err != nil {
			return err
		}
		if stats.OutstandingDue, err = sum(owned(db.Model(&models.Customer{}), owner), "total_due"); err != nil {
			return err
		}
		if stats.InventoryValue, err = sum(owned(db.Model(&models.Product{}), owner), "price * stock"); err != nil {
			return err
		}

		for i := 6; i >= 0; i-- {
			dayStart, dayEnd := dayBounds(now.AddDate(0, 0, -i))
			total, err := sum(bills().Where("bill_date >= ? AND bill_date < ?", dayStart, dayEnd), "total_amount")
			if err != nil {
				return err
			}
			stats.LastSevenDays = append(stats.LastSevenDays, DailySales{
				Date:  dayStart.Format("2006-01-02"),
				Label: dayStart.Format("Jan 02"),
				Total: total,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

type SalesSummary struct {
	Revenue      decimal.Decimal `json:"total_revenue"`
	Collected    decimal.Decimal `json:"total_collected"`
	Pending      decimal.Decimal `json:"total_pending"`
	Transactions int             `json:"total_transactions"`
	ItemsSold    int             `json:"products_sold"`
}

type SalesReport struct {
	Summary SalesSummary  `json:"summary"`
	Bills   []BillSummary `json:"transactions"`
}

// SalesReport covers bills dated in [from, to). Zero bounds are open.
func (s *Service) SalesReport(ctx context.Context, owner uint, from, to time.Time) (*SalesReport, error) {
	var bills []models.Bill
	err := s.read(ctx, "sales report", func(db *gorm.DB) error {
		q := owned(db, owner).Preload("Customer").Preload("Items").Preload("Payments")
		if !from.IsZero() {
			q = q.Where("bill_date >= ?", from)
		}
		if !to.IsZero() {
			q = q.Where("bill_date < ?", to)
		}
		return q.Order("bill_date desc").Order("id desc").Find(&bills).Error
	})
	if err != nil {
		return nil, err
	}

	report := SalesReport{
		Summary: SalesSummary{Revenue: decimal.Zero, Collected: decimal.Zero, Pending: decimal.Zero},
		Bills:   make([]BillSummary, len(bills)),
	}
	for i, b := range bills {
		view := summarize(b)
		report.Bills[i] = view
		report.Summary.Revenue = report.Summary.Revenue.Add(b.TotalAmount)
		report.Summary.Collected = report.Summary.Collected.Add(view.PaidAmount)
		report.Summary.Pending = report.Summary.Pending.Add(view.PendingAmount)
		report.Summary.Transactions++
		for _, item := range b.Items {
			report.Summary.ItemsSold += item.Quantity
		}
	}
	return &report, nil
}
