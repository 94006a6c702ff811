package report

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cafe-billing/internal/ledger"
	"cafe-billing/internal/models"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02 15:04"

// Kinds lists the report names accepted by Write.
var Kinds = []string{"sales", "customers", "products", "suppliers", "payments"}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func customerName(c *models.Customer) string {
	if c == nil {
		return "Walk-in"
	}
	return c.Name
}

func writeAll(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func Sales(w io.Writer, bills []ledger.BillSummary) error {
	rows := make([][]string, 0, len(bills))
	for _, b := range bills {
		items := 0
		for _, item := range b.Items {
			items += item.Quantity
		}
		rows = append(rows, []string{
			b.BillNumber,
			date(b.BillDate),
			customerName(b.Customer),
			strconv.Itoa(items),
			money(b.Subtotal),
			money(b.DiscountAmount),
			money(b.TaxAmount),
			money(b.TotalAmount),
			money(b.PaidAmount),
			money(b.PendingAmount),
			b.Status,
		})
	}
	return writeAll(w, []string{
		"Bill Number", "Date", "Customer", "Items", "Subtotal", "Discount",
		"Tax", "Total", "Paid", "Pending", "Status",
	}, rows)
}

func Customers(w io.Writer, customers []models.Customer) error {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{c.CustomerCode, c.Name, c.Phone, c.Email, c.Address, money(c.TotalDue), date(c.CreatedAt)})
	}
	return writeAll(w, []string{"Customer ID", "Name", "Phone", "Email", "Address", "Total Due", "Created"}, rows)
}

func Products(w io.Writer, products []models.Product) error {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		supplier, status := "", "OK"
		if p.Supplier != nil {
			supplier = p.Supplier.Name
		}
		if p.LowStock() {
			status = "LOW"
		}
		rows = append(rows, []string{
			p.Ref, p.ProductCode, p.Name, p.Category, money(p.Price),
			strconv.Itoa(p.Stock), strconv.Itoa(p.ReorderLevel), p.Unit, supplier, status,
		})
	}
	return writeAll(w, []string{
		"Product ID", "Code", "Name", "Category", "Price", "Stock",
		"Reorder Level", "Unit", "Supplier", "Stock Status",
	}, rows)
}

func Suppliers(w io.Writer, suppliers []models.Supplier) error {
	rows := make([][]string, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, []string{s.SupplierCode, s.Name, s.Company, s.Phone, s.Email, s.Address, s.GSTNumber})
	}
	return writeAll(w, []string{"Supplier ID", "Name", "Company", "Phone", "Email", "Address", "GST Number"}, rows)
}

func Payments(w io.Writer, payments []models.Payment) error {
	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		billNumber, customer := "", ""
		if p.Bill != nil {
			billNumber, customer = p.Bill.BillNumber, customerName(p.Bill.Customer)
		}
		rows = append(rows, []string{date(p.PaymentDate), billNumber, customer, money(p.Amount), p.PaymentMode, p.ReferenceNumber, p.Notes})
	}
	return writeAll(w, []string{"Date", "Bill Number", "Customer", "Amount", "Mode", "Reference", "Notes"}, rows)
}

var ErrUnknownKind = errors.New("unknown report")

// Range bounds the sales and payments reports. Zero values are open.
type Range struct {
	From time.Time
	To   time.Time
}

// Write renders the named report for one owner.
func Write(ctx context.Context, w io.Writer, svc *ledger.Service, owner uint, kind string, r Range) error {
	switch kind {
	case "sales":
		sales, err := svc.SalesReport(ctx, owner, r.From, r.To)
		if err != nil {
			return err
		}
		return Sales(w, sales.Bills)
	case "customers":
		customers, err := svc.ListCustomers(ctx, owner, "")
		if err != nil {
			return err
		}
		return Customers(w, customers)
	case "products":
		products, err := svc.ListProducts(ctx, owner, ledger.ProductFilter{})
		if err != nil {
			return err
		}
		return Products(w, products)
	case "suppliers":
		suppliers, err := svc.ListSuppliers(ctx, owner, "")
		if err != nil {
			return err
		}
		return Suppliers(w, suppliers)
	case "payments":
		payments, _, err := svc.ListPayments(ctx, owner, ledger.PaymentFilter{From: r.From, To: r.To})
		if err != nil {
			return err
		}
		return Payments(w, payments)
	}
	return fmt.Errorf("%w %q, expected one of %s", ErrUnknownKind, kind, strings.Join(Kinds, ", "))
}
