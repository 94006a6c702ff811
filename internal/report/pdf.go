package report

import (
	"fmt"
	"io"

	"cafe-billing/internal/ledger"
	"cafe-billing/internal/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// The core PDF fonts are cp1252, so symbols outside it fall back to a code.
func currency(symbol string) string {
	switch symbol {
	case "", "₹":
		return "Rs."
	}
	for _, r := range symbol {
		if r > 0xff {
			return "Rs."
		}
	}
	return symbol
}

// BillPDF renders a printable A4 bill.
func BillPDF(w io.Writer, bill ledger.BillSummary, site models.SiteInfo) error {
	cur := currency(site.CurrencySymbol)
	amount := func(d decimal.Decimal) string { return cur + " " + d.StringFixed(2) }

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Bill "+bill.BillNumber, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(site.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, line := range []string{site.Tagline, site.Address, site.Phone, site.Email} {
		if line != "" {
			pdf.CellFormat(0, 5, tr(line), "", 1, "C", false, 0, "")
		}
	}
	if site.GSTNumber != "" {
		pdf.CellFormat(0, 5, "GSTIN: "+site.GSTNumber, "", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(95, 7, "Bill No: "+bill.BillNumber, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, "Date: "+bill.BillDate.Format("02 Jan 2006 15:04"), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, tr("Customer: "+customerName(bill.Customer)), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, "Status: "+bill.Status, "", 1, "R", false, 0, "")
	if bill.Customer != nil && bill.Customer.Phone != "" {
		pdf.CellFormat(0, 7, "Phone: "+bill.Customer.Phone, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(10, 8, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(90, 8, "Item", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Total", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	for i, item := range bill.Items {
		pdf.CellFormat(10, 8, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(90, 8, tr(item.ProductName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, amount(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, amount(item.TotalPrice), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	totals := []struct {
		label string
		value decimal.Decimal
	}{
		{"Subtotal", bill.Subtotal},
		{fmt.Sprintf("Discount (%s%%)", bill.DiscountPercent.String()), bill.DiscountAmount.Neg()},
		{fmt.Sprintf("Tax (%s%%)", bill.TaxPercent.String()), bill.TaxAmount},
		{"Total", bill.TotalAmount},
		{"Paid", bill.PaidAmount},
		{"Balance", bill.PendingAmount},
	}
	for _, t := range totals {
		style := ""
		if t.label == "Total" || t.label == "Balance" {
			style = "B"
		}
		pdf.SetFont("Arial", style, 11)
		pdf.CellFormat(155, 7, t.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, amount(t.value), "", 1, "R", false, 0, "")
	}

	if len(bill.Payments) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, "Payments", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, p := range bill.Payments {
			line := fmt.Sprintf("%s  %s  %s", p.PaymentDate.Format("02 Jan 2006"), p.PaymentMode, amount(p.Amount))
			if p.ReferenceNumber != "" {
				line += "  ref " + p.ReferenceNumber
			}
			pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
		}
	}

	if bill.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 5, tr("Notes: "+bill.Notes), "", "L", false)
	}
	if site.Footer != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 6, tr(site.Footer), "", 1, "C", false, 0, "")
	}

	return pdf.Output(w)
}
