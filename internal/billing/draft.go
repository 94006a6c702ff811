package billing

import (
	"slices"
	"strings"
	"time"

	"cafe-billing/internal/models"

	"github.com/shopspring/decimal"
)

// DraftLine asks for Quantity units of a product.
type DraftLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// SaleDraft is a bill before it is priced and committed.
type SaleDraft struct {
	CustomerID      *uint           `json:"customer_id"`
	Lines           []DraftLine     `json:"items"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	Notes           string          `json:"notes"`
	IdempotencyKey  string          `json:"idempotency_key"`
}

// Validate checks the draft shape. Stock and ownership are checked by the store.
func (d SaleDraft) Validate() error {
	if len(d.Lines) == 0 {
		return Invalid("items", "at least one line item is required")
	}
	for i, l := range d.Lines {
		if l.ProductID == 0 {
			return Invalid("items", "line %d has no product", i+1)
		}
		if l.Quantity <= 0 {
			return Invalid("items", "line %d quantity must be positive", i+1)
		}
	}
	if err := checkPercent("discount_percent", d.DiscountPercent); err != nil {
		return err
	}
	if err := checkPercent("tax_percent", d.TaxPercent); err != nil {
		return err
	}
	if len(d.IdempotencyKey) > 64 {
		return Invalid("idempotency_key", "must be at most 64 characters")
	}
	return nil
}

// MergedLines folds repeated products into one line, keeping first-seen order.
func (d SaleDraft) MergedLines() []DraftLine {
	out := make([]DraftLine, 0, len(d.Lines))
	index := make(map[uint]int, len(d.Lines))
	for _, l := range d.Lines {
		if i, ok := index[l.ProductID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out
}

type PaymentDraft struct {
	BillID          uint            `json:"bill_id"`
	Amount          decimal.Decimal `json:"amount"`
	Mode            string          `json:"payment_mode"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
	PaymentDate     *time.Time      `json:"payment_date"`
	IdempotencyKey  string          `json:"idempotency_key"`
}

func (d PaymentDraft) Validate() error {
	if d.BillID == 0 {
		return Invalid("bill_id", "is required")
	}
	if !d.Amount.IsPositive() {
		return Invalid("amount", "must be greater than zero")
	}
	if d.Amount.Exponent() < -2 && !d.Amount.Equal(d.Amount.Round(2)) {
		return Invalid("amount", "at most two decimal places allowed")
	}
	if !slices.Contains(models.PaymentModes, strings.ToLower(d.Mode)) {
		return Invalid("payment_mode", "must be one of %s", strings.Join(models.PaymentModes, ", "))
	}
	if len(d.IdempotencyKey) > 64 {
		return Invalid("idempotency_key", "must be at most 64 characters")
	}
	return nil
}
