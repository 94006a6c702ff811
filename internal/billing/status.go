package billing

import (
	"cafe-billing/internal/models"

	"github.com/shopspring/decimal"
)

// DeriveStatus maps the amount paid so far on a bill to its payment status.
// A bill with no payments stays unpaid even when its total is zero.
func DeriveStatus(total, paid decimal.Decimal, payments int) string {
	switch {
	case payments == 0:
		return models.BillStatusUnpaid
	case paid.GreaterThanOrEqual(total):
		return models.BillStatusPaid
	default:
		return models.BillStatusPartial
	}
}

// Pending is the unpaid remainder of a bill, never negative.
func Pending(total, paid decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, total.Sub(paid))
}

// ReduceDue applies a payment to a customer balance, clamping at zero.
func ReduceDue(due, amount decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, due.Sub(amount))
}
