package billing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Line is a priced sale line.
type Line struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Total returns quantity * unit price.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// ComputeTotals prices a bill. Discount applies to the subtotal and tax to the
// discounted amount. The result is exact; call Rounded before persisting.
func ComputeTotals(lines []Line, discountPct, taxPct decimal.Decimal) (Totals, error) {
	if err := checkPercent("discount_percent", discountPct); err != nil {
		return Totals{}, err
	}
	if err := checkPercent("tax_percent", taxPct); err != nil {
		return Totals{}, err
	}

	subtotal := decimal.Zero
	for i, l := range lines {
		if l.Quantity < 0 {
			return Totals{}, Invalid("items", "line %d has negative quantity", i+1)
		}
		if l.UnitPrice.IsNegative() {
			return Totals{}, Invalid("items", "line %d has negative unit price", i+1)
		}
		subtotal = subtotal.Add(l.Total())
	}

	discount := subtotal.Mul(discountPct).Div(hundred)
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(taxPct).Div(hundred)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		TotalAmount:    taxable.Add(tax),
	}, nil
}

// Rounded rounds each component to two places and rebuilds the total from the
// rounded parts so that total == subtotal - discount + tax holds on stored values.
func (t Totals) Rounded() Totals {
	r := Totals{
		Subtotal:       t.Subtotal.Round(2),
		DiscountAmount: t.DiscountAmount.Round(2),
		TaxAmount:      t.TaxAmount.Round(2),
	}
	r.TotalAmount = r.Subtotal.Sub(r.DiscountAmount).Add(r.TaxAmount)
	return r
}

func checkPercent(field string, pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return Invalid(field, "must be between 0 and 100, got %s", pct.String())
	}
	// stored as decimal(5,2); totals must be reproducible from the stored value
	if pct.Exponent() < -2 && !pct.Equal(pct.Round(2)) {
		return Invalid(field, "at most two decimal places allowed")
	}
	return nil
}
