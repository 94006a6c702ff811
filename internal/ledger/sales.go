package ledger

import (
	"context"
	"errors"
	"sort"
	"strings"

	"cafe-billing/internal/billing"
	"cafe-billing/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillSummary is a bill with its payment position.
type BillSummary struct {
	models.Bill
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

func summarize(b models.Bill) BillSummary {
	paid := decimal.Zero
	for _, p := range b.Payments {
		paid = paid.Add(p.Amount)
	}
	return BillSummary{Bill: b, PaidAmount: paid, PendingAmount: billing.Pending(b.TotalAmount, paid)}
}

type SaleResult struct {
	Bill     BillSummary `json:"bill"`
	Replayed bool        `json:"replayed"`
}

// CreateSale turns a draft into a committed bill. Bill, items, stock
// decrements and the customer's due change commit together or not at all.
// A repeated idempotency key returns the bill created by the first call;
// reusing the key for a different draft is a conflict.
func (s *Service) CreateSale(ctx context.Context, owner uint, draft billing.SaleDraft) (*SaleResult, error) {
	draft.IdempotencyKey = strings.TrimSpace(draft.IdempotencyKey)
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	hash := saleFingerprint(draft)
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var billID uint
	var replayed bool
	err := s.inTx(ctx, "create sale", func(tx *gorm.DB) error {
		replayed = false
		if draft.IdempotencyKey != "" {
			id, found, err := lookupKey(tx, owner, scopeSale, draft.IdempotencyKey, hash)
			if err != nil {
				return err
			}
			if found {
				billID, replayed = id, true
				return nil
			}
		}
		id, err := s.commitSale(tx, owner, draft, hash)
		billID = id
		return err
	})
	if err != nil && draft.IdempotencyKey != "" && isDuplicate(err) {
		// a concurrent call with the same key won the insert
		switch id, found, lerr := lookupKey(s.db.WithContext(ctx), owner, scopeSale, draft.IdempotencyKey, hash); {
		case lerr != nil && isKeyReuse(lerr):
			err = lerr
		case lerr == nil && found:
			billID, replayed, err = id, true, nil
		}
	}
	if err != nil {
		return nil, err
	}

	bill, err := s.loadBill(ctx, owner, billID)
	if err != nil {
		return nil, err
	}
	return &SaleResult{Bill: *bill, Replayed: replayed}, nil
}

func (s *Service) commitSale(tx *gorm.DB, owner uint, draft billing.SaleDraft, hash string) (uint, error) {
	lines := draft.MergedLines()

	var customer models.Customer
	if draft.CustomerID != nil {
		if err := findOwned(forUpdate(tx), owner, *draft.CustomerID, "customer", &customer); err != nil {
			return 0, err
		}
	}

	products, err := lockProducts(tx, owner, lines)
	if err != nil {
		return 0, err
	}
	priced := make([]billing.Line, len(lines))
	for i, l := range lines {
		p := products[l.ProductID]
		if p.Stock < l.Quantity {
			return 0, &billing.InsufficientStockError{ProductID: p.ID, Product: p.Name, Available: p.Stock, Requested: l.Quantity}
		}
		priced[i] = billing.Line{Quantity: l.Quantity, UnitPrice: p.Price}
	}

	totals, err := billing.ComputeTotals(priced, draft.DiscountPercent, draft.TaxPercent)
	if err != nil {
		return 0, err
	}
	totals = totals.Rounded()

	number, err := s.ids.Next(tx, owner, KindBill)
	if err != nil {
		return 0, err
	}

	bill := models.Bill{
		OwnerID:         owner,
		BillNumber:      number,
		CustomerID:      draft.CustomerID,
		Subtotal:        totals.Subtotal,
		DiscountPercent: draft.DiscountPercent,
		DiscountAmount:  totals.DiscountAmount,
		TaxPercent:      draft.TaxPercent,
		TaxAmount:       totals.TaxAmount,
		TotalAmount:     totals.TotalAmount,
		Status:          models.BillStatusUnpaid,
		BillDate:        s.opts.Now(),
		Notes:           strings.TrimSpace(draft.Notes),
	}
	if err := tx.Omit("Customer", "Items", "Payments").Create(&bill).Error; err != nil {
		return 0, err
	}

	items := make([]models.BillItem, len(lines))
	for i, l := range lines {
		p := products[l.ProductID]
		productID := p.ID
		items[i] = models.BillItem{
			BillID:      bill.ID,
			ProductID:   &productID,
			ProductName: p.Name,
			Quantity:    l.Quantity,
			UnitPrice:   p.Price,
			TotalPrice:  priced[i].Total().Round(2),
		}
	}
	if err := tx.Create(&items).Error; err != nil {
		return 0, err
	}

	for _, l := range lines {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", l.ProductID, l.Quantity).
			Update("stock", gorm.Expr("stock - ?", l.Quantity))
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected == 0 {
			p := products[l.ProductID]
			return 0, &billing.InsufficientStockError{ProductID: p.ID, Product: p.Name, Available: p.Stock, Requested: l.Quantity}
		}
	}

	if draft.CustomerID != nil {
		due := customer.TotalDue.Add(bill.TotalAmount)
		if err := tx.Model(&customer).Update("total_due", due).Error; err != nil {
			return 0, err
		}
	}

	if err := saveKey(tx, owner, scopeSale, draft.IdempotencyKey, hash, bill.ID); err != nil {
		return 0, err
	}
	return bill.ID, nil
}

// lockProducts loads and row-locks every product on the draft in id order so
// concurrent sales acquire locks in the same sequence.
func lockProducts(tx *gorm.DB, owner uint, lines []billing.DraftLine) (map[uint]models.Product, error) {
	ids := make([]uint, len(lines))
	for i, l := range lines {
		ids[i] = l.ProductID
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make(map[uint]models.Product, len(ids))
	for _, id := range ids {
		var p models.Product
		if err := findOwned(forUpdate(tx), owner, id, "product", &p); err != nil {
			return nil, err
		}
		out[id] = p
	}
	return out, nil
}

// QuoteLine is a priced draft line.
type QuoteLine struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	InStock     bool            `json:"in_stock"`
}

type Quote struct {
	Lines []QuoteLine `json:"items"`
	billing.Totals
}

// QuoteSale prices a draft at current prices without writing anything.
func (s *Service) QuoteSale(ctx context.Context, owner uint, draft billing.SaleDraft) (*Quote, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var quote Quote
	err := s.read(ctx, "quote sale", func(db *gorm.DB) error {
		lines := draft.MergedLines()
		priced := make([]billing.Line, len(lines))
		for i, l := range lines {
			var p models.Product
			if err := findOwned(db, owner, l.ProductID, "product", &p); err != nil {
				return err
			}
			priced[i] = billing.Line{Quantity: l.Quantity, UnitPrice: p.Price}
			quote.Lines = append(quote.Lines, QuoteLine{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    l.Quantity,
				UnitPrice:   p.Price,
				TotalPrice:  priced[i].Total().Round(2),
				InStock:     p.Stock >= l.Quantity,
			})
		}
		totals, err := billing.ComputeTotals(priced, draft.DiscountPercent, draft.TaxPercent)
		if err != nil {
			return err
		}
		quote.Totals = totals.Rounded()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

type BillFilter struct {
	// Status is a bill status, or "open" for unpaid and partial bills.
	Status     string
	CustomerID *uint
	Search     string
	WithItems  bool
	Page       int
	Limit      int
}

func (f BillFilter) apply(db *gorm.DB) *gorm.DB {
	switch f.Status {
	case "":
	case "open":
		db = db.Where("status IN ?", []string{models.BillStatusUnpaid, models.BillStatusPartial})
	default:
		db = db.Where("status = ?", f.Status)
	}
	if f.CustomerID != nil {
		db = db.Where("customer_id = ?", *f.CustomerID)
	}
	if f.Search != "" {
		db = db.Where("bill_number LIKE ?", "%"+f.Search+"%")
	}
	return db
}

// ListBills returns bills newest first. Limit <= 0 returns every match.
func (s *Service) ListBills(ctx context.Context, owner uint, f BillFilter) ([]BillSummary, int64, error) {
	var bills []models.Bill
	var total int64
	err := s.read(ctx, "list bills", func(db *gorm.DB) error {
		if err := f.apply(owned(db.Model(&models.Bill{}), owner)).Count(&total).Error; err != nil {
			return err
		}
		q := f.apply(owned(db, owner)).
			Preload("Customer").Preload("Payments").
			Order("bill_date desc").Order("id desc")
		if f.WithItems {
			q = q.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
		}
		if f.Limit > 0 {
			page := max(f.Page, 1)
			q = q.Limit(f.Limit).Offset((page - 1) * f.Limit)
		}
		return q.Find(&bills).Error
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]BillSummary, len(bills))
	for i, b := range bills {
		out[i] = summarize(b)
	}
	return out, total, nil
}

func (s *Service) GetBill(ctx context.Context, owner, id uint) (*BillSummary, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.loadBill(ctx, owner, id)
}

func (s *Service) loadBill(ctx context.Context, owner, id uint) (*BillSummary, error) {
	var bill models.Bill
	err := owned(s.db.WithContext(ctx), owner).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payment_date").Order("id") }).
		Where("id = ?", id).
		Take(&bill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &billing.NotFoundError{Entity: "bill", ID: id}
	}
	if err != nil {
		return nil, classify("load bill", err)
	}
	sum := summarize(bill)
	return &sum, nil
}
