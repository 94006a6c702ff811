package ledger

import (
	"context"
	"strings"
	"time"

	"cafe-billing/internal/billing"
	"cafe-billing/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentReceipt struct {
	Payment    models.Payment  `json:"payment"`
	Bill       BillSummary     `json:"bill"`
	PaidToDate decimal.Decimal `json:"paid_to_date"`
	Pending    decimal.Decimal `json:"pending"`
	Replayed   bool            `json:"replayed"`
}

// RecordPayment applies a payment to a bill. The bill row lock serializes
// payments on the same bill; status and customer due move in the same commit.
func (s *Service) RecordPayment(ctx context.Context, owner uint, draft billing.PaymentDraft) (*PaymentReceipt, error) {
	draft.Mode = strings.ToLower(strings.TrimSpace(draft.Mode))
	if draft.Mode == "" {
		draft.Mode = models.PaymentModeCash
	}
	draft.IdempotencyKey = strings.TrimSpace(draft.IdempotencyKey)
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	hash := paymentFingerprint(draft)
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var paymentID uint
	var replayed bool
	err := s.inTx(ctx, "record payment", func(tx *gorm.DB) error {
		replayed = false
		if draft.IdempotencyKey != "" {
			id, found, err := lookupKey(tx, owner, scopePayment, draft.IdempotencyKey, hash)
			if err != nil {
				return err
			}
			if found {
				paymentID, replayed = id, true
				return nil
			}
		}
		id, err := s.commitPayment(tx, owner, draft, hash)
		paymentID = id
		return err
	})
	if err != nil && draft.IdempotencyKey != "" && isDuplicate(err) {
		switch id, found, lerr := lookupKey(s.db.WithContext(ctx), owner, scopePayment, draft.IdempotencyKey, hash); {
		case lerr != nil && isKeyReuse(lerr):
			err = lerr
		case lerr == nil && found:
			paymentID, replayed, err = id, true, nil
		}
	}
	if err != nil {
		return nil, err
	}

	var payment models.Payment
	if err := findOwned(s.db.WithContext(ctx), owner, paymentID, "payment", &payment); err != nil {
		return nil, classify("load payment", err)
	}
	bill, err := s.loadBill(ctx, owner, payment.BillID)
	if err != nil {
		return nil, err
	}
	return &PaymentReceipt{
		Payment:    payment,
		Bill:       *bill,
		PaidToDate: bill.PaidAmount,
		Pending:    bill.PendingAmount,
		Replayed:   replayed,
	}, nil
}

func (s *Service) commitPayment(tx *gorm.DB, owner uint, draft billing.PaymentDraft, hash string) (uint, error) {
	var bill models.Bill
	if err := findOwned(forUpdate(tx), owner, draft.BillID, "bill", &bill); err != nil {
		return 0, err
	}

	var prior []models.Payment
	if err := tx.Select("id", "amount").Where("bill_id = ?", bill.ID).Find(&prior).Error; err != nil {
		return 0, err
	}
	paid := decimal.Zero
	for _, p := range prior {
		paid = paid.Add(p.Amount)
	}
	pending := billing.Pending(bill.TotalAmount, paid)

	if bill.Status == models.BillStatusPaid || (len(prior) > 0 && pending.IsZero()) {
		return 0, billing.Invalid("bill_id", "bill %s is already paid", bill.BillNumber)
	}
	if s.opts.RejectOverpayment && draft.Amount.GreaterThan(pending) {
		return 0, billing.Invalid("amount", "exceeds pending amount %s", pending.StringFixed(2))
	}

	paidAt := s.opts.Now()
	if draft.PaymentDate != nil {
		paidAt = *draft.PaymentDate
	}
	payment := models.Payment{
		OwnerID:         owner,
		BillID:          bill.ID,
		Amount:          draft.Amount,
		PaymentMode:     draft.Mode,
		ReferenceNumber: strings.TrimSpace(draft.ReferenceNumber),
		Notes:           strings.TrimSpace(draft.Notes),
		PaymentDate:     paidAt,
	}
	if err := tx.Omit("Bill").Create(&payment).Error; err != nil {
		return 0, err
	}

	status := billing.DeriveStatus(bill.TotalAmount, paid.Add(draft.Amount), len(prior)+1)
	if status != bill.Status {
		if err := tx.Model(&bill).Update("status", status).Error; err != nil {
			return 0, err
		}
	}

	if bill.CustomerID != nil {
		var customer models.Customer
		if err := findOwned(forUpdate(tx), owner, *bill.CustomerID, "customer", &customer); err != nil {
			return 0, err
		}
		due := billing.ReduceDue(customer.TotalDue, draft.Amount)
		if err := tx.Model(&customer).Update("total_due", due).Error; err != nil {
			return 0, err
		}
	}

	if err := saveKey(tx, owner, scopePayment, draft.IdempotencyKey, hash, payment.ID); err != nil {
		return 0, err
	}
	return payment.ID, nil
}

type PaymentFilter struct {
	BillID *uint
	Mode   string
	From   time.Time
	To     time.Time
	Page   int
	Limit  int
}

// ListPayments returns payments newest first with their bill and customer.
func (s *Service) ListPayments(ctx context.Context, owner uint, f PaymentFilter) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64
	err := s.read(ctx, "list payments", func(db *gorm.DB) error {
		scope := func(q *gorm.DB) *gorm.DB {
			q = owned(q, owner)
			if f.BillID != nil {
				q = q.Where("bill_id = ?", *f.BillID)
			}
			if f.Mode != "" {
				q = q.Where("payment_mode = ?", strings.ToLower(f.Mode))
			}
			if !f.From.IsZero() {
				q = q.Where("payment_date >= ?", f.From)
			}
			if !f.To.IsZero() {
				q = q.Where("payment_date < ?", f.To)
			}
			return q
		}
		if err := scope(db.Model(&models.Payment{})).Count(&total).Error; err != nil {
			return err
		}
		q := scope(db).Preload("Bill").Preload("Bill.Customer").Order("payment_date desc").Order("id desc")
		if f.Limit > 0 {
			q = q.Limit(f.Limit).Offset((max(f.Page, 1) - 1) * f.Limit)
		}
		return q.Find(&payments).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}
