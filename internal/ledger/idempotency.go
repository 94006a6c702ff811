package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"cafe-billing/internal/billing"
	"cafe-billing/internal/models"

	"gorm.io/gorm"
)

const (
	scopeSale    = "sale"
	scopePayment = "payment"
)

const reasonKeyReused = "idempotency key reused with a different request"

// lookupKey returns the record stored under key. A key stored for another
// request body yields a non-retryable conflict.
func lookupKey(db *gorm.DB, owner uint, scope, key, hash string) (uint, bool, error) {
	var rec models.IdempotencyKey
	err := db.Where(&models.IdempotencyKey{OwnerID: owner, Scope: scope, Key: key}).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if rec.RequestHash != "" && rec.RequestHash != hash {
		return 0, false, &billing.ConflictError{Reason: reasonKeyReused}
	}
	return rec.RecordID, true, nil
}

func saveKey(tx *gorm.DB, owner uint, scope, key, hash string, recordID uint) error {
	if key == "" {
		return nil
	}
	return tx.Create(&models.IdempotencyKey{OwnerID: owner, Scope: scope, Key: key, RequestHash: hash, RecordID: recordID}).Error
}

func isKeyReuse(err error) bool {
	var conflict *billing.ConflictError
	return errors.As(err, &conflict) && conflict.Reason == reasonKeyReused
}

func fingerprint(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// saleFingerprint covers everything that changes the committed bill.
// Lines are merged first so a split and a folded line list hash alike.
func saleFingerprint(d billing.SaleDraft) string {
	var customer uint
	if d.CustomerID != nil {
		customer = *d.CustomerID
	}
	return fingerprint(struct {
		Customer uint                `json:"c"`
		Lines    []billing.DraftLine `json:"l"`
		Discount string              `json:"d"`
		Tax      string              `json:"t"`
		Notes    string              `json:"n"`
	}{customer, d.MergedLines(), d.DiscountPercent.String(), d.TaxPercent.String(), strings.TrimSpace(d.Notes)})
}

func paymentFingerprint(d billing.PaymentDraft) string {
	var date string
	if d.PaymentDate != nil {
		date = d.PaymentDate.UTC().Format(time.RFC3339Nano)
	}
	return fingerprint(struct {
		Bill      uint   `json:"b"`
		Amount    string `json:"a"`
		Mode      string `json:"m"`
		Reference string `json:"r"`
		Notes     string `json:"n"`
		Date      string `json:"d"`
	}{d.BillID, d.Amount.String(), d.Mode, strings.TrimSpace(d.ReferenceNumber), strings.TrimSpace(d.Notes), date})
}
