package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	BillStatusUnpaid  = "unpaid"
	BillStatusPartial = "partial"
	BillStatusPaid    = "paid"
)

const (
	PaymentModeCash         = "cash"
	PaymentModeCard         = "card"
	PaymentModeUPI          = "upi"
	PaymentModeBankTransfer = "bank_transfer"
	PaymentModeCheque       = "cheque"
)

var PaymentModes = []string{
	PaymentModeCash,
	PaymentModeCard,
	PaymentModeUPI,
	PaymentModeBankTransfer,
	PaymentModeCheque,
}

type Bill struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OwnerID         uint            `gorm:"not null;uniqueIndex:ux_bills_owner_number,priority:1" json:"owner_id"`
	BillNumber      string          `gorm:"size:30;not null;uniqueIndex:ux_bills_owner_number,priority:2" json:"bill_number"`
	CustomerID      *uint           `gorm:"index" json:"customer_id"` // nil for walk-in sales
	Customer        *Customer       `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percent"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount_amount"`
	TaxPercent      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"tax_percent"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"tax_amount"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Status          string          `gorm:"size:10;not null;default:'unpaid';index" json:"status"`
	BillDate        time.Time       `gorm:"not null;index" json:"bill_date"`
	Notes           string          `gorm:"type:text" json:"notes"`
	Items           []BillItem      `gorm:"foreignKey:BillID" json:"items,omitempty"`
	Payments        []Payment       `gorm:"foreignKey:BillID" json:"payments,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BillItem snapshots the product name and price at sale time. Rows are never updated.
type BillItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	BillID      uint            `gorm:"not null;index" json:"bill_id"`
	ProductID   *uint           `json:"product_id"`
	ProductName string          `gorm:"size:150;not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Payment struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OwnerID         uint            `gorm:"not null;index" json:"owner_id"`
	BillID          uint            `gorm:"not null;index" json:"bill_id"`
	Bill            *Bill           `gorm:"foreignKey:BillID;references:ID" json:"bill,omitempty"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentMode     string          `gorm:"size:20;not null;default:'cash'" json:"payment_mode"`
	ReferenceNumber string          `gorm:"size:100" json:"reference_number"`
	Notes           string          `gorm:"type:text" json:"notes"`
	PaymentDate     time.Time       `gorm:"not null;index" json:"payment_date"`
	CreatedAt       time.Time       `json:"created_at"`
}
