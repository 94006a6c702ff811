package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OwnerID      uint            `gorm:"not null;uniqueIndex:ux_products_owner_code,priority:1" json:"owner_id"`
	Ref          string          `gorm:"column:product_ref;size:20;not null;uniqueIndex:ux_products_owner_code,priority:2" json:"product_id"`
	ProductCode  string          `gorm:"size:50;index" json:"product_code"`
	Name         string          `gorm:"size:150;not null" json:"name"`
	Category     string          `gorm:"size:100" json:"category"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock        int             `gorm:"not null" json:"stock"`
	ReorderLevel int             `gorm:"not null" json:"reorder_level"`
	Unit         string          `gorm:"size:20;default:'pcs'" json:"unit"`
	SupplierID   *uint           `json:"supplier_id"`
	Supplier     *Supplier       `gorm:"foreignKey:SupplierID;references:ID;constraint:OnDelete:SET NULL" json:"supplier,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// LowStock reports whether the product is at or below its reorder level.
func (p Product) LowStock() bool {
	return p.Stock <= p.ReorderLevel
}

type Supplier struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OwnerID      uint      `gorm:"not null;uniqueIndex:ux_suppliers_owner_code,priority:1" json:"owner_id"`
	SupplierCode string    `gorm:"column:supplier_code;size:20;not null;uniqueIndex:ux_suppliers_owner_code,priority:2" json:"supplier_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Phone        string    `gorm:"size:20" json:"phone"`
	Email        string    `gorm:"size:100" json:"email"`
	Company      string    `gorm:"size:150" json:"company"`
	Address      string    `gorm:"type:text" json:"address"`
	GSTNumber    string    `gorm:"size:20" json:"gst_number"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
