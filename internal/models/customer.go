package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OwnerID      uint            `gorm:"not null;uniqueIndex:ux_customers_owner_code,priority:1" json:"owner_id"`
	CustomerCode string          `gorm:"column:customer_code;size:20;not null;uniqueIndex:ux_customers_owner_code,priority:2" json:"customer_id"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	Phone        string          `gorm:"size:20" json:"phone"`
	Email        string          `gorm:"size:100" json:"email"`
	Address      string          `gorm:"type:text" json:"address"`
	TotalDue     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_due"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CustomerCredential is the portal login of a customer. One per customer.
type CustomerCredential struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	OwnerID      uint       `gorm:"not null;index" json:"owner_id"`
	CustomerID   uint       `gorm:"not null;uniqueIndex" json:"customer_id"`
	Customer     Customer   `gorm:"foreignKey:CustomerID;references:ID" json:"-"`
	Username     string     `gorm:"size:50;not null;uniqueIndex" json:"username"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
