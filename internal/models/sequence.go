package models

import "time"

// IDSequence holds the last issued display number per owner and entity kind.
type IDSequence struct {
	OwnerID   uint   `gorm:"primaryKey;autoIncrement:false"`
	Kind      string `gorm:"primaryKey;size:20"`
	LastValue int64  `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// IdempotencyKey maps a client supplied key to the record it produced.
// RequestHash fingerprints the request so a reused key with another body is refused.
type IdempotencyKey struct {
	ID          uint   `gorm:"primaryKey"`
	OwnerID     uint   `gorm:"not null;uniqueIndex:ux_idempotency_owner_scope_key,priority:1"`
	Scope       string `gorm:"size:20;not null;uniqueIndex:ux_idempotency_owner_scope_key,priority:2"`
	Key         string `gorm:"size:64;not null;uniqueIndex:ux_idempotency_owner_scope_key,priority:3"`
	RequestHash string `gorm:"size:64;not null;default:''"`
	RecordID    uint   `gorm:"not null"`
	CreatedAt   time.Time
}
