package database

import (
	"cafe-billing/internal/models"

	"gorm.io/gorm"
)

// Models lists every table in migration order.
var Models = []any{
	&models.User{},
	&models.LoginHistory{},
	&models.Supplier{},
	&models.Product{},
	&models.Customer{},
	&models.CustomerCredential{},
	&models.Bill{},
	&models.BillItem{},
	&models.Payment{},
	&models.IDSequence{},
	&models.IdempotencyKey{},
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}
