package ledger

import (
	"context"

	"cafe-billing/internal/billing"
	"cafe-billing/internal/models"

	"gorm.io/gorm"
)

// ListLowStock returns products at or below their reorder level, lowest stock first.
func (s *Service) ListLowStock(ctx context.Context, owner uint) ([]models.Product, error) {
	products := []models.Product{}
	err := s.read(ctx, "list low stock", func(db *gorm.DB) error {
		return owned(db, owner).
			Preload("Supplier").
			Where("stock <= reorder_level").
			Order("stock asc").Order("id asc").
			Find(&products).Error
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Restock adds received units to a product.
func (s *Service) Restock(ctx context.Context, owner, productID uint, quantity int) (*models.Product, error) {
	if quantity <= 0 {
		return nil, billing.Invalid("quantity", "must be positive")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var product models.Product
	err := s.inTx(ctx, "restock product", func(tx *gorm.DB) error {
		if err := findOwned(forUpdate(tx), owner, productID, "product", &product); err != nil {
			return err
		}
		if err := tx.Model(&product).Update("stock", gorm.Expr("stock + ?", quantity)).Error; err != nil {
			return err
		}
		return tx.Take(&product, product.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}
