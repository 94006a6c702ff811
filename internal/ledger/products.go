package ledger

import (
	"context"
	"strings"

	"cafe-billing/internal/billing"
	"cafe-billing/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductInput struct {
	ProductCode  string          `json:"product_code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Stock        *int            `json:"stock"`
	ReorderLevel *int            `json:"reorder_level"`
	Unit         string          `json:"unit"`
	SupplierID   *uint           `json:"supplier_id"`
}

func (in *ProductInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.ProductCode = strings.TrimSpace(in.ProductCode)
	in.Category = strings.TrimSpace(in.Category)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Name == "" {
		return billing.Invalid("name", "is required")
	}
	if in.Price.IsNegative() {
		return billing.Invalid("price", "cannot be negative")
	}
	if in.Stock != nil && *in.Stock < 0 {
		return billing.Invalid("stock", "cannot be negative")
	}
	if in.ReorderLevel != nil && *in.ReorderLevel < 0 {
		return billing.Invalid("reorder_level", "cannot be negative")
	}
	if in.Unit == "" {
		in.Unit = "pcs"
	}
	return nil
}

func (s *Service) checkSupplier(tx *gorm.DB, owner uint, id *uint) error {
	if id == nil {
		return nil
	}
	var supplier models.Supplier
	return findOwned(tx, owner, *id, "supplier", &supplier)
}

func (s *Service) CreateProduct(ctx context.Context, owner uint, in ProductInput) (*models.Product, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var product models.Product
	err := s.inTx(ctx, "create product", func(tx *gorm.DB) error {
		if err := s.checkSupplier(tx, owner, in.SupplierID); err != nil {
			return err
		}
		code, err := s.ids.Next(tx, owner, KindProduct)
		if err != nil {
			return err
		}
		product = models.Product{
			OwnerID:      owner,
			Ref:          code,
			ProductCode:  in.ProductCode,
			Name:         in.Name,
			Category:     in.Category,
			Price:        in.Price.Round(2),
			Stock:        deref(in.Stock, 0),
			ReorderLevel: deref(in.ReorderLevel, s.opts.DefaultReorderLevel),
			Unit:         in.Unit,
			SupplierID:   in.SupplierID,
		}
		return tx.Omit("Supplier").Create(&product).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct edits a product. Price changes do not touch existing bill items.
func (s *Service) UpdateProduct(ctx context.Context, owner, id uint, in ProductInput) (*models.Product, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var product models.Product
	err := s.inTx(ctx, "update product", func(tx *gorm.DB) error {
		if err := findOwned(forUpdate(tx), owner, id, "product", &product); err != nil {
			return err
		}
		if err := s.checkSupplier(tx, owner, in.SupplierID); err != nil {
			return err
		}
		product.ProductCode = in.ProductCode
		product.Name = in.Name
		product.Category = in.Category
		product.Price = in.Price.Round(2)
		product.Unit = in.Unit
		product.SupplierID = in.SupplierID
		product.Stock = deref(in.Stock, product.Stock)
		product.ReorderLevel = deref(in.ReorderLevel, product.ReorderLevel)
		return tx.Model(&product).
			Select("product_code", "name", "category", "price", "unit", "supplier_id", "stock", "reorder_level").
			Updates(&product).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct soft-deletes a product. Bill items keep their name and price snapshot.
func (s *Service) DeleteProduct(ctx context.Context, owner, id uint) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.inTx(ctx, "delete product", func(tx *gorm.DB) error {
		var product models.Product
		if err := findOwned(forUpdate(tx), owner, id, "product", &product); err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
}

func (s *Service) GetProduct(ctx context.Context, owner, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.read(ctx, "get product", func(db *gorm.DB) error {
		return findOwned(db.Preload("Supplier"), owner, id, "product", &product)
	}); err != nil {
		return nil, err
	}
	return &product, nil
}

type ProductFilter struct {
	Search   string
	Category string
}

func (s *Service) ListProducts(ctx context.Context, owner uint, f ProductFilter) ([]models.Product, error) {
	products := []models.Product{}
	err := s.read(ctx, "list products", func(db *gorm.DB) error {
		q := owned(db, owner).Preload("Supplier")
		if search := strings.TrimSpace(f.Search); search != "" {
			like := "%" + search + "%"
			q = q.Where("name LIKE ? OR product_ref LIKE ? OR product_code LIKE ?", like, like, like)
		}
		if f.Category != "" {
			q = q.Where("category = ?", f.Category)
		}
		return q.Order("created_at desc").Order("id desc").Find(&products).Error
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
