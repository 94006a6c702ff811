package ledger

import (
	"context"
	"strings"

	"cafe-billing/internal/billing"
	"cafe-billing/internal/models"

	"gorm.io/gorm"
)

type SupplierInput struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	Address   string `json:"address"`
	GSTNumber string `json:"gst_number"`
}

func (in *SupplierInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Company = strings.TrimSpace(in.Company)
	in.Address = strings.TrimSpace(in.Address)
	in.GSTNumber = strings.ToUpper(strings.TrimSpace(in.GSTNumber))
	if in.Name == "" {
		return billing.Invalid("name", "is required")
	}
	return validEmail(in.Email)
}

func (s *Service) CreateSupplier(ctx context.Context, owner uint, in SupplierInput) (*models.Supplier, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var supplier models.Supplier
	err := s.inTx(ctx, "create supplier", func(tx *gorm.DB) error {
		code, err := s.ids.Next(tx, owner, KindSupplier)
		if err != nil {
			return err
		}
		supplier = models.Supplier{
			OwnerID:      owner,
			SupplierCode: code,
			Name:         in.Name,
			Phone:        in.Phone,
			Email:        in.Email,
			Company:      in.Company,
			Address:      in.Address,
			GSTNumber:    in.GSTNumber,
		}
		return tx.Create(&supplier).Error
	})
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (s *Service) UpdateSupplier(ctx context.Context, owner, id uint, in SupplierInput) (*models.Supplier, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var supplier models.Supplier
	err := s.inTx(ctx, "update supplier", func(tx *gorm.DB) error {
		if err := findOwned(forUpdate(tx), owner, id, "supplier", &supplier); err != nil {
			return err
		}
		supplier.Name, supplier.Phone, supplier.Email = in.Name, in.Phone, in.Email
		supplier.Company, supplier.Address, supplier.GSTNumber = in.Company, in.Address, in.GSTNumber
		return tx.Model(&supplier).
			Select("name", "phone", "email", "company", "address", "gst_number").
			Updates(&supplier).Error
	})
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

// DeleteSupplier removes a supplier and clears it from every product it supplied,
// including soft-deleted ones.
func (s *Service) DeleteSupplier(ctx context.Context, owner, id uint) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.inTx(ctx, "delete supplier", func(tx *gorm.DB) error {
		var supplier models.Supplier
		if err := findOwned(forUpdate(tx), owner, id, "supplier", &supplier); err != nil {
			return err
		}
		if err := tx.Unscoped().Model(&models.Product{}).
			Where("owner_id = ? AND supplier_id = ?", owner, id).
			Update("supplier_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&supplier).Error
	})
}

func (s *Service) GetSupplier(ctx context.Context, owner, id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := s.read(ctx, "get supplier", func(db *gorm.DB) error {
		return findOwned(db, owner, id, "supplier", &supplier)
	}); err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (s *Service) ListSuppliers(ctx context.Context, owner uint, search string) ([]models.Supplier, error) {
	suppliers := []models.Supplier{}
	err := s.read(ctx, "list suppliers", func(db *gorm.DB) error {
		q := owned(db, owner)
		if search = strings.TrimSpace(search); search != "" {
			like := "%" + search + "%"
			q = q.Where("name LIKE ? OR company LIKE ? OR supplier_code LIKE ?", like, like, like)
		}
		return q.Order("created_at desc").Order("id desc").Find(&suppliers).Error
	})
	if err != nil {
		return nil, err
	}
	return suppliers, nil
}
