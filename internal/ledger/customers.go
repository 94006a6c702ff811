package ledger

import (
	"context"
	"net/mail"
	"strings"

	"cafe-billing/internal/billing"
	"cafe-billing/internal/models"

	"gorm.io/gorm"
)

type CustomerInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (in *CustomerInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	if in.Name == "" {
		return billing.Invalid("name", "is required")
	}
	return validEmail(in.Email)
}

func validEmail(email string) error {
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return billing.Invalid("email", "is not a valid address")
	}
	return nil
}

func (s *Service) CreateCustomer(ctx context.Context, owner uint, in CustomerInput) (*models.Customer, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var customer models.Customer
	err := s.inTx(ctx, "create customer", func(tx *gorm.DB) error {
		code, err := s.ids.Next(tx, owner, KindCustomer)
		if err != nil {
			return err
		}
		customer = models.Customer{
			OwnerID:      owner,
			CustomerCode: code,
			Name:         in.Name,
			Phone:        in.Phone,
			Email:        in.Email,
			Address:      in.Address,
		}
		return tx.Create(&customer).Error
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateCustomer edits contact details. The due balance only moves through sales and payments.
func (s *Service) UpdateCustomer(ctx context.Context, owner, id uint, in CustomerInput) (*models.Customer, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var customer models.Customer
	err := s.inTx(ctx, "update customer", func(tx *gorm.DB) error {
		if err := findOwned(forUpdate(tx), owner, id, "customer", &customer); err != nil {
			return err
		}
		customer.Name, customer.Phone, customer.Email, customer.Address = in.Name, in.Phone, in.Email, in.Address
		return tx.Model(&customer).Select("name", "phone", "email", "address").Updates(&customer).Error
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// DeleteCustomer removes a customer without billing history. Customers with
// bills cannot be deleted.
func (s *Service) DeleteCustomer(ctx context.Context, owner, id uint) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.inTx(ctx, "delete customer", func(tx *gorm.DB) error {
		var customer models.Customer
		if err := findOwned(forUpdate(tx), owner, id, "customer", &customer); err != nil {
			return err
		}
		var bills int64
		if err := tx.Model(&models.Bill{}).Where("customer_id = ?", id).Count(&bills).Error; err != nil {
			return err
		}
		if bills > 0 {
			return &billing.ConflictError{Reason: "customer " + customer.CustomerCode + " has bills and cannot be deleted"}
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.CustomerCredential{}).Error; err != nil {
			return err
		}
		return tx.Delete(&customer).Error
	})
}

func (s *Service) GetCustomer(ctx context.Context, owner, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.read(ctx, "get customer", func(db *gorm.DB) error {
		return findOwned(db, owner, id, "customer", &customer)
	}); err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListCustomers returns customers newest first, optionally filtered by name, phone or code.
func (s *Service) ListCustomers(ctx context.Context, owner uint, search string) ([]models.Customer, error) {
	customers := []models.Customer{}
	err := s.read(ctx, "list customers", func(db *gorm.DB) error {
		q := owned(db, owner)
		if search = strings.TrimSpace(search); search != "" {
			like := "%" + search + "%"
			q = q.Where("name LIKE ? OR phone LIKE ? OR customer_code LIKE ?", like, like, like)
		}
		return q.Order("created_at desc").Order("id desc").Find(&customers).Error
	})
	if err != nil {
		return nil, err
	}
	return customers, nil
}
