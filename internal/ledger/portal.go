package ledger

import (
	"context"
	"errors"
	"strings"

	"cafe-billing/internal/billing"
	"cafe-billing/internal/models"
	"cafe-billing/internal/utils"

	"gorm.io/gorm"
)

// SetCustomerCredentials creates or replaces the portal login of a customer.
func (s *Service) SetCustomerCredentials(ctx context.Context, owner, customerID uint, username, password string) (*models.CustomerCredential, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, billing.Invalid("username", "is required")
	}
	if err := checkPassword(password); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var cred models.CustomerCredential
	err = s.inTx(ctx, "set customer credentials", func(tx *gorm.DB) error {
		var customer models.Customer
		if err := findOwned(tx, owner, customerID, "customer", &customer); err != nil {
			return err
		}
		err := tx.Where("customer_id = ?", customerID).Take(&cred).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			cred = models.CustomerCredential{
				OwnerID:      owner,
				CustomerID:   customerID,
				Username:     username,
				PasswordHash: hash,
				IsActive:     true,
			}
			return tx.Omit("Customer").Create(&cred).Error
		case err != nil:
			return err
		}
		cred.Username, cred.PasswordHash, cred.IsActive = username, hash, true
		return tx.Model(&cred).Select("username", "password_hash", "is_active").Updates(&cred).Error
	})
	if isDuplicate(err) {
		return nil, &billing.ConflictError{Reason: "username " + username + " is taken"}
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// AuthenticateCustomer verifies a portal login and stamps last_login.
func (s *Service) AuthenticateCustomer(ctx context.Context, username, password, ip string) (*models.CustomerCredential, error) {
	var cred models.CustomerCredential
	err := s.read(ctx, "authenticate customer", func(db *gorm.DB) error {
		return db.Preload("Customer").
			Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
			Take(&cred).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, cred.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !cred.IsActive {
		return nil, ErrAccountInactive
	}

	now := s.opts.Now()
	if err := s.read(ctx, "stamp last login", func(db *gorm.DB) error {
		return db.Model(&cred).UpdateColumn("last_login", now).Error
	}); err != nil {
		return nil, err
	}
	cred.LastLogin = &now
	s.recordLogin(ctx, cred.CustomerID, models.RoleCustomer, ip)
	return &cred, nil
}

// CustomerBills lists the bills of one customer with items and payments.
func (s *Service) CustomerBills(ctx context.Context, owner, customerID uint) ([]BillSummary, error) {
	bills, _, err := s.ListBills(ctx, owner, BillFilter{CustomerID: &customerID, WithItems: true})
	return bills, err
}

func (s *Service) CustomerPayments(ctx context.Context, owner, customerID uint) ([]models.Payment, error) {
	payments := []models.Payment{}
	err := s.read(ctx, "list customer payments", func(db *gorm.DB) error {
		return owned(db, owner).
			Preload("Bill").
			Where("bill_id IN (?)", db.Model(&models.Bill{}).Select("id").Where("owner_id = ? AND customer_id = ?", owner, customerID)).
			Order("payment_date desc").Order("id desc").
			Find(&payments).Error
	})
	if err != nil {
		return nil, err
	}
	return payments, nil
}
