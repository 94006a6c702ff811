package ledger

import (
	"context"
	"errors"
	"log"
	"strings"

	"cafe-billing/internal/billing"
	"cafe-billing/internal/models"
	"cafe-billing/internal/utils"

	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
)

const minPasswordLength = 6

func checkPassword(password string) error {
	if len(password) < minPasswordLength {
		return billing.Invalid("password", "must be at least %d characters", minPasswordLength)
	}
	return nil
}

// RegisterAdmin creates an admin account. Its id becomes the owner of the records it creates.
func (s *Service) RegisterAdmin(ctx context.Context, email, name, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" {
		return nil, billing.Invalid("email", "is required")
	}
	if err := validEmail(email); err != nil {
		return nil, err
	}
	if err := checkPassword(password); err != nil {
		return nil, err
	}
	if name == "" {
		name = email
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Email: email, Name: name, PasswordHash: hash, Role: models.RoleAdmin, IsActive: true}
	err = s.read(ctx, "register admin", func(db *gorm.DB) error {
		return db.Create(&user).Error
	})
	if isDuplicate(err) {
		return nil, &billing.ConflictError{Reason: "email " + email + " is already registered"}
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AuthenticateAdmin verifies an admin login and records it in the login history.
func (s *Service) AuthenticateAdmin(ctx context.Context, email, password, ip string) (*models.User, error) {
	var user models.User
	err := s.read(ctx, "authenticate admin", func(db *gorm.DB) error {
		return db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).Take(&user).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}
	s.recordLogin(ctx, user.ID, user.Role, ip)
	return &user, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	if err := checkPassword(next); err != nil {
		return err
	}
	return s.read(ctx, "change password", func(db *gorm.DB) error {
		var user models.User
		if err := db.Take(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &billing.NotFoundError{Entity: "user", ID: userID}
			}
			return err
		}
		if !utils.CheckPasswordHash(current, user.PasswordHash) {
			return ErrInvalidCredentials
		}
		hash, err := utils.HashPassword(next)
		if err != nil {
			return err
		}
		return db.Model(&user).Update("password_hash", hash).Error
	})
}

func (s *Service) LoginHistory(ctx context.Context, userID uint, limit int) ([]models.LoginHistory, error) {
	history := []models.LoginHistory{}
	err := s.read(ctx, "login history", func(db *gorm.DB) error {
		return db.Where("user_id = ? AND role = ?", userID, models.RoleAdmin).
			Order("login_time desc").Limit(limit).Find(&history).Error
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (s *Service) recordLogin(ctx context.Context, userID uint, role, ip string) {
	entry := models.LoginHistory{UserID: userID, Role: role, LoginTime: s.opts.Now(), IPAddress: ip}
	if err := s.read(ctx, "record login", func(db *gorm.DB) error {
		return db.Create(&entry).Error
	}); err != nil {
		log.Printf("Failed to record login for %s %d: %v", role, userID, err)
	}
}
