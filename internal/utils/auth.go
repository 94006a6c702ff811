package utils

import (
	"errors"
	"strconv"
	"time"

	"cafe-billing/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "cafe-billing"

// Claims identify the caller. OwnerID scopes every ledger query; for admins it
// equals UserID, for portal customers it is the admin that owns the customer.
type Claims struct {
	UserID     uint   `json:"user_id"`
	Role       string `json:"role"`
	OwnerID    uint   `json:"owner_id"`
	CustomerID uint   `json:"customer_id,omitempty"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func GenerateToken(userID uint, role string, ownerID, customerID uint) (string, error) {
	secret, ttl, err := jwtSettings()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := Claims{
		UserID:     userID,
		Role:       role,
		OwnerID:    ownerID,
		CustomerID: customerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func ValidateToken(tokenString string) (*Claims, error) {
	secret, _, err := jwtSettings()
	if err != nil {
		return nil, err
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func jwtSettings() ([]byte, time.Duration, error) {
	if config.AppConfig == nil || config.AppConfig.Server.JWTSecret == "" {
		return nil, 0, errors.New("jwt secret not configured")
	}
	hours := config.AppConfig.Server.JWTExpirationHours
	if hours <= 0 {
		hours = 24
	}
	return []byte(config.AppConfig.Server.JWTSecret), time.Duration(hours) * time.Hour, nil
}
