package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"cafe-billing/internal/billing"
	"cafe-billing/internal/ledger"
	"cafe-billing/internal/middleware"

	"github.com/gin-gonic/gin"
)

// statusFor maps the billing error taxonomy onto HTTP.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, billing.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, billing.ErrInsufficientStock):
		return http.StatusConflict, "insufficient_stock"
	case errors.Is(err, billing.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, billing.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, billing.ErrGeneration):
		return http.StatusServiceUnavailable, "generation"
	case errors.Is(err, billing.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "store_unavailable"
	case errors.Is(err, ledger.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, ledger.ErrAccountInactive):
		return http.StatusForbidden, "inactive"
	}
	return http.StatusInternalServerError, "internal"
}

// respondError writes err as {"error", "code"}. Server side failures are logged
// under where and never echoed to the client.
func respondError(c *gin.Context, errorLog *log.Logger, where string, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		errorLog.Printf("ERROR_%s: %v", where, err)
		if status == http.StatusInternalServerError {
			msg = "Internal server error"
		}
	}
	body := gin.H{"error": msg, "code": code}
	if billing.IsRetryable(err) {
		body["retryable"] = true
	}
	var stock *billing.InsufficientStockError
	if errors.As(err, &stock) {
		body["product_id"] = stock.ProductID
		body["available"] = stock.Available
		body["requested"] = stock.Requested
	}
	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "validation"})
}

func ownerID(c *gin.Context) uint {
	return c.GetUint(middleware.KeyOwnerID)
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name, "code": "validation"})
		return 0, false
	}
	return uint(id), true
}

// pagination reads page and limit, defaulting to page 1 of 20.
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func optionalUint(c *gin.Context, key string) (*uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid " + key, "code": "validation"})
		return nil, false
	}
	id := uint(v)
	return &id, true
}
