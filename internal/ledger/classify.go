package ledger

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"cafe-billing/internal/billing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// classify maps driver and context failures onto the billing error taxonomy.
// Errors that already belong to the taxonomy pass through untouched.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if known(err) {
		return err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &billing.StoreUnavailableError{Op: op, Err: err}
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone),
		errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, mysql.ErrInvalidConn):
		return &billing.StoreUnavailableError{Op: op, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &billing.StoreUnavailableError{Op: op, Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return &billing.ConflictError{Reason: "concurrent update", Err: err, Retryable: true}
		case "23505":
			return &billing.ConflictError{Reason: "duplicate key", Err: err}
		case "57P01", "08000", "08003", "08006":
			return &billing.StoreUnavailableError{Op: op, Err: err}
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1213, 1205:
			return &billing.ConflictError{Reason: "concurrent update", Err: err, Retryable: true}
		case 1062:
			return &billing.ConflictError{Reason: "duplicate key", Err: err}
		}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &billing.ConflictError{Reason: "duplicate key", Err: err}
	}

	// sqlite reports lock contention only through the message text
	msg := err.Error()
	if strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY") {
		return &billing.ConflictError{Reason: "concurrent update", Err: err, Retryable: true}
	}
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return &billing.ConflictError{Reason: "duplicate key", Err: err}
	}

	return fmt.Errorf("%s: %w", op, err)
}

func known(err error) bool {
	for _, target := range []error{
		billing.ErrValidation,
		billing.ErrInsufficientStock,
		billing.ErrNotFound,
		billing.ErrGeneration,
		billing.ErrConflict,
		billing.ErrStoreUnavailable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isDuplicate(err error) bool {
	var conflict *billing.ConflictError
	return errors.As(classify("", err), &conflict) && conflict.Reason == "duplicate key"
}
