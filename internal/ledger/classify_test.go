package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"cafe-billing/internal/billing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		retryable bool
	}{
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), billing.ErrStoreUnavailable, true},
		{"pg serialization", &pgconn.PgError{Code: "40001"}, billing.ErrConflict, true},
		{"pg deadlock", &pgconn.PgError{Code: "40P01"}, billing.ErrConflict, true},
		{"pg unique", &pgconn.PgError{Code: "23505"}, billing.ErrConflict, false},
		{"pg admin shutdown", &pgconn.PgError{Code: "57P01"}, billing.ErrStoreUnavailable, true},
		{"mysql deadlock", &mysql.MySQLError{Number: 1213}, billing.ErrConflict, true},
		{"mysql lock wait", &mysql.MySQLError{Number: 1205}, billing.ErrConflict, true},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062}, billing.ErrConflict, false},
		{"gorm duplicate", gorm.ErrDuplicatedKey, billing.ErrConflict, false},
		{"sqlite busy", errors.New("database is locked (5) (SQLITE_BUSY)"), billing.ErrConflict, true},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: bills.bill_number (2067)"), billing.ErrConflict, false},
		{"taxonomy passthrough", &billing.NotFoundError{Entity: "bill", ID: 9}, billing.ErrNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify("op", tt.err)
			if !errors.Is(got, tt.target) {
				t.Fatalf("classify(%v) = %v, want %v", tt.err, got, tt.target)
			}
			if billing.IsRetryable(got) != tt.retryable {
				t.Fatalf("IsRetryable(%v) = %v, want %v", got, billing.IsRetryable(got), tt.retryable)
			}
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	cause := errors.New("syntax error")
	got := classify("list bills", cause)
	if !errors.Is(got, cause) || known(got) {
		t.Fatalf("unexpected classification %v", got)
	}
	if got.Error() != "list bills: syntax error" {
		t.Fatalf("message = %q", got.Error())
	}
	if classify("noop", nil) != nil {
		t.Fatal("nil error must stay nil")
	}
}
