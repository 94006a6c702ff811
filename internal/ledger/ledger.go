// Package ledger is the transactional store behind the billing API. Every
// operation is scoped to an owner and runs under a per-call timeout.
package ledger

import (
	"context"
	"errors"
	"time"

	"cafe-billing/config"
	"cafe-billing/internal/billing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const retryBackoff = 50 * time.Millisecond

type Options struct {
	Prefixes            map[Kind]string
	CodeWidth           int
	StoreTimeout        time.Duration
	MaxTxRetries        int
	RejectOverpayment   bool
	DefaultReorderLevel int
	Now                 func() time.Time
}

func OptionsFromConfig(c config.LedgerConfig) Options {
	return Options{
		Prefixes: map[Kind]string{
			KindCustomer: c.CustomerPrefix,
			KindProduct:  c.ProductPrefix,
			KindSupplier: c.SupplierPrefix,
			KindBill:     c.BillPrefix,
		},
		CodeWidth:           c.CodeWidth,
		StoreTimeout:        c.StoreTimeout(),
		MaxTxRetries:        c.MaxTxRetries,
		RejectOverpayment:   c.RejectOverpayment,
		DefaultReorderLevel: c.DefaultReorderLevel,
	}
}

type Service struct {
	db   *gorm.DB
	ids  *IDGenerator
	opts Options
}

func New(db *gorm.DB, opts Options) *Service {
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = 5 * time.Second
	}
	if opts.MaxTxRetries < 0 {
		opts.MaxTxRetries = 0
	}
	if opts.DefaultReorderLevel <= 0 {
		opts.DefaultReorderLevel = 10
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		db:   db,
		ids:  NewIDGenerator(opts.Prefixes, opts.CodeWidth),
		opts: opts,
	}
}

// IDs exposes the display id generator.
func (s *Service) IDs() *IDGenerator { return s.ids }

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opts.StoreTimeout)
}

// inTx runs fn in one database transaction, retrying the whole unit when the
// store reports a serialization failure or deadlock.
func (s *Service) inTx(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt <= s.opts.MaxTxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return classify(op, ctx.Err())
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}
		err = classify(op, s.db.WithContext(ctx).Transaction(fn))
		var conflict *billing.ConflictError
		if !errors.As(err, &conflict) || !conflict.Retryable {
			return err
		}
	}
	return err
}

// read runs a query outside any transaction.
func (s *Service) read(ctx context.Context, op string, fn func(db *gorm.DB) error) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return classify(op, fn(s.db.WithContext(ctx)))
}

func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func owned(db *gorm.DB, owner uint) *gorm.DB {
	return db.Where("owner_id = ?", owner)
}

// findOwned loads one row by primary key, mapping a miss to NotFoundError.
func findOwned[T any](db *gorm.DB, owner, id uint, entity string, dest *T) error {
	err := owned(db, owner).Where("id = ?", id).Take(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &billing.NotFoundError{Entity: entity, ID: id}
	}
	return err
}
