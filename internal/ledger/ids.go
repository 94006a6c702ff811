package ledger

import (
	"context"
	"errors"
	"fmt"

	"cafe-billing/internal/billing"
	"cafe-billing/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Kind string

const (
	KindCustomer Kind = "customer"
	KindProduct  Kind = "product"
	KindSupplier Kind = "supplier"
	KindBill     Kind = "bill"
)

var defaultPrefixes = map[Kind]string{
	KindCustomer: "CUST",
	KindProduct:  "PROD",
	KindSupplier: "SUP",
	KindBill:     "BILL",
}

// IDGenerator hands out sequential display ids such as CUST0007, one counter
// per owner and kind. Allocation joins the caller's transaction, so a rolled
// back caller gives its number back.
type IDGenerator struct {
	prefixes map[Kind]string
	width    int
}

func NewIDGenerator(prefixes map[Kind]string, width int) *IDGenerator {
	merged := make(map[Kind]string, len(defaultPrefixes))
	for k, v := range defaultPrefixes {
		merged[k] = v
	}
	for k, v := range prefixes {
		if v != "" {
			merged[k] = v
		}
	}
	if width <= 0 {
		width = 4
	}
	return &IDGenerator{prefixes: merged, width: width}
}

// Next allocates the next id for kind inside tx.
func (g *IDGenerator) Next(tx *gorm.DB, owner uint, kind Kind) (string, error) {
	prefix, ok := g.prefixes[kind]
	if !ok {
		return "", &billing.GenerationError{Kind: string(kind), Err: errors.New("unknown entity kind")}
	}

	seq := models.IDSequence{OwnerID: owner, Kind: string(kind)}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
		return "", g.fail(kind, err)
	}
	// the increment takes the row lock; concurrent allocators queue here
	if err := tx.Model(&models.IDSequence{}).
		Where("owner_id = ? AND kind = ?", owner, string(kind)).
		UpdateColumn("last_value", gorm.Expr("last_value + ?", 1)).Error; err != nil {
		return "", g.fail(kind, err)
	}
	if err := tx.Where("owner_id = ? AND kind = ?", owner, string(kind)).Take(&seq).Error; err != nil {
		return "", g.fail(kind, err)
	}
	return g.format(prefix, seq.LastValue), nil
}

// Peek returns the id the next allocation would produce without consuming it.
func (g *IDGenerator) Peek(ctx context.Context, db *gorm.DB, owner uint, kind Kind) (string, error) {
	prefix, ok := g.prefixes[kind]
	if !ok {
		return "", &billing.GenerationError{Kind: string(kind), Err: errors.New("unknown entity kind")}
	}
	var seq models.IDSequence
	err := db.WithContext(ctx).Where("owner_id = ? AND kind = ?", owner, string(kind)).Take(&seq).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", g.fail(kind, err)
	}
	return g.format(prefix, seq.LastValue+1), nil
}

func (g *IDGenerator) format(prefix string, n int64) string {
	return fmt.Sprintf("%s%0*d", prefix, g.width, n)
}

func (g *IDGenerator) fail(kind Kind, err error) error {
	classified := classify("allocate "+string(kind)+" id", err)
	var conflict *billing.ConflictError
	if errors.As(classified, &conflict) && conflict.Retryable {
		// let the transaction retry loop see the conflict
		return classified
	}
	return &billing.GenerationError{Kind: string(kind), Err: err}
}

// NextID allocates an id in its own transaction.
func (s *Service) NextID(ctx context.Context, owner uint, kind Kind) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	var id string
	err := s.inTx(ctx, "next id", func(tx *gorm.DB) error {
		var err error
		id, err = s.ids.Next(tx, owner, kind)
		return err
	})
	return id, err
}

func (s *Service) PeekID(ctx context.Context, owner uint, kind Kind) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.ids.Peek(ctx, s.db, owner, kind)
}
