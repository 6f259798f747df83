package transaction

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Range bounds a report query. Both ends are inclusive.
type Range struct {
	From time.Time
	To   time.Time
}

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	Save(ctx context.Context, t *Transaction) error
	GetByTxID(ctx context.Context, txID string) (*Transaction, error)
	// ListByAccount returns the account's ledger ordered by timestamp
	// ascending, optionally restricted to a range.
	ListByAccount(ctx context.Context, accountID uint64, r *Range) ([]Transaction, error)
	// ListLoans returns the account's outstanding loan rows, newest first.
	ListLoans(ctx context.Context, accountID uint64) ([]Transaction, error)
	CountOutstandingLoans(ctx context.Context, accountID uint64) (int64, error)
	// SumAmounts adds up raw amounts over the range, undifferentiated by
	// operation type. See report.Usecase.Report for why.
	SumAmounts(ctx context.Context, accountID uint64, r Range) (decimal.Decimal, error)
}
