package account

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, id uint64) (*Account, error)
	// GetByNumber resolves the external account number used for transfers.
	GetByNumber(ctx context.Context, number string) (*Account, error)
	// ApplyDelta adds delta to the balance only if the row still carries
	// expectedVersion, bumping the version in the same statement. Returns
	// ErrVersionConflict when a concurrent writer won the race; callers
	// re-read and retry.
	ApplyDelta(ctx context.Context, id uint64, delta decimal.Decimal, expectedVersion uint64) (*Account, error)
}
