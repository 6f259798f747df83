package accountmock

import (
	"context"
	"errors"

	domain "bankledger/internal/domain/account"

	"github.com/shopspring/decimal"
)

var errUnimplemented = errors.New("accountmock: method not implemented")

// Repo is a function-backed mock satisfying account.Repository. Fill in the
// fields a test needs; unfilled ones fail loudly.
type Repo struct {
	CreateFn      func(ctx context.Context, a *domain.Account) error
	GetByIDFn     func(ctx context.Context, id uint64) (*domain.Account, error)
	GetByNumberFn func(ctx context.Context, number string) (*domain.Account, error)
	ApplyDeltaFn  func(ctx context.Context, id uint64, delta decimal.Decimal, expectedVersion uint64) (*domain.Account, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return errUnimplemented
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Account, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if m.GetByNumberFn != nil {
		return m.GetByNumberFn(ctx, number)
	}
	return nil, errUnimplemented
}

func (m *Repo) ApplyDelta(ctx context.Context, id uint64, delta decimal.Decimal, expectedVersion uint64) (*domain.Account, error) {
	if m.ApplyDeltaFn != nil {
		return m.ApplyDeltaFn(ctx, id, delta, expectedVersion)
	}
	return nil, errUnimplemented
}
