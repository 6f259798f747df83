package mysql

import (
	"context"

	accountDomain "bankledger/internal/domain/account"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) Create(ctx context.Context, a *accountDomain.Account) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AccountRepository) GetByID(ctx context.Context, id uint64) (*accountDomain.Account, error) {
	var out accountDomain.Account
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*accountDomain.Account, error) {
	var out accountDomain.Account
	res := r.db.WithContext(ctx).Where("account_number = ?", number).First(&out)
	return &out, res.Error
}

// ApplyDelta is the single balance mutation entry point: a compare-and-set
// against the version column, replacing the read-modify-write the schema
// grew up with. Zero rows affected means a concurrent writer committed
// since the caller's read.
func (r *AccountRepository) ApplyDelta(ctx context.Context, id uint64, delta decimal.Decimal, expectedVersion uint64) (*accountDomain.Account, error) {
	res := r.db.WithContext(ctx).Model(&accountDomain.Account{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{
			"balance": gorm.Expr("balance + ?", delta),
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, accountDomain.ErrVersionConflict
	}
	return r.GetByID(ctx, id)
}
