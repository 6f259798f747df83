package mysql

import (
	"context"

	txDomain "bankledger/internal/domain/transaction"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *txDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransactionRepository) Save(ctx context.Context, t *txDomain.Transaction) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TransactionRepository) GetByTxID(ctx context.Context, txID string) (*txDomain.Transaction, error) {
	var out txDomain.Transaction
	res := r.db.WithContext(ctx).Where("tx_id = ?", txID).First(&out)
	return &out, res.Error
}

func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID uint64, rng *txDomain.Range) ([]txDomain.Transaction, error) {
	q := r.db.WithContext(ctx).Where("account_id = ?", accountID)
	if rng != nil {
		q = q.Where("timestamp >= ? AND timestamp <= ?", rng.From, rng.To)
	}
	var out []txDomain.Transaction
	res := q.Order("timestamp ASC, id ASC").Find(&out)
	return out, res.Error
}

func (r *TransactionRepository) ListLoans(ctx context.Context, accountID uint64) ([]txDomain.Transaction, error) {
	var out []txDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("account_id = ? AND transaction_type = ?", accountID, txDomain.TypeLoan).
		Order("timestamp DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *TransactionRepository) CountOutstandingLoans(ctx context.Context, accountID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&txDomain.Transaction{}).
		Where("account_id = ? AND transaction_type = ?", accountID, txDomain.TypeLoan).
		Count(&n)
	return n, res.Error
}

func (r *TransactionRepository) SumAmounts(ctx context.Context, accountID uint64, rng txDomain.Range) (decimal.Decimal, error) {
	row := r.db.WithContext(ctx).Model(&txDomain.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("account_id = ? AND timestamp >= ? AND timestamp <= ?", accountID, rng.From, rng.To).
		Row()
	var sum decimal.Decimal
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}
