package report

import (
	"context"
	"errors"

	"bankledger/internal/domain/account"
	"bankledger/internal/domain/transaction"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Usecase computes read-only views over the ledger. It never mutates.
type Usecase struct {
	accounts account.Repository
	txs      transaction.Repository
}

func NewUsecase(accounts account.Repository, txs transaction.Repository) *Usecase {
	return &Usecase{accounts: accounts, txs: txs}
}

type Report struct {
	AccountID     uint64                    `json:"account_id"`
	AccountNumber string                    `json:"account_number"`
	Transactions  []transaction.Transaction `json:"transactions"`
	Balance       decimal.Decimal           `json:"balance"`
}

// Report returns the account's ledger ordered by timestamp ascending,
// optionally restricted to an inclusive range.
//
// The "balance" of a ranged report is the raw sum of transaction amounts
// over the filtered rows, deposits and withdrawals alike, not the net
// position. That is the aggregate the product has always shown. Without a
// range the balance is the account's live balance.
func (u *Usecase) Report(ctx context.Context, accountID uint64, rng *transaction.Range) (*Report, error) {
	acc, err := u.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, translateAccountErr(err)
	}
	txs, err := u.txs.ListByAccount(ctx, accountID, rng)
	if err != nil {
		return nil, err
	}
	balance := acc.Balance
	if rng != nil {
		balance, err = u.txs.SumAmounts(ctx, accountID, *rng)
		if err != nil {
			return nil, err
		}
	}
	return &Report{
		AccountID:     acc.ID,
		AccountNumber: acc.AccountNumber,
		Transactions:  txs,
		Balance:       balance,
	}, nil
}

// LoanList returns the account's outstanding loan rows, newest first. Pure
// read; callers may re-issue it at any time.
func (u *Usecase) LoanList(ctx context.Context, accountID uint64) ([]transaction.Transaction, error) {
	if _, err := u.accounts.GetByID(ctx, accountID); err != nil {
		return nil, translateAccountErr(err)
	}
	return u.txs.ListLoans(ctx, accountID)
}

func translateAccountErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return account.ErrNotFound
	}
	return err
}
