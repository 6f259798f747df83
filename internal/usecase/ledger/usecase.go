// Package ledger is the transaction engine: it validates and applies every
// balance mutation as one atomic unit, pairing the mutation with exactly one
// appended ledger row.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bankledger/internal/domain/account"
	"bankledger/internal/domain/siteconfig"
	"bankledger/internal/domain/transaction"
	"bankledger/internal/domain/uow"
	"bankledger/internal/notification"
	"bankledger/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	defaultMaxRetries = 3
	// An account may hold at most this many outstanding loans.
	maxOutstandingLoans = 3

	notifyTimeout = 5 * time.Second
)

type Usecase struct {
	uow        uow.UnitOfWork
	accounts   account.Repository
	gate       siteconfig.Reader
	notifier   notification.Notifier
	log        *slog.Logger
	maxRetries int
}

func NewUsecase(u uow.UnitOfWork, accounts account.Repository, gate siteconfig.Reader, n notification.Notifier, log *slog.Logger, maxRetries int) *Usecase {
	if log == nil {
		log = slog.Default()
	}
	if n == nil {
		n = notification.NewLogNotifier(log)
	}
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &Usecase{
		uow:        u,
		accounts:   accounts,
		gate:       gate,
		notifier:   n,
		log:        log.With("component", "ledger"),
		maxRetries: maxRetries,
	}
}

// OpenAccount creates an account with a zero balance. An empty account
// number gets a generated one.
func (u *Usecase) OpenAccount(ctx context.Context, in OpenAccountInput) (*account.Account, error) {
	number := in.AccountNumber
	if number == "" {
		number = id.NewAccountNumber()
	}
	acc := &account.Account{
		AccountNumber: number,
		OwnerName:     in.OwnerName,
		OwnerEmail:    in.OwnerEmail,
		Balance:       decimal.Zero,
	}
	if err := u.accounts.Create(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (u *Usecase) GetAccount(ctx context.Context, accountID uint64) (*account.Account, error) {
	acc, err := u.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, translateAccountErr(err)
	}
	return acc, nil
}

// Deposit credits the account. Never gated by bankruptcy.
func (u *Usecase) Deposit(ctx context.Context, accountID uint64, amount decimal.Decimal) (*Receipt, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	var (
		receipt *Receipt
		acc     *account.Account
	)
	err := u.withRetry(ctx, func() error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			cur, err := r.Accounts.GetByID(ctx, accountID)
			if err != nil {
				return translateAccountErr(err)
			}
			updated, err := r.Accounts.ApplyDelta(ctx, cur.ID, amount, cur.Version)
			if err != nil {
				return err
			}
			entry := newEntry(updated, amount, transaction.TypeDeposit)
			if err := r.Transactions.Create(ctx, entry); err != nil {
				return err
			}
			acc = updated
			receipt = receiptFor(entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.dispatch(acc, amount, notification.KindDeposit)
	return receipt, nil
}

// Withdraw debits the account. Fails closed while the bankrupt gate is set
// and never lets the balance go negative.
func (u *Usecase) Withdraw(ctx context.Context, accountID uint64, amount decimal.Decimal) (*Receipt, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	bankrupt, err := u.gate.IsBankrupt(ctx)
	if err != nil {
		return nil, err
	}
	if bankrupt {
		return nil, ErrBankSuspended
	}
	var (
		receipt *Receipt
		acc     *account.Account
	)
	err = u.withRetry(ctx, func() error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			cur, err := r.Accounts.GetByID(ctx, accountID)
			if err != nil {
				return translateAccountErr(err)
			}
			if amount.GreaterThan(cur.Balance) {
				return ErrInsufficientFunds
			}
			updated, err := r.Accounts.ApplyDelta(ctx, cur.ID, amount.Neg(), cur.Version)
			if err != nil {
				return err
			}
			entry := newEntry(updated, amount, transaction.TypeWithdraw)
			if err := r.Transactions.Create(ctx, entry); err != nil {
				return err
			}
			acc = updated
			receipt = receiptFor(entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.dispatch(acc, amount, notification.KindWithdraw)
	return receipt, nil
}

// Transfer moves amount from the sender to the account resolved by number.
// Both balance mutations and both ledger rows commit together; the deltas
// are applied in ascending account-id order so row-locking storage engines
// cannot deadlock on crossing transfers.
func (u *Usecase) Transfer(ctx context.Context, senderID uint64, receiverNumber string, amount decimal.Decimal) (*TransferReceipt, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	var (
		receipt          *TransferReceipt
		sender, receiver *account.Account
	)
	err := u.withRetry(ctx, func() error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			snd, err := r.Accounts.GetByID(ctx, senderID)
			if err != nil {
				return translateAccountErr(err)
			}
			rcv, err := r.Accounts.GetByNumber(ctx, receiverNumber)
			if err != nil {
				return translateAccountErr(err)
			}
			if rcv.ID == snd.ID {
				return ErrInvalidAmount
			}
			if amount.GreaterThan(snd.Balance) {
				return ErrInsufficientFunds
			}

			first, second := snd, rcv
			firstDelta, secondDelta := amount.Neg(), amount
			if rcv.ID < snd.ID {
				first, second = rcv, snd
				firstDelta, secondDelta = amount, amount.Neg()
			}
			updatedFirst, err := r.Accounts.ApplyDelta(ctx, first.ID, firstDelta, first.Version)
			if err != nil {
				return err
			}
			updatedSecond, err := r.Accounts.ApplyDelta(ctx, second.ID, secondDelta, second.Version)
			if err != nil {
				return err
			}
			if updatedFirst.ID == snd.ID {
				sender, receiver = updatedFirst, updatedSecond
			} else {
				sender, receiver = updatedSecond, updatedFirst
			}

			out := newEntry(sender, amount, transaction.TypeTransfer)
			in := newEntry(receiver, amount, transaction.TypeTransfer)
			in.Timestamp = out.Timestamp
			if err := r.Transactions.Create(ctx, out); err != nil {
				return err
			}
			if err := r.Transactions.Create(ctx, in); err != nil {
				return err
			}
			receipt = &TransferReceipt{
				SenderTxID:    out.TxID,
				ReceiverTxID:  in.TxID,
				Amount:        amount,
				SenderBalance: sender.Balance,
				Timestamp:     out.Timestamp,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.dispatch(sender, amount, notification.KindTransferOut)
	u.dispatch(receiver, amount, notification.KindTransferIn)
	return receipt, nil
}

// RequestLoan records a loan request. The balance is untouched: a request
// is not a disbursement. At most maxOutstandingLoans loan rows may be open
// per account. The count is anchored to the account's version token: a
// zero-delta compare-and-set between the count and the insert makes two
// concurrent requests collide, and the loser re-counts against the
// committed row.
func (u *Usecase) RequestLoan(ctx context.Context, accountID uint64, amount decimal.Decimal) (*Receipt, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	var (
		receipt *Receipt
		acc     *account.Account
	)
	err := u.withRetry(ctx, func() error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			cur, err := r.Accounts.GetByID(ctx, accountID)
			if err != nil {
				return translateAccountErr(err)
			}
			n, err := r.Transactions.CountOutstandingLoans(ctx, cur.ID)
			if err != nil {
				return err
			}
			if n >= maxOutstandingLoans {
				return ErrLoanLimitExceeded
			}
			updated, err := r.Accounts.ApplyDelta(ctx, cur.ID, decimal.Zero, cur.Version)
			if err != nil {
				return err
			}
			entry := newEntry(updated, amount, transaction.TypeLoan)
			if err := r.Transactions.Create(ctx, entry); err != nil {
				return err
			}
			acc = updated
			receipt = receiptFor(entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.dispatch(acc, amount, notification.KindLoanRequest)
	return receipt, nil
}

// RepayLoan settles the loan row identified by its public tx id: debits the
// account by the loan amount and flips the row to loan_paid in the same
// transaction. Settling is idempotent-guarded; a second call fails with
// transaction.ErrAlreadySettled instead of double-debiting.
func (u *Usecase) RepayLoan(ctx context.Context, txID string) (*Receipt, error) {
	var (
		receipt *Receipt
		acc     *account.Account
	)
	err := u.withRetry(ctx, func() error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			loan, err := r.Transactions.GetByTxID(ctx, txID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return transaction.ErrNotFound
				}
				return err
			}
			if loan.Type != transaction.TypeLoan && loan.Type != transaction.TypeLoanPaid {
				return transaction.ErrNotFound
			}
			if loan.Settled() {
				return transaction.ErrAlreadySettled
			}
			cur, err := r.Accounts.GetByID(ctx, loan.AccountID)
			if err != nil {
				return translateAccountErr(err)
			}
			// Strict comparison: repaying the entire balance is refused.
			if loan.Amount.GreaterThanOrEqual(cur.Balance) {
				return ErrInsufficientFunds
			}
			updated, err := r.Accounts.ApplyDelta(ctx, cur.ID, loan.Amount.Neg(), cur.Version)
			if err != nil {
				return err
			}
			loan.LoanApproved = true
			loan.Type = transaction.TypeLoanPaid
			loan.BalanceAfter = updated.Balance
			if err := r.Transactions.Save(ctx, loan); err != nil {
				return err
			}
			acc = updated
			receipt = receiptFor(loan)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.dispatch(acc, receipt.Amount, notification.KindLoanRepaid)
	return receipt, nil
}

// withRetry re-runs op while it loses the optimistic-concurrency race. The
// whole unit is retried from its own re-read, never a partial step.
func (u *Usecase) withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; attempt <= u.maxRetries; attempt++ {
		err = op()
		if !errors.Is(err, account.ErrVersionConflict) {
			return err
		}
		u.log.DebugContext(ctx, "version conflict, retrying", "attempt", attempt)
	}
	return ErrContention
}

func (u *Usecase) dispatch(acc *account.Account, amount decimal.Decimal, kind notification.Kind) {
	ev := notification.NewEvent(acc, amount, kind)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := u.notifier.Notify(ctx, ev); err != nil {
			u.log.Warn("notification delivery failed",
				"event_id", ev.ID, "kind", string(ev.Kind), "err", err)
		}
	}()
}

func translateAccountErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return account.ErrNotFound
	}
	return err
}

func newEntry(acc *account.Account, amount decimal.Decimal, typ transaction.Type) *transaction.Transaction {
	return &transaction.Transaction{
		TxID:         id.NewID32(),
		AccountID:    acc.ID,
		Amount:       amount,
		Type:         typ,
		Timestamp:    time.Now().UTC(),
		BalanceAfter: acc.Balance,
	}
}

func receiptFor(t *transaction.Transaction) *Receipt {
	return &Receipt{
		TxID:      t.TxID,
		AccountID: t.AccountID,
		Type:      string(t.Type),
		Amount:    t.Amount,
		Balance:   t.BalanceAfter,
		Timestamp: t.Timestamp,
	}
}
