// Package memstore is an in-memory implementation of the storage contracts
// for engine tests. ApplyDelta does a real compare-and-set under a mutex, so
// contention behaves like the SQL adapter; reads hand out copies the way a
// row scan would.
//
// The unit of work here has no rollback: the engine validates before it
// mutates, so usecase tests never rely on one. Rollback atomicity is covered
// against real transactions in the mysql adapter tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"bankledger/internal/domain/account"
	"bankledger/internal/domain/siteconfig"
	"bankledger/internal/domain/transaction"
	"bankledger/internal/domain/uow"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Store struct {
	mu            sync.Mutex
	accounts      map[uint64]*account.Account
	txs           []*transaction.Transaction
	site          siteconfig.SiteConfig
	nextAccountID uint64
	nextTxRowID   uint64
}

func New() *Store {
	return &Store{
		accounts: make(map[uint64]*account.Account),
		site:     siteconfig.SiteConfig{ID: 1, StatusMessage: "bank is operational"},
	}
}

func (s *Store) Accounts() account.Repository         { return &accountRepo{s} }
func (s *Store) Transactions() transaction.Repository { return &txRepo{s} }
func (s *Store) Site() siteconfig.Repository          { return &siteRepo{s} }
func (s *Store) UoW() uow.UnitOfWork                  { return &unit{s} }

// AddAccount seeds an account and returns a copy of the stored row.
func (s *Store) AddAccount(number, balance string) *account.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextAccountID++
	acc := &account.Account{
		ID:            s.nextAccountID,
		AccountNumber: number,
		OwnerName:     "Holder " + number,
		OwnerEmail:    number + "@example.test",
		Balance:       decimal.RequireFromString(balance),
	}
	s.accounts[acc.ID] = acc
	cp := *acc
	return &cp
}

// AddTx seeds a ledger row directly, bypassing the engine.
func (s *Store) AddTx(t transaction.Transaction) *transaction.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTxRowID++
	t.ID = s.nextTxRowID
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now().UTC()
	}
	cp := t
	s.txs = append(s.txs, &cp)
	out := cp
	return &out
}

// TxCount reports the number of ledger rows for assertions on "no row
// created" failure paths.
func (s *Store) TxCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txs)
}

// ---- account.Repository ----

type accountRepo struct{ s *Store }

func (r *accountRepo) Create(ctx context.Context, a *account.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextAccountID++
	a.ID = r.s.nextAccountID
	cp := *a
	r.s.accounts[a.ID] = &cp
	return nil
}

func (r *accountRepo) GetByID(ctx context.Context, id uint64) (*account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	acc, ok := r.s.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *acc
	return &cp, nil
}

func (r *accountRepo) GetByNumber(ctx context.Context, number string) (*account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, acc := range r.s.accounts {
		if acc.AccountNumber == number {
			cp := *acc
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *accountRepo) ApplyDelta(ctx context.Context, id uint64, delta decimal.Decimal, expectedVersion uint64) (*account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	acc, ok := r.s.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if acc.Version != expectedVersion {
		return nil, account.ErrVersionConflict
	}
	acc.Balance = acc.Balance.Add(delta)
	acc.Version++
	cp := *acc
	return &cp, nil
}

// ---- transaction.Repository ----

type txRepo struct{ s *Store }

func (r *txRepo) Create(ctx context.Context, t *transaction.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextTxRowID++
	t.ID = r.s.nextTxRowID
	cp := *t
	r.s.txs = append(r.s.txs, &cp)
	return nil
}

func (r *txRepo) Save(ctx context.Context, t *transaction.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, row := range r.s.txs {
		if row.ID == t.ID {
			*row = *t
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *txRepo) GetByTxID(ctx context.Context, txID string) (*transaction.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, row := range r.s.txs {
		if row.TxID == txID {
			cp := *row
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *txRepo) ListByAccount(ctx context.Context, accountID uint64, rng *transaction.Range) ([]transaction.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []transaction.Transaction
	for _, row := range r.s.txs {
		if row.AccountID != accountID {
			continue
		}
		if rng != nil && (row.Timestamp.Before(rng.From) || row.Timestamp.After(rng.To)) {
			continue
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *txRepo) ListLoans(ctx context.Context, accountID uint64) ([]transaction.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []transaction.Transaction
	for _, row := range r.s.txs {
		if row.AccountID == accountID && row.Type == transaction.TypeLoan {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *txRepo) CountOutstandingLoans(ctx context.Context, accountID uint64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, row := range r.s.txs {
		if row.AccountID == accountID && row.Type == transaction.TypeLoan {
			n++
		}
	}
	return n, nil
}

func (r *txRepo) SumAmounts(ctx context.Context, accountID uint64, rng transaction.Range) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, row := range r.s.txs {
		if row.AccountID != accountID {
			continue
		}
		if row.Timestamp.Before(rng.From) || row.Timestamp.After(rng.To) {
			continue
		}
		sum = sum.Add(row.Amount)
	}
	return sum, nil
}

// ---- siteconfig.Repository ----

type siteRepo struct{ s *Store }

func (r *siteRepo) Get(ctx context.Context) (*siteconfig.SiteConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := r.s.site
	return &cp, nil
}

func (r *siteRepo) SetBankrupt(ctx context.Context, bankrupt bool, message string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.site.IsBankrupt = bankrupt
	r.s.site.StatusMessage = message
	return nil
}

// ---- uow.UnitOfWork ----

type unit struct{ s *Store }

func (u *unit) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return fn(uow.Repos{
		Accounts:     u.s.Accounts(),
		Transactions: u.s.Transactions(),
		Site:         u.s.Site(),
	})
}
