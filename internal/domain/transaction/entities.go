package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeDeposit  Type = "deposit"
	TypeWithdraw Type = "withdraw"
	TypeTransfer Type = "transfer"
	TypeLoan     Type = "loan"
	TypeLoanPaid Type = "loan_paid"
)

// Transaction is one row of the append-only ledger. Rows are never deleted;
// the only permitted update is the loan settle transition, which flips
// LoanApproved false->true and Type loan->loan_paid exactly once.
type Transaction struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	TxID      string `gorm:"size:32;uniqueIndex:ux_transactions_tx_id" json:"tx_id"`
	AccountID uint64 `gorm:"not null;index:idx_transactions_account" json:"account_id"`
	// Amount is always a positive magnitude; the operation type carries the sign.
	Amount       decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Type         Type            `gorm:"column:transaction_type;size:16;index:idx_transactions_account_type" json:"transaction_type"`
	Timestamp    time.Time       `gorm:"index" json:"timestamp"`
	BalanceAfter decimal.Decimal `gorm:"column:balance_after;type:decimal(18,2)" json:"balance_after"`
	LoanApproved bool            `gorm:"default:false" json:"loan_approved"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"-"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"-"`
}

func (Transaction) TableName() string { return "transactions" }

// Settled reports whether a loan row has already gone through the
// loan -> loan_paid transition.
func (t *Transaction) Settled() bool {
	return t.Type == TypeLoanPaid || t.LoanApproved
}
