package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the success result of a single-account mutation: the created
// (or settled) ledger row's public id plus the post-mutation balance.
type Receipt struct {
	TxID      string          `json:"tx_id"`
	AccountID uint64          `json:"account_id"`
	Type      string          `json:"transaction_type"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
	Timestamp time.Time       `json:"timestamp"`
}

// TransferReceipt covers both sides of a transfer.
type TransferReceipt struct {
	SenderTxID    string          `json:"sender_tx_id"`
	ReceiverTxID  string          `json:"receiver_tx_id"`
	Amount        decimal.Decimal `json:"amount"`
	SenderBalance decimal.Decimal `json:"sender_balance"`
	Timestamp     time.Time       `json:"timestamp"`
}

type OpenAccountInput struct {
	AccountNumber string `json:"account_number"`
	OwnerName     string `json:"owner_name"`
	OwnerEmail    string `json:"owner_email"`
}
