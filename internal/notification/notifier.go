// Package notification delivers fire-and-forget events after successful
// ledger mutations. Delivery failure never rolls a mutation back; the engine
// logs and moves on.
package notification

import (
	"context"
	"log/slog"
	"time"

	"bankledger/internal/domain/account"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindDeposit     Kind = "deposit"
	KindWithdraw    Kind = "withdraw"
	KindTransferOut Kind = "transfer_sent"
	KindTransferIn  Kind = "transfer_received"
	KindLoanRequest Kind = "loan_requested"
	KindLoanRepaid  Kind = "loan_repaid"
)

type Event struct {
	ID            string
	AccountID     uint64
	AccountNumber string
	OwnerName     string
	OwnerEmail    string
	Amount        decimal.Decimal
	Kind          Kind
	OccurredAt    time.Time
}

func NewEvent(acc *account.Account, amount decimal.Decimal, kind Kind) Event {
	return Event{
		ID:            uuid.NewString(),
		AccountID:     acc.ID,
		AccountNumber: acc.AccountNumber,
		OwnerName:     acc.OwnerName,
		OwnerEmail:    acc.OwnerEmail,
		Amount:        amount,
		Kind:          kind,
		OccurredAt:    time.Now().UTC(),
	}
}

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// LogNotifier is the default sink when no mail credentials are configured.
type LogNotifier struct{ log *slog.Logger }

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log.With("component", "notification")}
}

func (n *LogNotifier) Notify(ctx context.Context, ev Event) error {
	n.log.InfoContext(ctx, "transaction event",
		"event_id", ev.ID,
		"kind", string(ev.Kind),
		"account_number", ev.AccountNumber,
		"amount", ev.Amount.StringFixed(2),
	)
	return nil
}
