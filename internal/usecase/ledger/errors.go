package ledger

import "errors"

// Engine-level failures. Not-found and already-settled conditions are the
// domain packages' sentinels (account.ErrNotFound, transaction.ErrNotFound,
// transaction.ErrAlreadySettled).
var (
	ErrInvalidAmount     = errors.New("amount must be a positive value")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBankSuspended     = errors.New("bank is bankrupt, withdrawals are suspended")
	ErrLoanLimitExceeded = errors.New("loan limit exceeded")
	ErrContention        = errors.New("operation aborted after repeated write conflicts")
)
