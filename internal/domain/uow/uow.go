package uow

import (
	"context"

	"bankledger/internal/domain/account"
	"bankledger/internal/domain/siteconfig"
	"bankledger/internal/domain/transaction"
)

type Repos struct {
	Accounts     account.Repository
	Transactions transaction.Repository
	Site         siteconfig.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn against repos bound to a single storage transaction.
	// An error from fn rolls the whole unit back; a balance mutation and its
	// ledger row commit together or not at all.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
