package siteconfig

import "context"

type Repository interface {
	Get(ctx context.Context) (*SiteConfig, error)
	SetBankrupt(ctx context.Context, bankrupt bool, message string) error
}

// Reader is the gate the ledger engine consults before every withdrawal.
type Reader interface {
	IsBankrupt(ctx context.Context) (bool, error)
}
