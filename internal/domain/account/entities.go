package account

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	AccountNumber string          `gorm:"size:20;uniqueIndex:ux_accounts_number" json:"account_number"`
	OwnerName     string          `gorm:"size:128" json:"owner_name"`
	OwnerEmail    string          `gorm:"size:254" json:"owner_email"`
	Balance       decimal.Decimal `gorm:"type:decimal(18,2)" json:"balance"`
	// Version is the optimistic-concurrency token; every balance mutation
	// increments it, and ApplyDelta commits only against the expected value.
	Version   uint64    `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }
