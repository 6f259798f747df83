package siteconfig

import "time"

// SiteConfig is the singleton bank-wide configuration row. IsBankrupt gates
// withdrawals only; deposits and loan flows stay open while it is set.
type SiteConfig struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	IsBankrupt    bool      `gorm:"default:false" json:"is_bankrupt"`
	StatusMessage string    `gorm:"size:512" json:"status_message"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SiteConfig) TableName() string { return "site_configs" }
